// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -version, -verbose, -prompt, -histfile and -c

package main

import (
	"flag"
	"io"
)

type cliArgs struct {
	version  bool
	verbose  bool
	prompt   string
	histFile string
	command  string
}

func parseFlags(name string, argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.StringVar(&args.prompt, "prompt", "", "Prompt template (%0 host, %1 user, %2 jobs, %3 dir, %4 abs dir, %5 time, %6 date, %7 uptime)")
	fs.StringVar(&args.histFile, "histfile", "", "History file path")
	fs.StringVar(&args.command, "c", "", "Run a single command and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	return args, nil
}
