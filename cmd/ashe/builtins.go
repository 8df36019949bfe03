// ABOUTME: Builtins that must run inside the shell process: cd, exit, jobs, history
// ABOUTME: Anything else is handed to the executor

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mauromedda/ashe-go/internal/history"
	"github.com/mauromedda/ashe-go/internal/jobs"
)

// shell holds the state builtins act on.
type shell struct {
	out  io.Writer
	hist *history.History
	mon  *jobs.Monitor

	exit   bool
	status int
}

type builtinFunc func(sh *shell, argv []string) int

var builtins = map[string]builtinFunc{
	"cd":      (*shell).cd,
	"exit":    (*shell).exitCmd,
	"jobs":    (*shell).jobs,
	"history": (*shell).history,
}

// builtin runs line if it names a builtin and reports whether it did.
func (sh *shell) builtin(line string) bool {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return false
	}
	fn, ok := builtins[argv[0]]
	if !ok {
		return false
	}
	sh.status = fn(sh, argv)
	return true
}

func (sh *shell) errorf(name, format string, args ...any) int {
	fmt.Fprintf(sh.out, "%s: %s\n", name, fmt.Sprintf(format, args...))
	return 1
}

func (sh *shell) cd(argv []string) int {
	var dir string
	switch len(argv) {
	case 1:
		home, err := os.UserHomeDir()
		if err != nil {
			return sh.errorf("cd", "HOME not set")
		}
		dir = home
	case 2:
		dir = argv[1]
	default:
		return sh.errorf("cd", "too many arguments")
	}
	if err := os.Chdir(dir); err != nil {
		return sh.errorf("cd", "%v", err)
	}
	if wd, err := os.Getwd(); err == nil {
		os.Setenv("PWD", wd)
	}
	return 0
}

func (sh *shell) exitCmd(argv []string) int {
	switch len(argv) {
	case 1:
	case 2:
		n, err := strconv.Atoi(argv[1])
		if err != nil {
			return sh.errorf("exit", "invalid exit status %q", argv[1])
		}
		sh.status = n
	default:
		return sh.errorf("exit", "too many arguments")
	}
	sh.exit = true
	return sh.status
}

func (sh *shell) jobs(argv []string) int {
	list := sh.mon.List()
	if len(list) == 0 {
		fmt.Fprintln(sh.out, "jobs: there are no jobs running.")
		return 0
	}
	for i, j := range list {
		fmt.Fprintf(sh.out, "[%d] %d running %s\n", i+1, j.PID, j.Command)
	}
	return 0
}

func (sh *shell) history(argv []string) int {
	for i, e := range sh.hist.Entries() {
		fmt.Fprintf(sh.out, "%5d  %s\n", i+1, e)
	}
	return 0
}
