// ABOUTME: Foreground executor running a submitted line through the system shell
// ABOUTME: With a controlling tty the child gets its own foreground process group

//go:build unix

package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mauromedda/ashe-go/internal/log"
)

// DefaultShell interprets submitted lines.
const DefaultShell = "/bin/sh"

// Executor runs one command at a time in the foreground.
type Executor struct {
	Shell   string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Monitor *Monitor

	// TTY, when set, is the controlling terminal handed to the child's
	// process group for the duration of the command.
	TTY *os.File
}

// Run executes line with "<shell> -c" and waits for it. A non-zero exit is
// reported through the status, not the error.
func (e *Executor) Run(ctx context.Context, line string) (int, error) {
	shell := e.Shell
	if shell == "" {
		shell = DefaultShell
	}

	cmd := exec.CommandContext(ctx, shell, "-c", line)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if e.TTY != nil {
		foreground(cmd, e.TTY)
		cmd.Cancel = func() error {
			return killProcGroup(cmd)
		}
	}

	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("starting %s: %w", shell, err)
	}
	pid := cmd.Process.Pid
	if e.Monitor != nil {
		e.Monitor.Add(pid, line)
	}
	log.Debug("jobs: started %d: %s", pid, line)

	err := cmd.Wait()

	if e.Monitor != nil {
		e.Monitor.Remove(pid)
	}
	if e.TTY != nil {
		if rerr := reclaim(e.TTY); rerr != nil {
			log.Warn("jobs: reclaiming terminal: %v", rerr)
		}
	}

	if ctx.Err() != nil {
		return -1, fmt.Errorf("running %q: %w", line, ctx.Err())
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitStatus(exitErr), nil
	default:
		return -1, fmt.Errorf("waiting for %d: %w", pid, err)
	}
}
