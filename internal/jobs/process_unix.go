// ABOUTME: Unix process group handling for foreground jobs
// ABOUTME: Hands the terminal to the child's group and takes it back after the wait

//go:build unix

package jobs

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// foreground starts cmd in a new process group that owns tty.
func foreground(cmd *exec.Cmd, tty *os.File) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:    true,
		Foreground: true,
		Ctty:       int(tty.Fd()),
	}
}

// reclaim makes the shell's process group the terminal's foreground group.
func reclaim(tty *os.File) error {
	return unix.IoctlSetPointerInt(int(tty.Fd()), unix.TIOCSPGRP, unix.Getpgrp())
}

// killProcGroup kills the entire process group of the command.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process != nil {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	return nil
}

// exitStatus maps a failed wait to a shell-style status: the exit code, or
// 128 plus the signal number for a killed child.
func exitStatus(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return err.ExitCode()
}
