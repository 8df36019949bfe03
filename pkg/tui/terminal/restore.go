// ABOUTME: Panic recovery that puts the terminal back into a usable state
// ABOUTME: RestoreOnPanic exits the process; RecoverGoroutine turns the panic into an error

package terminal

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
)

const showCursor = "\033[?25h"

// ErrPanic wraps a panic recovered by RecoverGoroutine.
var ErrPanic = errors.New("terminal: recovered panic")

// RestoreOnPanic should be deferred at the top of main. On panic it shows
// the cursor, exits raw mode via the provided Terminal, prints the panic
// value and stack trace, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	restore(t)

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine is deferred in goroutines that drive the terminal, such as
// the read loop under an errgroup. On panic it restores the terminal, prints
// the stack and stores an ErrPanic in *errp so the caller's deferred cleanup
// still runs.
func RecoverGoroutine(t Terminal, errp *error) {
	r := recover()
	if r == nil {
		return
	}

	restore(t)

	fmt.Fprintf(os.Stderr, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
	if errp != nil {
		*errp = fmt.Errorf("%w: %v", ErrPanic, r)
	}
}

// restore is best-effort: the process is already failing.
func restore(t Terminal) {
	_ = t.SetOutputProcessing(true)
	_, _ = t.Write([]byte(showCursor))
	_ = t.ExitRawMode()
}
