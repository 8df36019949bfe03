// ABOUTME: Signal coordination for the line editor: interrupt and resize flags plus a wake channel
// ABOUTME: Child-status notifications are forwarded to a callback, deferred while masked

//go:build unix

package signals

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/mauromedda/ashe-go/internal/log"
)

// ignored are left at SIG_IGN so the shell can reclaim the terminal from a
// background process group. Children inherit this disposition.
var ignored = []os.Signal{syscall.SIGTTIN, syscall.SIGTTOU}

// dropped are caught and discarded: the shell survives them while children
// still start with the default action.
var dropped = []os.Signal{syscall.SIGTSTP, syscall.SIGQUIT}

// Coordinator turns asynchronous signals into flags the editing loop
// consumes between reads.
type Coordinator struct {
	interrupt atomic.Bool
	resize    atomic.Bool
	wake      chan struct{}

	mu           sync.Mutex
	masked       int
	childPending bool
	onChild      func()

	sigCh chan os.Signal
	done  chan struct{}
	wg    sync.WaitGroup
}

// New creates a coordinator. onChild, if non-nil, is called for every
// child-status change outside masked sections; it must not block.
func New(onChild func()) *Coordinator {
	return &Coordinator{
		wake:    make(chan struct{}, 1),
		onChild: onChild,
	}
}

// Start installs the handlers. Call Stop to remove them.
func (c *Coordinator) Start() {
	c.sigCh = make(chan os.Signal, 8)
	c.done = make(chan struct{})
	signal.Ignore(ignored...)
	signal.Notify(c.sigCh, syscall.SIGINT, syscall.SIGWINCH, syscall.SIGCHLD)
	signal.Notify(c.sigCh, dropped...)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case sig := <-c.sigCh:
				c.Deliver(sig)
			case <-c.done:
				return
			}
		}
	}()
}

// Stop removes the handlers and restores default dispositions.
func (c *Coordinator) Stop() {
	if c.done == nil {
		return
	}
	signal.Stop(c.sigCh)
	signal.Reset(ignored...)
	close(c.done)
	c.wg.Wait()
	c.done = nil
}

// Deliver records sig as if it had been received from the OS.
func (c *Coordinator) Deliver(sig os.Signal) {
	switch sig {
	case syscall.SIGINT:
		c.interrupt.Store(true)
		c.poke()
	case syscall.SIGWINCH:
		c.resize.Store(true)
		c.poke()
	case syscall.SIGCHLD:
		c.child()
	default:
		log.Debug("signals: ignoring %v", sig)
	}
}

func (c *Coordinator) poke() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Coordinator) child() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.masked > 0 {
		c.childPending = true
		return
	}
	if c.onChild != nil {
		c.onChild()
	}
}

// Mask opens a section in which editor state may change. Masks nest.
func (c *Coordinator) Mask() {
	c.mu.Lock()
	c.masked++
	c.mu.Unlock()
}

// Unmask closes a masked section, forwarding a child-status change that
// arrived meanwhile.
func (c *Coordinator) Unmask() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.masked > 0 {
		c.masked--
	}
	if c.masked == 0 && c.childPending {
		c.childPending = false
		if c.onChild != nil {
			c.onChild()
		}
	}
}

// Masked reports whether a masked section is open.
func (c *Coordinator) Masked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.masked > 0
}

// Wake is signalled once per interrupt or resize so a blocked read can
// return early.
func (c *Coordinator) Wake() <-chan struct{} { return c.wake }

// TakeInterrupt reports and clears a pending interrupt.
func (c *Coordinator) TakeInterrupt() bool { return c.interrupt.Swap(false) }

// TakeResize reports and clears a pending resize.
func (c *Coordinator) TakeResize() bool { return c.resize.Swap(false) }
