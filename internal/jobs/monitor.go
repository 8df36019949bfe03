// ABOUTME: Job monitor tracking running children and reacting to child-status notifications
// ABOUTME: Notify never blocks so it is safe to call from the signal goroutine

package jobs

import (
	"context"
	"sort"
	"sync"

	"github.com/mauromedda/ashe-go/internal/log"
)

// Job is a running child started by the shell.
type Job struct {
	PID     int
	Command string
}

// Monitor keeps the set of running jobs and processes child-status changes
// outside the signal path.
type Monitor struct {
	notify chan struct{}

	mu      sync.Mutex
	running map[int]string
	changes int
}

// NewMonitor creates an empty monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		notify:  make(chan struct{}, 1),
		running: make(map[int]string),
	}
}

// Notify records that some child changed state. Bursts coalesce.
func (m *Monitor) Notify() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Add registers a started child.
func (m *Monitor) Add(pid int, command string) {
	m.mu.Lock()
	m.running[pid] = command
	m.mu.Unlock()
}

// Remove forgets a child once it has been waited for.
func (m *Monitor) Remove(pid int) {
	m.mu.Lock()
	delete(m.running, pid)
	m.mu.Unlock()
}

// Jobs returns the number of running children.
func (m *Monitor) Jobs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.running)
}

// List returns the running children ordered by pid.
func (m *Monitor) List() []Job {
	m.mu.Lock()
	out := make([]Job, 0, len(m.running))
	for pid, cmd := range m.running {
		out = append(out, Job{PID: pid, Command: cmd})
	}
	m.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// Changes returns how many coalesced notifications Run has processed.
func (m *Monitor) Changes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.changes
}

// Run processes notifications until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.notify:
			m.mu.Lock()
			m.changes++
			n := len(m.running)
			m.mu.Unlock()
			log.Debug("jobs: child status changed, %d running", n)
		}
	}
}
