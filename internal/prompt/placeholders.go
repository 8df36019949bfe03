// ABOUTME: Placeholder expansion for prompt and welcome templates (%0 host .. %7 uptime)
// ABOUTME: A placeholder whose value is unavailable is left in the output unchanged

package prompt

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Sign introduces a placeholder in a template.
const Sign = '%'

// Placeholder indices.
const (
	Host = iota
	User
	Jobs
	Dir
	AbsDir
	Clock
	Date
	Uptime
	numPlaceholders
)

// Func yields the value of a placeholder; ok=false leaves it unexpanded.
type Func func() (value string, ok bool)

// Expander replaces %N sequences with the value of placeholder N.
type Expander struct {
	funcs [numPlaceholders]Func
	now   func() time.Time
}

// NewExpander returns an Expander backed by the running system. jobs reports
// the background job count; nil means zero.
func NewExpander(jobs func() int) *Expander {
	if jobs == nil {
		jobs = func() int { return 0 }
	}
	e := &Expander{now: time.Now}
	e.funcs = [numPlaceholders]Func{
		Host:   hostname,
		User:   username,
		Jobs:   func() (string, bool) { return strconv.Itoa(jobs()), true },
		Dir:    trimmedDir,
		AbsDir: absDir,
		Clock:  func() (string, bool) { return e.now().Format("15:04"), true },
		Date:   func() (string, bool) { return e.now().Format("2006-01-02"), true },
		Uptime: uptime,
	}
	return e
}

// Set overrides placeholder i. Out of range indices are ignored.
func (e *Expander) Set(i int, fn Func) {
	if i >= 0 && i < numPlaceholders {
		e.funcs[i] = fn
	}
}

// Expand substitutes every placeholder in tmpl.
func (e *Expander) Expand(tmpl string) string {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != Sign || i+1 >= len(tmpl) {
			b.WriteByte(c)
			continue
		}
		n := int(tmpl[i+1] - '0')
		if n < 0 || n >= numPlaceholders || e.funcs[n] == nil {
			b.WriteByte(c)
			continue
		}
		v, ok := e.funcs[n]()
		if !ok {
			b.WriteByte(c)
			continue
		}
		b.WriteString(v)
		i++
	}
	return b.String()
}

func hostname() (string, bool) {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "", false
	}
	if short, _, found := strings.Cut(h, "."); found {
		return short, true
	}
	return h, true
}

func username() (string, bool) {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username, true
	}
	if name := os.Getenv("USER"); name != "" {
		return name, true
	}
	return "", false
}

func absDir() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return wd, true
}

func trimmedDir() (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	home, _ := os.UserHomeDir()
	return trimDir(wd, home), true
}

// trimDir shortens an absolute directory to its last element, or "~" for home.
func trimDir(dir, home string) string {
	switch {
	case home != "" && dir == home:
		return "~"
	case dir == "/" || dir == "":
		return "/"
	default:
		return filepath.Base(dir)
	}
}

func uptime() (string, bool) {
	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return "", false
	}
	return parseUptime(string(data))
}

// parseUptime formats the first field of /proc/uptime as "HHh MMm".
func parseUptime(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || secs < 0 {
		return "", false
	}
	d := time.Duration(secs) * time.Second
	return fmt.Sprintf("%02dh %02dm", int(d.Hours()), int(d.Minutes())%60), true
}
