package prompt

import (
	"strings"
	"testing"
	"time"
)

func fixed(v string) Func {
	return func() (string, bool) { return v, true }
}

func unavailable() (string, bool) { return "", false }

func testExpander() *Expander {
	e := NewExpander(func() int { return 3 })
	e.now = func() time.Time { return time.Date(2024, 3, 9, 7, 5, 0, 0, time.UTC) }
	e.Set(Host, fixed("box"))
	e.Set(User, fixed("ada"))
	e.Set(Dir, fixed("src"))
	e.Set(AbsDir, fixed("/home/ada/src"))
	e.Set(Uptime, fixed("01h 02m"))
	return e
}

func TestExpander_Expand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{name: "default prompt", tmpl: Default, want: "ada@box src$ "},
		{name: "all placeholders", tmpl: "%0|%1|%2|%3|%4|%5|%6|%7", want: "box|ada|3|src|/home/ada/src|07:05|2024-03-09|01h 02m"},
		{name: "no placeholders", tmpl: "$ ", want: "$ "},
		{name: "out of range index", tmpl: "%8%9", want: "%8%9"},
		{name: "non-digit", tmpl: "100%x", want: "100%x"},
		{name: "trailing sign", tmpl: "50%", want: "50%"},
		{name: "double sign", tmpl: "%%1", want: "%ada"},
		{name: "empty", tmpl: "", want: ""},
	}

	e := testExpander()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := e.Expand(tt.tmpl); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestExpander_UnavailableKeepsPlaceholder(t *testing.T) {
	t.Parallel()

	e := testExpander()
	e.Set(Uptime, unavailable)
	e.Set(42, fixed("ignored"))
	if got := e.Expand("up %7 %1"); got != "up %7 ada" {
		t.Fatalf("Expand = %q", got)
	}
}

func TestExpander_JobsIsLive(t *testing.T) {
	t.Parallel()

	n := 0
	e := NewExpander(func() int { return n })
	if got := e.Expand("%2"); got != "0" {
		t.Fatalf("Expand = %q", got)
	}
	n = 2
	if got := e.Expand("%2"); got != "2" {
		t.Fatalf("Expand = %q", got)
	}
	if got := NewExpander(nil).Expand("%2"); got != "0" {
		t.Fatalf("nil jobs: Expand = %q", got)
	}
}

func TestTrimDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir, home, want string
	}{
		{"/home/ada", "/home/ada", "~"},
		{"/home/ada/src/ashe", "/home/ada", "ashe"},
		{"/", "/home/ada", "/"},
		{"/tmp", "", "tmp"},
	}
	for _, tt := range tests {
		if got := trimDir(tt.dir, tt.home); got != tt.want {
			t.Errorf("trimDir(%q, %q) = %q, want %q", tt.dir, tt.home, got, tt.want)
		}
	}
}

func TestParseUptime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "3725.42 1234.00\n", want: "01h 02m", ok: true},
		{in: "59.9 1.0", want: "00h 00m", ok: true},
		{in: "360000.0 0", want: "100h 00m", ok: true},
		{in: "", ok: false},
		{in: "abc 1", ok: false},
	}
	for _, tt := range tests {
		got, ok := parseUptime(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseUptime(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrompt_RenderAndLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		color   string
		wantLen int
		plain   string
	}{
		{name: "default", format: "", wantLen: len("ada@box src$ "), plain: "ada@box src$ "},
		{name: "control characters dropped", format: "%1\n>\t\r ", wantLen: len("ada> "), plain: "ada> "},
		{name: "escape sequences not counted", format: "\x1b[1m%1\x1b[0m$ ", wantLen: len("ada$ ")},
		{name: "wide characters", format: "日本$ ", wantLen: 6},
		{name: "colored", format: "%0> ", color: "208", wantLen: len("box> ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := New(testExpander(), tt.format, tt.color)
			out := p.Render()
			if p.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", p.Len(), tt.wantLen)
			}
			if tt.plain != "" && out != tt.plain {
				t.Errorf("Render() = %q, want %q", out, tt.plain)
			}
			if strings.ContainsAny(out, "\n\r\t") {
				t.Errorf("Render() = %q contains control characters", out)
			}
		})
	}
}

func TestPrompt_LenTracksLatestRender(t *testing.T) {
	t.Parallel()

	dir := "a"
	e := testExpander()
	e.Set(Dir, func() (string, bool) { return dir, true })
	p := New(e, "%3$ ", "")

	p.Render()
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	dir = "longer"
	p.Render()
	if p.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", p.Len())
	}
}

func TestWelcome(t *testing.T) {
	t.Parallel()

	got := Welcome(testExpander(), "")
	want := "Welcome ada!\n\tuptime - 01h 02m\n\ttime   - 07:05\n\tdate   - 2024-03-09\n"
	if got != want {
		t.Fatalf("Welcome = %q, want %q", got, want)
	}
	if got := Welcome(testExpander(), "hi %1\r\n"); got != "hi ada\n" {
		t.Fatalf("Welcome = %q", got)
	}
}
