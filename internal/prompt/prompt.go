// ABOUTME: Shell prompt rendered from a placeholder template with optional lipgloss color
// ABOUTME: Control characters are dropped; Len reports the visible width of the last render

package prompt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mauromedda/ashe-go/pkg/tui/width"
)

// Default is the template used when none is configured.
const Default = "%1@%0 %3$ "

// DefaultWelcome greets the user on startup.
const DefaultWelcome = "Welcome %1!\n\tuptime - %7\n\ttime   - %5\n\tdate   - %6\n"

// Prompt renders a template each time the editor starts a new line.
type Prompt struct {
	exp    *Expander
	format string
	style  lipgloss.Style
	styled bool
	width  int
}

// New creates a prompt. An empty format selects Default; an empty color
// renders without styling.
func New(exp *Expander, format, color string) *Prompt {
	if format == "" {
		format = Default
	}
	p := &Prompt{exp: exp, format: format}
	if color != "" {
		p.style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		p.styled = true
	}
	return p
}

// Render expands the template and caches its visible width.
func (p *Prompt) Render() string {
	s := sanitize(p.exp.Expand(p.format))
	p.width = width.VisibleWidth(s)
	if p.styled && s != "" {
		s = p.style.Render(s)
	}
	return s
}

// Len returns the visible width of the most recent Render.
func (p *Prompt) Len() int {
	return p.width
}

// Welcome expands a welcome template. Unlike the prompt it keeps newlines
// as plain LF; it is printed in cooked mode where the driver adds the CR.
func Welcome(exp *Expander, tmpl string) string {
	if tmpl == "" {
		tmpl = DefaultWelcome
	}
	return strings.ReplaceAll(exp.Expand(tmpl), "\r\n", "\n")
}

// sanitize drops characters that would move the cursor unpredictably.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r', '\v', '\f':
			return -1
		}
		return r
	}, s)
}
