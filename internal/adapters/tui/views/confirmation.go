package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kundli/internal/adapters/tui/styles"
	"kundli/internal/ports"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// Confirmation is an inline yes/no prompt about one stored chart
type Confirmation struct {
	Target *ports.ChartRecord
	Keys   ConfirmKeyMap
}

// NewConfirmation creates a confirmation with default keys
func NewConfirmation() Confirmation {
	return Confirmation{Keys: DefaultConfirmKeys}
}

// Active reports whether a prompt is showing
func (c *Confirmation) Active() bool {
	return c.Target != nil
}

// Ask shows the prompt for a chart
func (c *Confirmation) Ask(rec *ports.ChartRecord) {
	c.Target = rec
}

// HandleKeyMsg processes key messages while the prompt is active.
// Returns (handled, cmd) where handled is true if the key was processed.
// The prompt closes on either answer.
func (c *Confirmation) HandleKeyMsg(msg tea.KeyMsg, onConfirm func(ports.ChartRecord) tea.Msg) (bool, tea.Cmd) {
	if c.Target == nil {
		return false, nil
	}
	switch {
	case key.Matches(msg, c.Keys.Cancel):
		c.Target = nil
		return true, nil
	case key.Matches(msg, c.Keys.Confirm):
		target := *c.Target
		c.Target = nil
		return true, func() tea.Msg { return onConfirm(target) }
	}
	return true, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
