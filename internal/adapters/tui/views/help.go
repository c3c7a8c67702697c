package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kundli/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Kundli Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Sidereal birth charts, doshas and Vimshottari dasha"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Birth form"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab / shift+tab", "Next / previous field"))
	b.WriteString(helpLine("enter", "Compute chart"))
	b.WriteString(helpLine("esc", "Back"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Chart"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab / h / l", "Switch tab: planets, houses, doshas, dasha"))
	b.WriteString(helpLine("c", "Copy chart as text"))
	b.WriteString(helpLine("e", "Open chart text in $EDITOR"))
	b.WriteString(helpLine("n", "New chart"))
	b.WriteString(helpLine("s", "Saved charts"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Saved charts"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move"))
	b.WriteString(helpLine("enter", "Open"))
	b.WriteString(helpLine("d", "Delete"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("ctrl+c", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Reading the chart"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Houses are whole-sign: the rising sign is house 1"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  R marks a retrograde planet; Ketu is always retrograde"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Nakshatras span 13°20', each with four padas of 3°20'"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
