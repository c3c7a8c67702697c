package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"kundli/internal/adapters/format"
	"kundli/internal/adapters/tui/styles"
	"kundli/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// RenderSign renders a sign name in its element color
func RenderSign(sign domain.ZodiacSign) string {
	return lipgloss.NewStyle().Foreground(styles.SignColor(sign)).Render(sign.String())
}

// RenderTabs renders a tab strip with the active tab highlighted
func RenderTabs(names []string, active int) string {
	parts := make([]string, len(names))
	for i, name := range names {
		if i == active {
			parts[i] = styles.TabActive.Render(name)
		} else {
			parts[i] = styles.Tab.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderDosha renders one dosha with a severity badge
func RenderDosha(d domain.DoshaResult) string {
	badge := lipgloss.NewStyle().
		Foreground(styles.Black).
		Background(styles.SeverityColor(d.Severity)).
		Padding(0, 1).
		Render(fmt.Sprintf("%d", d.Severity))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", badge, styles.InputLabel.Render(string(d.Type)))
	houses := make([]string, len(d.AffectedHouses))
	for i, h := range d.AffectedHouses {
		houses[i] = fmt.Sprintf("%d", h)
	}
	b.WriteString(styles.MutedText.Render("  houses " + strings.Join(houses, ", ")))
	b.WriteString("\n    ")
	b.WriteString(d.Description)
	if len(d.AffectedLifeAreas) > 0 {
		b.WriteString("\n    ")
		b.WriteString(styles.MutedText.Render(strings.Join(d.AffectedLifeAreas, " · ")))
	}
	return b.String()
}

// RenderPlanetRow renders one planet as a fixed-width row
func RenderPlanetRow(p domain.PlanetPosition) string {
	retro := " "
	if p.IsRetrograde {
		retro = styles.Retrograde.Render("R")
	}
	sign := lipgloss.NewStyle().Width(12).Render(RenderSign(p.Sign))
	return fmt.Sprintf("%-8s %s %2d  %-11s %-18s %d  %s",
		p.Planet, sign, p.House, format.DMS(p.SignDegree), p.Nakshatra, p.NakshatraPada, retro)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
