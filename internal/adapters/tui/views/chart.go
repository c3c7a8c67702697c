package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kundli/internal/adapters/format"
	"kundli/internal/adapters/tui/styles"
	"kundli/internal/application/commands"
	"kundli/internal/domain"
)

// ChartKeyMap defines key bindings for the chart view
type ChartKeyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Copy    key.Binding
	Edit    key.Binding
	New     key.Binding
	Charts  key.Binding
	Help    key.Binding
	Back    key.Binding
}

var ChartKeys = ChartKeyMap{
	NextTab: key.NewBinding(
		key.WithKeys("tab", "l", "right"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "h", "left"),
		key.WithHelp("shift+tab", "prev tab"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "open in editor"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new chart"),
	),
	Charts: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "saved charts"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// ChartTab is a section of the chart view
type ChartTab int

const (
	TabPlanets ChartTab = iota
	TabHouses
	TabDoshas
	TabDasha
)

var chartTabNames = []string{"Planets", "Houses", "Doshas", "Dasha"}

// Exporter writes chart text somewhere an editor can open it
type Exporter interface {
	Export(name, content string) (string, error)
}

// ChartModel displays one computed chart
type ChartModel struct {
	ViewState
	chart    domain.Kundli
	id       string
	timeline *commands.DashaTimelineResult
	tab      ChartTab
	exporter Exporter // optional
	copyText func(string) error
	now      func() time.Time
}

// NewChartModel creates the chart view. exporter may be nil.
func NewChartModel(exporter Exporter) *ChartModel {
	return &ChartModel{
		exporter: exporter,
		copyText: clipboard.WriteAll,
		now:      time.Now,
	}
}

// SetChart replaces the displayed chart and resets to the planets tab
func (m *ChartModel) SetChart(id string, chart domain.Kundli) {
	m.id = id
	m.chart = chart.WithDashaAsOf(m.now().UTC())
	m.timeline = commands.BuildDashaTimeline(m.chart, m.now().UTC())
	m.tab = TabPlanets
	m.ClearMessage()
}

// Chart returns the displayed chart
func (m *ChartModel) Chart() domain.Kundli {
	return m.chart
}

// Tab returns the active tab
func (m *ChartModel) Tab() ChartTab {
	return m.tab
}

// Init initializes the chart view
func (m *ChartModel) Init() tea.Cmd {
	return nil
}

type copiedMsg struct{ err error }

// Update handles messages for the chart view
func (m *ChartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.SetMessage("Copy failed: "+msg.err.Error(), true)
		} else {
			m.SetMessage("Chart copied to clipboard", false)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ChartKeys.NextTab):
			m.tab = (m.tab + 1) % ChartTab(len(chartTabNames))
		case key.Matches(msg, ChartKeys.PrevTab):
			m.tab = (m.tab - 1 + ChartTab(len(chartTabNames))) % ChartTab(len(chartTabNames))
		case key.Matches(msg, ChartKeys.Copy):
			text := format.ChartText(m.chart)
			copyText := m.copyText
			return m, func() tea.Msg { return copiedMsg{err: copyText(text)} }
		case key.Matches(msg, ChartKeys.Edit):
			return m, m.export()
		case key.Matches(msg, ChartKeys.New):
			return m, func() tea.Msg { return SwitchToFormMsg{} }
		case key.Matches(msg, ChartKeys.Charts):
			return m, func() tea.Msg { return SwitchToChartsMsg{} }
		case key.Matches(msg, ChartKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, ChartKeys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}
	}
	return m, nil
}

func (m *ChartModel) export() tea.Cmd {
	if m.exporter == nil {
		m.SetMessage("No editor configured", true)
		return nil
	}
	name := m.id
	if name == "" {
		name = strings.ReplaceAll(m.chart.Birth.Date+"_"+m.chart.Birth.Time, ":", "")
	}
	path, err := m.exporter.Export(name, format.ChartText(m.chart))
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return func() tea.Msg { return OpenEditorMsg{Path: path} }
}

// View renders the chart view
func (m *ChartModel) View() string {
	k := m.chart
	v := NewViewBuilder().Title("Kundli")

	v.Line(RenderLabelValue("Birth", fmt.Sprintf("%s %s (%s)  %s",
		k.Birth.Date, k.Birth.Time, k.Birth.Zone, format.Coordinates(k.Birth.Latitude, k.Birth.Longitude))))
	v.Line(RenderLabelValue("Ascendant", RenderSign(k.AscendantSign)+" "+
		format.DMS(k.AscendantDegree-float64(k.AscendantSign)*domain.SignSpan)))
	v.Line(RenderLabelValue("Ayanamsa", fmt.Sprintf("%s %s", k.AyanamsaSystem, format.DMS(k.Ayanamsa))))
	if k.TimeApproximate {
		v.Line(styles.ErrorMsg.Render("Birth time unknown: noon assumed, ascendant and houses are approximate"))
	}
	v.BlankLine()
	v.Line(RenderTabs(chartTabNames, int(m.tab)))
	v.BlankLine()

	switch m.tab {
	case TabPlanets:
		v.Line(styles.Header.Render(fmt.Sprintf("%-8s %-12s %2s  %-11s %-18s %s  %s", "Planet", "Sign", "H", "Degree", "Nakshatra", "P", "R")))
		for _, p := range k.Planets {
			v.Line(RenderPlanetRow(p))
		}
	case TabHouses:
		occupants := make(map[int][]string)
		for _, p := range k.Planets {
			occupants[p.House] = append(occupants[p.House], p.Planet.String())
		}
		for _, h := range k.Houses {
			v.Line(fmt.Sprintf("%2d  %-12s %s", h.House, RenderSign(h.Sign), strings.Join(occupants[h.House], ", ")))
		}
	case TabDoshas:
		if len(k.Doshas) == 0 {
			v.Muted("No doshas present")
		}
		for _, d := range k.Doshas {
			v.Line(RenderDosha(d)).BlankLine()
		}
	case TabDasha:
		m.renderDasha(v)
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(ChartKeys.NextTab, ChartKeys.Copy, ChartKeys.Edit, ChartKeys.New, ChartKeys.Charts, ChartKeys.Help)
	return v.String()
}

func (m *ChartModel) renderDasha(v *ViewBuilder) {
	t := m.timeline
	if t == nil {
		return
	}
	v.Muted(fmt.Sprintf("Born in %s dasha with %.2f years remaining", t.BirthLord, t.BalanceYears))
	v.BlankLine()
	for _, p := range t.Mahadashas {
		line := fmt.Sprintf("%-8s %s → %s", p.Planet, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
		if p.Start.Equal(t.Current.Start) {
			line = styles.CurrentPeriod.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		v.Line(line)
	}
	v.BlankLine()
	v.Line(styles.Header.Render(t.Current.Planet.String() + " sub-periods"))
	for _, p := range t.Antardashas {
		line := fmt.Sprintf("%-8s %s → %s", p.Planet, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
		if t.CurrentAntardasha != nil && p.Start.Equal(t.CurrentAntardasha.Start) {
			line = styles.CurrentPeriod.Render("▶ " + line)
		} else {
			line = "  " + line
		}
		v.Line(line)
	}
}
