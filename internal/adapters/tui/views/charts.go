package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"kundli/internal/adapters/tui/styles"
	"kundli/internal/application/commands"
	"kundli/internal/ports"
)

const chartsPerPage = 10

// ChartsKeyMap defines key bindings for the saved charts view
type ChartsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
}

var ChartsKeys = ChartsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

type chartsLoadedMsg struct {
	records []ports.ChartRecord
	err     error
}

type chartDeletedMsg struct {
	id  string
	err error
}

// ChartsModel lists charts from the cache
type ChartsModel struct {
	ViewState
	store   ports.ChartStore
	records []ports.ChartRecord
	cursor  int
	pages   paginator.Model
	confirm Confirmation
}

// NewChartsModel creates the saved charts view. store may be nil.
func NewChartsModel(store ports.ChartStore) *ChartsModel {
	pages := paginator.New()
	pages.Type = paginator.Dots
	pages.PerPage = chartsPerPage
	return &ChartsModel{
		store:   store,
		pages:   pages,
		confirm: NewConfirmation(),
	}
}

// Init loads the chart list
func (m *ChartsModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload fetches the chart list from the store
func (m *ChartsModel) Reload() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return chartsLoadedMsg{}
		}
		records, err := commands.NewListChartsCommand(store).Execute(context.Background())
		return chartsLoadedMsg{records: records, err: err}
	}
}

// Selected returns the chart under the cursor
func (m *ChartsModel) Selected() (ports.ChartRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return ports.ChartRecord{}, false
	}
	return m.records[m.cursor], true
}

func (m *ChartsModel) setRecords(records []ports.ChartRecord) {
	m.records = records
	m.pages.SetTotalPages(len(records))
	if m.cursor >= len(records) {
		m.cursor = max(len(records)-1, 0)
	}
	m.pages.Page = m.cursor / chartsPerPage
}

func (m *ChartsModel) moveCursor(delta int) {
	if len(m.records) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.records)-1)
	m.pages.Page = m.cursor / chartsPerPage
}

// Update handles messages for the saved charts view
func (m *ChartsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case chartsLoadedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.setRecords(msg.records)
		return m, nil

	case chartDeletedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.SetMessage("Deleted chart "+msg.id, false)
		return m, m.Reload()

	case tea.KeyMsg:
		if handled, cmd := m.confirm.HandleKeyMsg(msg, m.deleteChart); handled {
			return m, cmd
		}
		switch {
		case key.Matches(msg, ChartsKeys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, ChartsKeys.Down):
			m.moveCursor(1)
		case key.Matches(msg, ChartsKeys.Open):
			if rec, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenChartMsg{Record: rec} }
			}
		case key.Matches(msg, ChartsKeys.Delete):
			if rec, ok := m.Selected(); ok {
				m.confirm.Ask(&rec)
			}
		case key.Matches(msg, ChartsKeys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}
	}
	return m, nil
}

func (m *ChartsModel) deleteChart(rec ports.ChartRecord) tea.Msg {
	_, err := commands.NewDeleteChartCommand(m.store, rec.ID).Execute(context.Background())
	return chartDeletedMsg{id: rec.ID, err: err}
}

// View renders the saved charts view
func (m *ChartsModel) View() string {
	v := NewViewBuilder().Title("Saved Charts")

	if m.store == nil {
		v.Muted("Chart cache is disabled (set cache: true in .kundli.yaml)")
		v.BlankLine()
		return v.Help(ChartsKeys.Back).String()
	}
	if len(m.records) == 0 {
		v.Muted("No saved charts yet. Computed charts are saved automatically.")
	}

	start, end := m.pages.GetSliceBounds(len(m.records))
	for i := start; i < end; i++ {
		rec := m.records[i]
		label := rec.Label
		if label == "" {
			label = "(unlabelled)"
		}
		line := fmt.Sprintf("%-20s %s %s  %-11s %s",
			truncate(label, 20), rec.Chart.Birth.Date, rec.Chart.Birth.Time, rec.Chart.AscendantSign, rec.ID[:min(8, len(rec.ID))])
		if i == m.cursor {
			line = styles.RowSelected.Render(line)
		}
		v.Line(line)
	}
	if m.pages.TotalPages > 1 {
		v.BlankLine().Line(m.pages.View())
	}
	v.BlankLine()

	if m.confirm.Active() {
		v.Line(RenderConfirmPrompt(fmt.Sprintf("Delete chart %s?", m.confirm.Target.ID)))
		return v.String()
	}
	v.Message(m.Message, m.MessageErr)
	return v.Help(ChartsKeys.Up, ChartsKeys.Down, ChartsKeys.Open, ChartsKeys.Delete, ChartsKeys.Back).String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
