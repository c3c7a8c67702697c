package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kundli/internal/adapters/editor"
	"kundli/internal/adapters/tui/views"
	"kundli/internal/application"
	"kundli/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewForm ViewState = iota
	ViewChart
	ViewCharts
	ViewHelp
)

// Options configures the TUI
type Options struct {
	DefaultZone string
	Timeout     time.Duration
}

// App is the main TUI application model
type App struct {
	editor *editor.Opener

	state    ViewState
	previous ViewState
	hasChart bool

	form   *views.BirthFormModel
	chart  *views.ChartModel
	charts *views.ChartsModel
	help   *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. store and ed may be nil.
func NewApp(engine *application.Engine, store ports.ChartStore, ed *editor.Opener, opts Options) *App {
	var exporter views.Exporter
	if ed != nil {
		exporter = ed
	}
	return &App{
		editor: ed,
		state:  ViewForm,
		form:   views.NewBirthFormModel(engine, store, opts.DefaultZone, opts.Timeout),
		chart:  views.NewChartModel(exporter),
		charts: views.NewChartsModel(store),
		help:   views.NewHelpModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.form.Init()
}

func (a *App) switchTo(s ViewState) {
	if a.state != s {
		a.previous = a.state
	}
	a.state = s
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.form.SetSize(msg.Width, msg.Height)
		a.chart.SetSize(msg.Width, msg.Height)
		a.charts.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case views.SwitchToFormMsg:
		a.switchTo(ViewForm)
		return a, a.form.Init()

	case views.SwitchToChartsMsg:
		a.switchTo(ViewCharts)
		return a, a.charts.Reload()

	case views.SwitchToHelpMsg:
		a.switchTo(ViewHelp)
		return a, nil

	case views.BackMsg:
		a.back()
		return a, nil

	case views.ChartReadyMsg:
		a.form.Update(msg)
		a.chart.SetChart(msg.Result.ID, msg.Result.Chart)
		a.chart.SetMessage(msg.Message, false)
		a.hasChart = true
		a.switchTo(ViewChart)
		return a, nil

	case views.ChartErrMsg:
		_, cmd := a.form.Update(msg)
		return a, cmd

	case views.OpenChartMsg:
		a.chart.SetChart(msg.Record.ID, msg.Record.Chart)
		a.hasChart = true
		a.switchTo(ViewChart)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.chart.SetMessage("Editor: "+msg.err.Error(), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewChart:
		_, cmd = a.chart.Update(msg)
	case ViewCharts:
		_, cmd = a.charts.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) back() {
	switch a.state {
	case ViewHelp:
		a.state = a.previous
	case ViewCharts:
		if a.hasChart {
			a.state = ViewChart
		} else {
			a.state = ViewForm
		}
	case ViewChart:
		a.state = ViewForm
	case ViewForm:
		if a.hasChart {
			a.state = ViewChart
		}
	}
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewChart:
		return a.chart.View()
	case ViewCharts:
		return a.charts.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.form.View()
	}
}
