package views

import (
	"context"
	"errors"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kundli/internal/application"
	"kundli/internal/application/commands"
	"kundli/internal/ports"
)

// Birth form field names, matching ValidationError.Field
const (
	fieldDate  = "dateOfBirth"
	fieldTime  = "timeOfBirth"
	fieldZone  = "zone"
	fieldLat   = "placeOfBirthLat"
	fieldLng   = "placeOfBirthLng"
	fieldLabel = "label"
)

// BirthFormModel collects birth details and computes a chart
type BirthFormModel struct {
	ViewState
	engine  *application.Engine
	store   ports.ChartStore
	form    *InputForm
	timeout time.Duration
	busy    bool
}

// NewBirthFormModel creates the birth form. store may be nil.
func NewBirthFormModel(engine *application.Engine, store ports.ChartStore, defaultZone string, timeout time.Duration) *BirthFormModel {
	form := NewInputForm(
		NewInputField(fieldDate, "Date of birth", "1990-05-15", "YYYY-MM-DD", 10),
		NewInputField(fieldTime, "Time of birth", "10:30", "HH:MM, leave empty if unknown", 5),
		NewInputField(fieldZone, "Timezone", "+05:30", "offset or IANA name", 40),
		NewInputField(fieldLat, "Latitude", "28.6139", "north positive", 12),
		NewInputField(fieldLng, "Longitude", "77.2090", "east positive", 12),
		NewInputField(fieldLabel, "Label", "optional", "saved with the chart", 60),
	)
	form.SetValue(fieldZone, defaultZone)

	return &BirthFormModel{
		engine:  engine,
		store:   store,
		form:    form,
		timeout: timeout,
	}
}

// Init initializes the birth form
func (m *BirthFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the birth form
func (m *BirthFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ChartErrMsg:
		m.busy = false
		m.SetMessage(msg.Err.Error(), true)
		var verr *application.ValidationError
		if errors.As(msg.Err, &verr) {
			m.form.MarkError(verr.Field)
		}
		return m, nil

	case ChartReadyMsg:
		m.busy = false
		m.form.MarkError("")
		m.ClearMessage()
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackMsg{} }
		case "enter":
			m.busy = true
			m.SetMessage("Computing chart...", false)
			return m, m.compute()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// Input returns the current form contents as birth input
func (m *BirthFormModel) Input() (application.BirthInput, error) {
	lat, err := parseCoordinate(fieldLat, m.form.Value(fieldLat))
	if err != nil {
		return application.BirthInput{}, err
	}
	lng, err := parseCoordinate(fieldLng, m.form.Value(fieldLng))
	if err != nil {
		return application.BirthInput{}, err
	}
	return application.BirthInput{
		DateOfBirth: m.form.Value(fieldDate),
		TimeOfBirth: m.form.Value(fieldTime),
		Zone:        m.form.Value(fieldZone),
		Latitude:    lat,
		Longitude:   lng,
	}, nil
}

func parseCoordinate(field, s string) (float64, error) {
	if err := application.ValidateRequired(field, s); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &application.ValidationError{Field: field, Message: "not a number: " + s}
	}
	return v, nil
}

func (m *BirthFormModel) compute() tea.Cmd {
	input, err := m.Input()
	label := m.form.Value(fieldLabel)
	engine, store, timeout := m.engine, m.store, m.timeout

	return func() tea.Msg {
		if err != nil {
			return ChartErrMsg{Err: err}
		}

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		cmd := commands.NewComputeKundliCommand(engine, store, input)
		cmd.Label = label
		result, err := cmd.Execute(ctx)
		if err != nil {
			return ChartErrMsg{Err: err}
		}
		return ChartReadyMsg{Result: result, Message: result.Message}
	}
}

// View renders the birth form
func (m *BirthFormModel) View() string {
	return NewViewBuilder().
		Title("New Chart").
		Subtitle("Sidereal birth chart with " + string(m.engine.Ayanamsa()) + " ayanamsa, " + m.engine.ProviderName() + " ephemeris").
		Raw(m.form.RenderFields()).
		BlankLine().
		BlankLine().
		Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp("compute")).
		String()
}
