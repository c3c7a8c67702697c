package views

import (
	"kundli/internal/application/commands"
	"kundli/internal/ports"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages
type (
	SwitchToFormMsg   struct{}
	SwitchToChartsMsg struct{}
	SwitchToHelpMsg   struct{}
	// BackMsg returns to the view that was active before the current one
	BackMsg struct{}
)

// ChartReadyMsg carries a computed or loaded chart to the chart view
type ChartReadyMsg struct {
	Result  *commands.ComputeKundliResult
	Message string
}

// ChartErrMsg reports a failure computing or loading a chart
type ChartErrMsg struct {
	Err error
}

// OpenChartMsg asks the app to show a stored chart
type OpenChartMsg struct {
	Record ports.ChartRecord
}

// OpenEditorMsg requests opening an exported file in the editor
type OpenEditorMsg struct {
	Path string
}
