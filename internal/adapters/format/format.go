// Package format renders charts, dasha timelines and stored chart listings as plain text,
// JSON or YAML.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"kundli/internal/application/commands"
	"kundli/internal/domain"
	"kundli/internal/ports"
)

// Format is an output encoding
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Parse resolves a format name, defaulting to text
func Parse(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", Text:
		return Text, nil
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

const dateLayout = "2006-01-02"

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q is not a structured encoding", f)
}

// Chart writes a full chart
func Chart(w io.Writer, f Format, k domain.Kundli) error {
	if f != Text {
		return encode(w, f, k)
	}
	_, err := io.WriteString(w, ChartText(k))
	return err
}

// Timeline writes a dasha timeline
func Timeline(w io.Writer, f Format, t *commands.DashaTimelineResult) error {
	if f != Text {
		return encode(w, f, t)
	}
	_, err := io.WriteString(w, TimelineText(t))
	return err
}

// Degree writes the classification of one longitude
func Degree(w io.Writer, f Format, d *commands.DegreeInfo) error {
	if f != Text {
		return encode(w, f, d)
	}
	_, err := io.WriteString(w, DegreeText(d))
	return err
}

type recordSummary struct {
	ID        string            `json:"id" yaml:"id"`
	Label     string            `json:"label,omitempty" yaml:"label,omitempty"`
	Provider  string            `json:"provider" yaml:"provider"`
	CreatedAt string            `json:"createdAt" yaml:"createdAt"`
	Birth     string            `json:"birth" yaml:"birth"`
	Ascendant domain.ZodiacSign `json:"ascendant" yaml:"ascendant"`
}

// Records writes a one-line-per-chart listing
func Records(w io.Writer, f Format, records []ports.ChartRecord) error {
	summaries := make([]recordSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, recordSummary{
			ID:        r.ID,
			Label:     r.Label,
			Provider:  r.Provider,
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04"),
			Birth:     fmt.Sprintf("%s %s %s", r.Chart.Birth.Date, r.Chart.Birth.Time, r.Chart.Birth.Zone),
			Ascendant: r.Chart.AscendantSign,
		})
	}
	if f != Text {
		return encode(w, f, summaries)
	}

	if len(summaries) == 0 {
		_, err := io.WriteString(w, "No stored charts\n")
		return err
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{s.ID, s.Label, s.Birth, s.Ascendant.String(), s.Provider, s.CreatedAt})
	}
	_, err := fmt.Fprintln(w, newTable("ID", "Label", "Birth", "Ascendant", "Provider", "Saved").Rows(rows...).String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// DMS renders degrees as 12°34'56"
func DMS(deg float64) string {
	total := int(math.Round(deg * 3600))
	return fmt.Sprintf("%d°%02d'%02d\"", total/3600, (total%3600)/60, total%60)
}

// Coordinates renders a latitude/longitude pair as 28.6139N 77.2090E
func Coordinates(lat, lng float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lng < 0 {
		ew, lng = "W", -lng
	}
	return fmt.Sprintf("%.4f%s %.4f%s", lat, ns, lng, ew)
}

// ChartText is the plain text rendering of a chart, also used for clipboard export
func ChartText(k domain.Kundli) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Birth:      %s %s (%s)  %s\n", k.Birth.Date, k.Birth.Time, k.Birth.Zone, Coordinates(k.Birth.Latitude, k.Birth.Longitude))
	if k.TimeApproximate {
		b.WriteString("            birth time unknown, noon assumed; ascendant and houses are approximate\n")
	}
	fmt.Fprintf(&b, "Ayanamsa:   %s %s\n", k.AyanamsaSystem, DMS(k.Ayanamsa))
	fmt.Fprintf(&b, "Ascendant:  %s %s\n\n", k.AscendantSign, DMS(k.AscendantDegree-float64(k.AscendantSign)*domain.SignSpan))

	rows := make([][]string, 0, len(k.Planets))
	for _, p := range k.Planets {
		retro := ""
		if p.IsRetrograde {
			retro = "R"
		}
		rows = append(rows, []string{
			p.Planet.String(),
			p.Sign.String(),
			strconv.Itoa(p.House),
			DMS(p.SignDegree),
			p.Nakshatra.String(),
			strconv.Itoa(p.NakshatraPada),
			retro,
		})
	}
	b.WriteString(newTable("Planet", "Sign", "House", "Degree", "Nakshatra", "Pada", "R").Rows(rows...).String())
	b.WriteString("\n\nHouses:\n")
	for _, h := range k.Houses {
		fmt.Fprintf(&b, "  %2d  %s\n", h.House, h.Sign)
	}

	b.WriteString("\nDoshas:\n")
	if len(k.Doshas) == 0 {
		b.WriteString("  none\n")
	}
	for _, d := range k.Doshas {
		houses := make([]string, len(d.AffectedHouses))
		for i, h := range d.AffectedHouses {
			houses[i] = strconv.Itoa(h)
		}
		fmt.Fprintf(&b, "  %s (severity %d, houses %s)\n", d.Type, d.Severity, strings.Join(houses, ", "))
		fmt.Fprintf(&b, "    %s\n", d.Description)
		if len(d.AffectedLifeAreas) > 0 {
			fmt.Fprintf(&b, "    areas: %s\n", strings.Join(d.AffectedLifeAreas, ", "))
		}
	}

	fmt.Fprintf(&b, "\nCurrent dasha: %s mahadasha, %s to %s\n",
		k.CurrentDasha.Planet,
		k.CurrentDasha.Start.Format(dateLayout),
		k.CurrentDasha.End.Format(dateLayout),
	)
	return b.String()
}

// TimelineText is the plain text rendering of a dasha timeline
func TimelineText(t *commands.DashaTimelineResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Birth dasha: %s, %.2f years remaining at birth\n\n", t.BirthLord, t.BalanceYears)

	rows := make([][]string, 0, len(t.Mahadashas))
	for _, p := range t.Mahadashas {
		marker := ""
		if p.Planet == t.Current.Planet && p.Start.Equal(t.Current.Start) {
			marker = "*"
		}
		rows = append(rows, []string{marker, p.Planet.String(), p.Start.Format(dateLayout), p.End.Format(dateLayout)})
	}
	b.WriteString(newTable("", "Mahadasha", "Start", "End").Rows(rows...).String())

	fmt.Fprintf(&b, "\n\n%s mahadasha sub-periods:\n", t.Current.Planet)
	subRows := make([][]string, 0, len(t.Antardashas))
	for _, p := range t.Antardashas {
		marker := ""
		if t.CurrentAntardasha != nil && p.Start.Equal(t.CurrentAntardasha.Start) {
			marker = "*"
		}
		subRows = append(subRows, []string{marker, p.Planet.String(), p.Start.Format(dateLayout), p.End.Format(dateLayout)})
	}
	b.WriteString(newTable("", "Antardasha", "Start", "End").Rows(subRows...).String())
	b.WriteString("\n")
	return b.String()
}

// DegreeText is the plain text rendering of a classified longitude
func DegreeText(d *commands.DegreeInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Degree:    %.4f\n", d.Degree)
	fmt.Fprintf(&b, "Sign:      %s %s\n", d.Sign, DMS(d.SignDegree))
	fmt.Fprintf(&b, "Nakshatra: %s, pada %d (lord %s)\n", d.Nakshatra, d.Pada, d.NakshatraLord)
	if d.House > 0 {
		fmt.Fprintf(&b, "House:     %d\n", d.House)
	}
	return b.String()
}
