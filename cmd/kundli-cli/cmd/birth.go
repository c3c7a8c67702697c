package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"kundli/internal/adapters/format"
	"kundli/internal/application"
)

// birthFlags are the flags shared by commands that take birth details
type birthFlags struct {
	date   string
	clock  string
	zone   string
	lat    float64
	lng    float64
	asOf   string
	output string
}

func (b *birthFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&b.date, "date", "d", "", "date of birth, YYYY-MM-DD")
	f.StringVarP(&b.clock, "time", "t", "", "local time of birth, HH:MM (omit if unknown)")
	f.StringVarP(&b.zone, "zone", "z", "", "UTC offset or IANA zone (default from config)")
	f.Float64Var(&b.lat, "lat", 0, "latitude, north positive")
	f.Float64Var(&b.lng, "lng", 0, "longitude, east positive")
	f.StringVar(&b.asOf, "as-of", "", "date for the running dasha, YYYY-MM-DD (default today)")
	f.StringVarP(&b.output, "output", "o", "text", "output format: text, json or yaml")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
}

func (b *birthFlags) input() application.BirthInput {
	zone := b.zone
	if zone == "" {
		zone = app.Config.Timezone
	}
	return application.BirthInput{
		DateOfBirth: b.date,
		TimeOfBirth: b.clock,
		Zone:        zone,
		Latitude:    b.lat,
		Longitude:   b.lng,
	}
}

func (b *birthFlags) asOfTime() (time.Time, error) {
	if b.asOf == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", b.asOf)
	if err != nil {
		return time.Time{}, &application.ValidationError{Field: "asOf", Message: "expected YYYY-MM-DD, got: " + b.asOf}
	}
	return t, nil
}

func (b *birthFlags) format() (format.Format, error) {
	return format.Parse(b.output)
}
