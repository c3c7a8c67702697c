package commands

import (
	"context"

	"kundli/internal/application"
	"kundli/internal/domain"
)

// DegreeInfo describes where a sidereal longitude falls
type DegreeInfo struct {
	Degree        float64           `json:"degree" yaml:"degree"`
	Sign          domain.ZodiacSign `json:"sign" yaml:"sign"`
	SignDegree    float64           `json:"signDegree" yaml:"signDegree"`
	Nakshatra     domain.Nakshatra  `json:"nakshatra" yaml:"nakshatra"`
	Pada          int               `json:"pada" yaml:"pada"`
	NakshatraLord domain.Planet     `json:"nakshatraLord" yaml:"nakshatraLord"`
	House         int               `json:"house,omitempty" yaml:"house,omitempty"` // 0 when no ascendant was given
}

// ClassifyDegreeCommand classifies a single sidereal longitude
type ClassifyDegreeCommand struct {
	Degree    float64
	Ascendant *float64
}

// NewClassifyDegreeCommand creates a new ClassifyDegreeCommand. ascendant may be nil.
func NewClassifyDegreeCommand(degree float64, ascendant *float64) *ClassifyDegreeCommand {
	return &ClassifyDegreeCommand{Degree: degree, Ascendant: ascendant}
}

// Validate rejects NaN and infinite degrees
func (c *ClassifyDegreeCommand) Validate() error {
	if err := domain.CheckFinite("degree", c.Degree); err != nil {
		return &application.ValidationError{Field: "degree", Message: err.Error()}
	}
	if c.Ascendant != nil {
		if err := domain.CheckFinite("ascendant", *c.Ascendant); err != nil {
			return &application.ValidationError{Field: "ascendant", Message: err.Error()}
		}
	}
	return nil
}

// Execute runs the classify command
func (c *ClassifyDegreeCommand) Execute(_ context.Context) (*DegreeInfo, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	d := domain.RoundDegree(c.Degree)
	sign := domain.SignOf(d)
	info := &DegreeInfo{
		Degree:        d,
		Sign:          sign,
		SignDegree:    domain.RoundDegree(d - float64(sign)*domain.SignSpan),
		Nakshatra:     domain.NakshatraOf(d),
		Pada:          domain.PadaOf(d),
		NakshatraLord: domain.DashaLord(domain.NakshatraOf(d)),
	}
	if c.Ascendant != nil {
		info.House = domain.WholeSignHouse(d, *c.Ascendant)
	}
	return info, nil
}
