package transit

import (
	"errors"
	"fmt"
	"maps"

	"github.com/go-playground/validator/v10"
)

// ErrPartialLocation is returned when only one of latitude or longitude is set.
var ErrPartialLocation = errors.New("stop location requires both latitude and longitude")

// ErrInvalidStop is returned when a stop fails the coordinate range checks.
var ErrInvalidStop = errors.New("invalid stop")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Stop is a physical location where buses arrive.
type Stop struct {
	// ID is the stop identifier shared across every source.
	ID int `json:"id"`
	// Name is the human readable stop name. Optional.
	Name string `json:"name,omitempty" validate:"max=512"`
	// Lat is the latitude in decimal degrees.
	Lat *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	// Lon is the longitude in decimal degrees.
	Lon *float64 `json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	// Extra holds source specific attributes.
	Extra map[string]any `json:"extra,omitempty"`
}

// NewStop builds a Stop, rejecting a location with a single coordinate.
func NewStop(id int, name string, lat, lon *float64) (*Stop, error) {
	s := &Stop{ID: id, Name: name, Lat: lat, Lon: lon}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// HasLocation reports whether both coordinates are set.
func (s *Stop) HasLocation() bool {
	return s.Lat != nil && s.Lon != nil
}

// Validate checks the location invariant and the coordinate ranges.
func (s *Stop) Validate() error {
	if (s.Lat == nil) != (s.Lon == nil) {
		return ErrPartialLocation
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w %d: %w", ErrInvalidStop, s.ID, err)
	}
	return nil
}

// Clone returns a copy that shares no mutable state with s.
// Extra is copied one level deep.
func (s *Stop) Clone() *Stop {
	if s == nil {
		return nil
	}
	c := *s
	if s.Lat != nil {
		lat := *s.Lat
		c.Lat = &lat
	}
	if s.Lon != nil {
		lon := *s.Lon
		c.Lon = &lon
	}
	if s.Extra != nil {
		c.Extra = maps.Clone(s.Extra)
	}
	return &c
}

// Float returns a pointer to v. Handy for optional coordinates and times.
func Float(v float64) *float64 {
	return &v
}
