package domain

import "fmt"

// Correction is a per-station static correction: the one-way vertical travel
// time in seconds between the base altitude and the station altitude.
type Correction struct {
	StationNumber int
	Value         float64
}

// StaticCorrection binds an observation system to a velocity model and holds
// the corrections computed for every station, in station order.
type StaticCorrection struct {
	system      ObservationSystem
	model       *VelocityModel
	corrections []Correction
}

// NewStaticCorrection computes one correction per station eagerly. A station
// below the base altitude yields an invalid query interval and aborts the
// whole batch; stations are never skipped silently.
func NewStaticCorrection(system ObservationSystem, model *VelocityModel) (*StaticCorrection, error) {
	stations := system.Stations()
	base := system.BaseAltitude()

	corrections := make([]Correction, 0, len(stations))
	for _, station := range stations {
		span, err := NewInterval(base, station.Coordinate.Altitude)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", station.Number, err)
		}
		velocity, err := model.IntervalVelocity(span)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", station.Number, err)
		}
		corrections = append(corrections, Correction{
			StationNumber: station.Number,
			Value:         span.Length() / velocity,
		})
	}

	return &StaticCorrection{
		system:      system,
		model:       model,
		corrections: corrections,
	}, nil
}

// System returns the observation system the corrections were computed for.
func (c *StaticCorrection) System() ObservationSystem { return c.system }

// Model returns the velocity model the corrections were computed against.
func (c *StaticCorrection) Model() *VelocityModel { return c.model }

// Corrections returns one entry per station, in station order. The returned
// slice is shared and must not be modified.
func (c *StaticCorrection) Corrections() []Correction { return c.corrections }
