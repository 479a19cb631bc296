package domain

import "fmt"

// Layer is a horizontal slab of the subsurface: an altitude interval with a
// uniform P-wave velocity.
type Layer struct {
	Altitudes Interval // top and bottom altitudes, meters
	Vp        float64  // propagation velocity, m/s
}

// NewLayer builds a layer, failing with ErrInvalidVelocity when vp <= 0
// (travel time would be undefined).
func NewLayer(altitudes Interval, vp float64) (Layer, error) {
	if vp <= 0 {
		return Layer{}, fmt.Errorf("%w: vp=%g", ErrInvalidVelocity, vp)
	}
	return Layer{Altitudes: altitudes, Vp: vp}, nil
}

// Thickness returns the vertical extent of the layer in meters.
func (l Layer) Thickness() float64 { return l.Altitudes.Length() }

// MiddleAltitude returns the altitude of the layer's center.
func (l Layer) MiddleAltitude() float64 { return l.Altitudes.Middle() }

// TravelTime returns the one-way vertical travel time through the full layer.
// Callers must guarantee Vp != 0.
func (l Layer) TravelTime() float64 { return l.Thickness() / l.Vp }

// String renders the layer bounds and velocity for diagnostics.
func (l Layer) String() string {
	return fmt.Sprintf("interval=%g/%g v=%g", l.Altitudes.Max(), l.Altitudes.Min(), l.Vp)
}
