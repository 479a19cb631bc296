package domain

import "fmt"

// Interval is a closed numeric range [min, max]. The zero value is the
// degenerate interval [0, 0]; use NewInterval to enforce ordering.
type Interval struct {
	minVal float64
	maxVal float64
}

// NewInterval builds an interval, failing with ErrInvalidRange when min > max.
// Zero-length intervals are valid.
func NewInterval(minVal, maxVal float64) (Interval, error) {
	if minVal > maxVal {
		return Interval{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, minVal, maxVal)
	}
	return Interval{minVal: minVal, maxVal: maxVal}, nil
}

// Min returns the lower bound.
func (i Interval) Min() float64 { return i.minVal }

// Max returns the upper bound.
func (i Interval) Max() float64 { return i.maxVal }

// Bounds returns both bounds as (min, max).
func (i Interval) Bounds() (float64, float64) { return i.minVal, i.maxVal }

// Length returns max - min.
func (i Interval) Length() float64 { return i.maxVal - i.minVal }

// Middle returns the center point of the interval.
func (i Interval) Middle() float64 { return (i.maxVal + i.minVal) / 2 }
