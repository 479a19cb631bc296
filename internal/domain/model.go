package domain

import (
	"fmt"
	"sort"
)

// VelocityModel is an immutable, ordered stack of contiguous layers covering
// a single altitude range. Safe to share across goroutines once constructed.
type VelocityModel struct {
	layers []Layer // sorted by descending top altitude
}

// NewVelocityModel builds a model from an arbitrary-order layer list. The
// input slice is copied before sorting, so the caller's slice is never
// mutated. Fails with ErrEmptyModel on empty input and with
// ErrDiscontiguousLayers when the sorted stack has gaps or overlaps.
func NewVelocityModel(layers []Layer) (*VelocityModel, error) {
	if len(layers) == 0 {
		return nil, ErrEmptyModel
	}

	sorted := make([]Layer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Altitudes.Max() > sorted[j].Altitudes.Max()
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Altitudes.Max() != sorted[i-1].Altitudes.Min() {
			return nil, fmt.Errorf("%w: %v does not adjoin %v",
				ErrDiscontiguousLayers, sorted[i], sorted[i-1])
		}
	}

	return &VelocityModel{layers: sorted}, nil
}

// Layers returns the layer stack, shallowest first. The returned slice is
// shared and must not be modified.
func (m *VelocityModel) Layers() []Layer { return m.layers }

// MinAltitude returns the bottom of the deepest layer.
func (m *VelocityModel) MinAltitude() float64 {
	return m.layers[len(m.layers)-1].Altitudes.Min()
}

// MaxAltitude returns the top of the shallowest layer.
func (m *VelocityModel) MaxAltitude() float64 {
	return m.layers[0].Altitudes.Max()
}

// VelocityAt returns the velocity of the layer containing the given altitude.
//
// Membership is half-open: a point at a layer's top belongs to that layer, a
// point at its bottom belongs to the next deeper layer. The model's absolute
// bottom is inclusive and resolves to the deepest layer. Altitudes outside
// [MinAltitude, MaxAltitude] fail with ErrOutOfRange.
func (m *VelocityModel) VelocityAt(altitude float64) (float64, error) {
	if altitude < m.MinAltitude() || altitude > m.MaxAltitude() {
		return 0, fmt.Errorf("%w: altitude %g not in [%g, %g]",
			ErrOutOfRange, altitude, m.MinAltitude(), m.MaxAltitude())
	}

	if altitude == m.MinAltitude() {
		return m.layers[len(m.layers)-1].Vp, nil
	}

	for _, layer := range m.layers {
		bottom, top := layer.Altitudes.Bounds()
		if bottom < altitude && altitude <= top {
			return layer.Vp, nil
		}
	}

	// Unreachable for a contiguous stack; kept as a guard.
	return 0, fmt.Errorf("%w: altitude %g matched no layer", ErrOutOfRange, altitude)
}

// IntervalVelocity returns the effective velocity for traversing the given
// altitude span: total thickness divided by total travel time across every
// layer the span intersects. A zero-length span returns the velocity at that
// point directly. Fails with ErrOutOfRange if either bound lies outside the
// model.
func (m *VelocityModel) IntervalVelocity(span Interval) (float64, error) {
	if span.Min() < m.MinAltitude() || span.Max() > m.MaxAltitude() {
		return 0, fmt.Errorf("%w: span [%g, %g] not in [%g, %g]",
			ErrOutOfRange, span.Min(), span.Max(), m.MinAltitude(), m.MaxAltitude())
	}

	if span.Length() == 0 {
		return m.VelocityAt(span.Max())
	}

	var totalThickness, totalTime float64
	for _, layer := range m.layers {
		bottom, top := layer.Altitudes.Bounds()
		if bottom > span.Max() {
			continue
		}
		// Layers are processed top-down; once a layer's top is below the
		// span's bottom no deeper layer can intersect.
		if top < span.Min() {
			break
		}

		var thickness float64
		switch {
		case bottom <= span.Max() && span.Max() < top:
			thickness = span.Max() - bottom
		case bottom < span.Min() && span.Min() <= top:
			thickness = top - span.Min()
		default:
			thickness = layer.Thickness()
		}

		totalTime += thickness / layer.Vp
		totalThickness += thickness
	}

	return totalThickness / totalTime, nil
}
