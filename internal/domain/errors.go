package domain

import "errors"

// Validation failures surfaced by constructors and model queries. All are
// deterministic input errors; none is retryable. Match with errors.Is.
var (
	// ErrInvalidRange reports an interval whose min exceeds its max.
	ErrInvalidRange = errors.New("interval: min value greater than max value")

	// ErrInvalidVelocity reports a layer with a non-positive vp.
	ErrInvalidVelocity = errors.New("layer: velocity must be positive")

	// ErrEmptyModel reports a velocity model built from zero layers.
	ErrEmptyModel = errors.New("velocity model: empty layer list")

	// ErrDiscontiguousLayers reports a layer stack with gaps or overlaps.
	ErrDiscontiguousLayers = errors.New("velocity model: layers are not contiguous")

	// ErrEmptyObservationSystem reports an observation system with no stations.
	ErrEmptyObservationSystem = errors.New("observation system: no stations")

	// ErrOutOfRange reports a query altitude outside the model's range.
	ErrOutOfRange = errors.New("velocity model: altitude outside model range")
)
