// Package domain models a one-dimensional subsurface velocity model and the
// static time corrections derived from it.
//
// # Velocity model
//
// The subsurface is a stack of horizontal layers, each bounded by an altitude
// interval and carrying a single P-wave velocity (vp, m/s). Layers are kept
// sorted by descending top altitude: index 0 is the shallowest layer, the
// last index the deepest. A well-formed stack is contiguous and
// non-overlapping; [NewVelocityModel] rejects anything else.
//
// Layer membership uses a half-open convention: a point at a layer's top
// boundary belongs to that layer, a point at its bottom boundary belongs to
// the next deeper layer. The single exception is the model's absolute bottom,
// which is inclusive — so every altitude in [min, max] resolves to exactly
// one layer.
//
// The interval velocity across an altitude span is the total thickness
// traversed divided by the total one-way travel time accumulated across every
// layer the span intersects (a thickness-weighted harmonic combination, not
// an arithmetic mean of velocities).
//
// # Static corrections
//
// An observation system is a set of numbered stations with 3D coordinates.
// The reference datum (base altitude) is the minimum station altitude. The
// static correction for a station is the one-way vertical travel time between
// the base altitude and the station's altitude:
//
//	value = span.Length() / IntervalVelocity(span)
//
// i.e. a time shift in seconds, one per station, in station order.
//
// # Job identifiers
//
// Correction jobs arriving without an explicit job_id get a deterministic
// SHA-256-derived ID of the payload, so replayed messages produce the same
// result key downstream.
package domain
