package domain

// Coordinate is a 3D position: planar x/y in meters plus absolute altitude.
type Coordinate struct {
	X        float64
	Y        float64
	Altitude float64
}

// Station is a numbered observation point.
type Station struct {
	Number     int
	Coordinate Coordinate
}

// ObservationSystem is an immutable set of observation stations.
type ObservationSystem struct {
	stations []Station
}

// NewObservationSystem builds a system from a non-empty station list, failing
// with ErrEmptyObservationSystem otherwise. The input slice is copied.
func NewObservationSystem(stations []Station) (ObservationSystem, error) {
	if len(stations) == 0 {
		return ObservationSystem{}, ErrEmptyObservationSystem
	}
	owned := make([]Station, len(stations))
	copy(owned, stations)
	return ObservationSystem{stations: owned}, nil
}

// Stations returns the stations in input order. The returned slice is shared
// and must not be modified.
func (s ObservationSystem) Stations() []Station { return s.stations }

// StationCount returns the number of stations.
func (s ObservationSystem) StationCount() int { return len(s.stations) }

// BaseAltitude returns the minimum station altitude, the reference datum for
// static corrections.
func (s ObservationSystem) BaseAltitude() float64 {
	base := s.stations[0].Coordinate.Altitude
	for _, st := range s.stations[1:] {
		if st.Coordinate.Altitude < base {
			base = st.Coordinate.Altitude
		}
	}
	return base
}
