package domain

import (
	"fmt"
	"time"
)

// Wire records mirror the JSON shapes exchanged with upstream acquisition
// tooling. They carry no invariants of their own; ToDomain converts them into
// validated domain values and Record decomposes domain values back.

// CoordinateRecord is the wire form of a Coordinate.
type CoordinateRecord struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Altitude float64 `json:"altitude"`
}

// StationRecord is the wire form of a Station.
type StationRecord struct {
	Number     int              `json:"number"`
	Coordinate CoordinateRecord `json:"coordinate"`
}

// ObservationSystemRecord is the wire form of an ObservationSystem.
type ObservationSystemRecord struct {
	Stations []StationRecord `json:"stations"`
}

// IntervalRecord is the wire form of an Interval.
type IntervalRecord struct {
	MinVal float64 `json:"min_val"`
	MaxVal float64 `json:"max_val"`
}

// LayerRecord is the wire form of a Layer.
type LayerRecord struct {
	AltitudeInterval IntervalRecord `json:"altitude_interval"`
	Vp               float64        `json:"vp"`
}

// VelocityModelRecord is the wire form of a VelocityModel.
type VelocityModelRecord struct {
	Layers []LayerRecord `json:"layers"`
}

// CorrectionRecord is the wire form of a Correction.
type CorrectionRecord struct {
	StationNumber int     `json:"station_number"`
	Value         float64 `json:"value"`
}

// CorrectionJobRecord is one compute request: an observation system plus the
// velocity model to correct it against. job_id is optional; absent IDs are
// derived deterministically from the payload.
type CorrectionJobRecord struct {
	JobID             string                  `json:"job_id,omitempty"`
	ObservationSystem ObservationSystemRecord `json:"observation_system"`
	VelocityModel     VelocityModelRecord     `json:"velocity_model"`
}

// CorrectionResultRecord is one compute response on the sink side.
type CorrectionResultRecord struct {
	JobID        string             `json:"job_id"`
	BaseAltitude float64            `json:"base_altitude"`
	Stations     int                `json:"stations"`
	Corrections  []CorrectionRecord `json:"corrections"`
	ComputedAt   time.Time          `json:"computed_at"`
}

// ToDomain validates the record and builds an Interval.
func (r IntervalRecord) ToDomain() (Interval, error) {
	return NewInterval(r.MinVal, r.MaxVal)
}

// ToDomain validates the record and builds a Layer.
func (r LayerRecord) ToDomain() (Layer, error) {
	interval, err := r.AltitudeInterval.ToDomain()
	if err != nil {
		return Layer{}, err
	}
	return NewLayer(interval, r.Vp)
}

// ToDomain validates every layer and builds a VelocityModel.
func (r VelocityModelRecord) ToDomain() (*VelocityModel, error) {
	layers := make([]Layer, 0, len(r.Layers))
	for i, lr := range r.Layers {
		layer, err := lr.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, layer)
	}
	return NewVelocityModel(layers)
}

// ToDomain builds an ObservationSystem from the record.
func (r ObservationSystemRecord) ToDomain() (ObservationSystem, error) {
	stations := make([]Station, 0, len(r.Stations))
	for _, sr := range r.Stations {
		stations = append(stations, Station{
			Number: sr.Number,
			Coordinate: Coordinate{
				X:        sr.Coordinate.X,
				Y:        sr.Coordinate.Y,
				Altitude: sr.Coordinate.Altitude,
			},
		})
	}
	return NewObservationSystem(stations)
}

// Record decomposes the interval into its wire form.
func (i Interval) Record() IntervalRecord {
	return IntervalRecord{MinVal: i.minVal, MaxVal: i.maxVal}
}

// Record decomposes the layer into its wire form.
func (l Layer) Record() LayerRecord {
	return LayerRecord{AltitudeInterval: l.Altitudes.Record(), Vp: l.Vp}
}

// Record decomposes the model into its wire form, layers shallowest first.
func (m *VelocityModel) Record() VelocityModelRecord {
	layers := make([]LayerRecord, 0, len(m.layers))
	for _, l := range m.layers {
		layers = append(layers, l.Record())
	}
	return VelocityModelRecord{Layers: layers}
}

// Record decomposes the system into its wire form, stations in input order.
func (s ObservationSystem) Record() ObservationSystemRecord {
	stations := make([]StationRecord, 0, len(s.stations))
	for _, st := range s.stations {
		stations = append(stations, StationRecord{
			Number: st.Number,
			Coordinate: CoordinateRecord{
				X:        st.Coordinate.X,
				Y:        st.Coordinate.Y,
				Altitude: st.Coordinate.Altitude,
			},
		})
	}
	return ObservationSystemRecord{Stations: stations}
}

// Record decomposes the correction into its wire form.
func (c Correction) Record() CorrectionRecord {
	return CorrectionRecord{StationNumber: c.StationNumber, Value: c.Value}
}
