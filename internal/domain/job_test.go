package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJobPayload(t *testing.T, jobID string) []byte {
	t.Helper()
	payload, err := json.Marshal(CorrectionJobRecord{
		JobID: jobID,
		ObservationSystem: ObservationSystemRecord{
			Stations: []StationRecord{
				{Number: 1, Coordinate: CoordinateRecord{X: 100, Y: 200, Altitude: -60}},
				{Number: 2, Coordinate: CoordinateRecord{X: 150, Y: 250, Altitude: -90}},
			},
		},
		VelocityModel: VelocityModelRecord{
			Layers: []LayerRecord{
				{AltitudeInterval: IntervalRecord{MinVal: -90, MaxVal: -80}, Vp: 3},
				{AltitudeInterval: IntervalRecord{MinVal: -80, MaxVal: -70}, Vp: 2},
				{AltitudeInterval: IntervalRecord{MinVal: -70, MaxVal: -60}, Vp: 1},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func TestParseJobEvent(t *testing.T) {
	t.Run("valid job", func(t *testing.T) {
		payload := testJobPayload(t, "job-42")
		job, err := ParseJobEvent(RawEvent{Value: payload})

		require.NoError(t, err)
		assert.Equal(t, "job-42", job.ID)
		assert.Equal(t, 2, job.System.StationCount())
		assert.Equal(t, -90.0, job.System.BaseAltitude())
		assert.Equal(t, -90.0, job.Model.MinAltitude())
		assert.Equal(t, -60.0, job.Model.MaxAltitude())
		assert.Equal(t, payload, job.RawPayload)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseJobEvent(RawEvent{Value: []byte("{invalid json")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse correction job")
	})

	t.Run("empty observation system", func(t *testing.T) {
		payload := []byte(`{"observation_system":{"stations":[]},"velocity_model":{"layers":[{"altitude_interval":{"min_val":-90,"max_val":-60},"vp":2}]}}`)
		_, err := ParseJobEvent(RawEvent{Value: payload})
		assert.ErrorIs(t, err, ErrEmptyObservationSystem)
	})

	t.Run("empty model", func(t *testing.T) {
		payload := []byte(`{"observation_system":{"stations":[{"number":1,"coordinate":{"x":0,"y":0,"altitude":-60}}]},"velocity_model":{"layers":[]}}`)
		_, err := ParseJobEvent(RawEvent{Value: payload})
		assert.ErrorIs(t, err, ErrEmptyModel)
	})

	t.Run("inverted interval", func(t *testing.T) {
		payload := []byte(`{"observation_system":{"stations":[{"number":1,"coordinate":{"altitude":-60}}]},"velocity_model":{"layers":[{"altitude_interval":{"min_val":-60,"max_val":-90},"vp":2}]}}`)
		_, err := ParseJobEvent(RawEvent{Value: payload})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("non-positive velocity", func(t *testing.T) {
		payload := []byte(`{"observation_system":{"stations":[{"number":1,"coordinate":{"altitude":-60}}]},"velocity_model":{"layers":[{"altitude_interval":{"min_val":-90,"max_val":-60},"vp":0}]}}`)
		_, err := ParseJobEvent(RawEvent{Value: payload})
		assert.ErrorIs(t, err, ErrInvalidVelocity)
	})

	t.Run("discontiguous layers", func(t *testing.T) {
		payload := []byte(`{"observation_system":{"stations":[{"number":1,"coordinate":{"altitude":-60}}]},"velocity_model":{"layers":[{"altitude_interval":{"min_val":-90,"max_val":-80},"vp":3},{"altitude_interval":{"min_val":-70,"max_val":-60},"vp":1}]}}`)
		_, err := ParseJobEvent(RawEvent{Value: payload})
		assert.ErrorIs(t, err, ErrDiscontiguousLayers)
	})

	t.Run("deterministic generated ID", func(t *testing.T) {
		payload := testJobPayload(t, "")

		job1, err := ParseJobEvent(RawEvent{Value: payload})
		require.NoError(t, err)
		job2, err := ParseJobEvent(RawEvent{Value: payload})
		require.NoError(t, err)

		assert.NotEmpty(t, job1.ID)
		assert.True(t, len(job1.ID) > len("job-"))
		assert.Equal(t, job1.ID, job2.ID)
	})
}

func TestComputeCorrections(t *testing.T) {
	fixedTime := time.Date(2024, 5, 12, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	job, err := ParseJobEvent(RawEvent{Value: testJobPayload(t, "job-42")})
	require.NoError(t, err)

	result, err := ComputeCorrections(job)
	require.NoError(t, err)

	assert.Equal(t, "job-42", result.JobID)
	assert.Equal(t, -90.0, result.BaseAltitude)
	assert.Equal(t, fixedTime, result.ComputedAt)

	require.Len(t, result.Corrections, 2)
	assert.Equal(t, 1, result.Corrections[0].StationNumber)
	assert.InDelta(t, 10.0/3.0+10.0/2.0+10.0/1.0, result.Corrections[0].Value, 1e-9)
	assert.Equal(t, 2, result.Corrections[1].StationNumber)
	assert.Equal(t, 0.0, result.Corrections[1].Value)
}

func TestComputeCorrections_StationBelowModelFails(t *testing.T) {
	payload := []byte(`{"job_id":"job-bad","observation_system":{"stations":[{"number":1,"coordinate":{"altitude":-120}},{"number":2,"coordinate":{"altitude":-60}}]},"velocity_model":{"layers":[{"altitude_interval":{"min_val":-90,"max_val":-60},"vp":2}]}}`)
	job, err := ParseJobEvent(RawEvent{Value: payload})
	require.NoError(t, err)

	_, err = ComputeCorrections(job)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSerializeResult(t *testing.T) {
	fixedTime := time.Date(2024, 5, 12, 6, 0, 0, 0, time.UTC)

	result := CorrectionResult{
		JobID:        "job-42",
		BaseAltitude: -90,
		Corrections: []Correction{
			{StationNumber: 1, Value: 18.3},
			{StationNumber: 2, Value: 0},
		},
		ComputedAt: fixedTime,
	}

	out, err := SerializeResult(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("job-42"), out.Key)
	assert.Equal(t, "job-42", out.Headers["job_id"])
	assert.Equal(t, "2", out.Headers["stations"])
	assert.Equal(t, "2024-05-12T06:00:00Z", out.Headers["computed_at"])

	var rec CorrectionResultRecord
	require.NoError(t, json.Unmarshal(out.Value, &rec))

	want := CorrectionResultRecord{
		JobID:        "job-42",
		BaseAltitude: -90,
		Stations:     2,
		Corrections: []CorrectionRecord{
			{StationNumber: 1, Value: 18.3},
			{StationNumber: 2, Value: 0},
		},
		ComputedAt: fixedTime,
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("result record mismatch (-want +got):\n%s", diff)
	}
}

func TestRecords_RoundTrip(t *testing.T) {
	job, err := ParseJobEvent(RawEvent{Value: testJobPayload(t, "job-rt")})
	require.NoError(t, err)

	// Decomposing the validated domain values reproduces the wire shapes,
	// with model layers ordered shallowest first.
	systemRecord := job.System.Record()
	require.Len(t, systemRecord.Stations, 2)
	assert.Equal(t, 1, systemRecord.Stations[0].Number)
	assert.Equal(t, -60.0, systemRecord.Stations[0].Coordinate.Altitude)

	modelRecord := job.Model.Record()
	require.Len(t, modelRecord.Layers, 3)
	assert.Equal(t, IntervalRecord{MinVal: -70, MaxVal: -60}, modelRecord.Layers[0].AltitudeInterval)
	assert.Equal(t, 1.0, modelRecord.Layers[0].Vp)
	assert.Equal(t, IntervalRecord{MinVal: -90, MaxVal: -80}, modelRecord.Layers[2].AltitudeInterval)
}
