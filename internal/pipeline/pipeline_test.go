package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/domain"
	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/observability"
	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	mu     sync.Mutex
	events []domain.RawEvent
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	m.mu.Lock()
	if len(m.events) == 0 {
		m.mu.Unlock()
		// Block until context cancelled to simulate waiting for messages.
		<-ctx.Done()
		return nil, ctx.Err()
	}

	n := min(batchSize, len(m.events))
	batch := m.events[:n]
	m.events = m.events[n:]
	m.mu.Unlock()
	return batch, nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	if m.err != nil {
		return domain.OutputEvent{}, m.err
	}
	return domain.OutputEvent{Key: raw.Key, Value: raw.Value}, nil
}

type mockLoader struct {
	mu     sync.Mutex
	loaded []domain.OutputEvent
	err    error
}

func (m *mockLoader) LoadBatch(_ context.Context, events []domain.OutputEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, events...)
	return nil
}

func (m *mockLoader) all() []domain.OutputEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeJobEvent(t, "job-1")

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, discardLogger(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)

	loaded := ldr.all()
	require.Len(t, loaded, 1)
	assert.Equal(t, raw.Value, loaded[0].Value)
	assert.NoError(t, p.CheckReadiness(ctx))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no events — will block
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, discardLogger(), newTestMetrics(), 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.all())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_TransformErrorSkipsJob(t *testing.T) {
	raw := makeJobEvent(t, "job-2")

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{err: errors.New("bad job")}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, discardLogger(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.all())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	var commitCalled bool

	raw := makeJobEvent(t, "job-5")
	raw.Topic = "correction-jobs"
	raw.Commit = func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{events: []domain.RawEvent{raw}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, discardLogger(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, commitCalled)
}

func TestStaticsTransformer_Transform(t *testing.T) {
	raw := makeJobEvent(t, "job-3")

	tfm := pipeline.NewTransformer(discardLogger(), newTestMetrics())
	out, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, []byte("job-3"), out.Key)
	assert.Equal(t, "job-3", out.Headers["job_id"])
	assert.Equal(t, "2", out.Headers["stations"])

	var rec domain.CorrectionResultRecord
	require.NoError(t, json.Unmarshal(out.Value, &rec))
	assert.Equal(t, "job-3", rec.JobID)
	assert.Equal(t, -90.0, rec.BaseAltitude)
	require.Len(t, rec.Corrections, 2)
	assert.Equal(t, 1, rec.Corrections[0].StationNumber)
	assert.InDelta(t, 10.0/3.0+10.0/2.0+10.0/1.0, rec.Corrections[0].Value, 1e-9)
	assert.Equal(t, 2, rec.Corrections[1].StationNumber)
	assert.Equal(t, 0.0, rec.Corrections[1].Value)
}

func TestStaticsTransformer_Transform_InvalidJob(t *testing.T) {
	tfm := pipeline.NewTransformer(discardLogger(), nil)

	_, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("not json")})
	assert.Error(t, err)

	// Structurally valid JSON, semantically invalid model.
	_, err = tfm.Transform(context.Background(), domain.RawEvent{
		Value: []byte(`{"observation_system":{"stations":[{"number":1,"coordinate":{"altitude":-60}}]},"velocity_model":{"layers":[]}}`),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyModel)
}

// --- helpers ---

// makeJobEvent builds a raw event carrying the reference three-layer model
// and two stations (one at the top of the model, one at the base).
func makeJobEvent(t *testing.T, jobID string) domain.RawEvent {
	t.Helper()
	data, err := json.Marshal(domain.CorrectionJobRecord{
		JobID: jobID,
		ObservationSystem: domain.ObservationSystemRecord{
			Stations: []domain.StationRecord{
				{Number: 1, Coordinate: domain.CoordinateRecord{X: 100, Y: 200, Altitude: -60}},
				{Number: 2, Coordinate: domain.CoordinateRecord{X: 150, Y: 250, Altitude: -90}},
			},
		},
		VelocityModel: domain.VelocityModelRecord{
			Layers: []domain.LayerRecord{
				{AltitudeInterval: domain.IntervalRecord{MinVal: -90, MaxVal: -80}, Vp: 3},
				{AltitudeInterval: domain.IntervalRecord{MinVal: -80, MaxVal: -70}, Vp: 2},
				{AltitudeInterval: domain.IntervalRecord{MinVal: -70, MaxVal: -60}, Vp: 1},
			},
		},
	})
	require.NoError(t, err)
	return domain.RawEvent{
		Key:   []byte(jobID),
		Value: data,
	}
}
