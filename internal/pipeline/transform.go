package pipeline

import (
	"context"
	"log/slog"

	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/domain"
	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/observability"
)

// StaticsTransformer implements Transformer: it parses a correction job,
// computes per-station static corrections, and serializes the result.
type StaticsTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a StaticsTransformer. Pass nil metrics to disable
// per-job shape observations (used by tools that reuse the transformer).
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *StaticsTransformer {
	return &StaticsTransformer{logger: logger, metrics: metrics}
}

func (t *StaticsTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	job, err := domain.ParseJobEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	if t.metrics != nil {
		t.metrics.StationsPerJob.Observe(float64(job.System.StationCount()))
		t.metrics.LayersPerModel.Observe(float64(len(job.Model.Layers())))
	}

	result, err := domain.ComputeCorrections(job)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.logger.Debug("corrections computed",
		"job_id", job.ID,
		"stations", job.System.StationCount(),
		"base_altitude", result.BaseAltitude,
	)

	return domain.SerializeResult(result)
}
