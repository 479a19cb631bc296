package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// CorrectionJob is a parsed, validated compute request.
type CorrectionJob struct {
	ID     string
	System ObservationSystem
	Model  *VelocityModel

	RawPayload []byte
}

// CorrectionResult holds the corrections computed for one job.
type CorrectionResult struct {
	JobID        string
	BaseAltitude float64
	Corrections  []Correction
	ComputedAt   time.Time
}

// ParseJobEvent deserializes a RawEvent's value into a CorrectionJob,
// validating the observation system and velocity model on the way in. A job
// without an explicit job_id gets a deterministic ID derived from the
// payload, so replayed messages key the same result downstream.
func ParseJobEvent(raw RawEvent) (CorrectionJob, error) {
	var rec CorrectionJobRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return CorrectionJob{}, fmt.Errorf("parse correction job: %w", err)
	}

	system, err := rec.ObservationSystem.ToDomain()
	if err != nil {
		return CorrectionJob{}, fmt.Errorf("parse correction job: %w", err)
	}
	model, err := rec.VelocityModel.ToDomain()
	if err != nil {
		return CorrectionJob{}, fmt.Errorf("parse correction job: %w", err)
	}

	id := rec.JobID
	if id == "" {
		id = generateJobID(raw.Value)
	}

	return CorrectionJob{
		ID:         id,
		System:     system,
		Model:      model,
		RawPayload: raw.Value,
	}, nil
}

// generateJobID produces a deterministic ID from the job payload bytes.
func generateJobID(payload []byte) string {
	hash := sha256.Sum256(payload)
	return "job-" + hex.EncodeToString(hash[:8])
}

// ComputeCorrections runs the static-correction computation for a job and
// stamps the result with the current clock time.
func ComputeCorrections(job CorrectionJob) (CorrectionResult, error) {
	statics, err := NewStaticCorrection(job.System, job.Model)
	if err != nil {
		return CorrectionResult{}, fmt.Errorf("compute corrections: %w", err)
	}
	return CorrectionResult{
		JobID:        job.ID,
		BaseAltitude: job.System.BaseAltitude(),
		Corrections:  statics.Corrections(),
		ComputedAt:   clock.Now(),
	}, nil
}

// ResultRecord decomposes the result into its wire form.
func (r CorrectionResult) ResultRecord() CorrectionResultRecord {
	corrections := make([]CorrectionRecord, 0, len(r.Corrections))
	for _, c := range r.Corrections {
		corrections = append(corrections, c.Record())
	}
	return CorrectionResultRecord{
		JobID:        r.JobID,
		BaseAltitude: r.BaseAltitude,
		Stations:     len(r.Corrections),
		Corrections:  corrections,
		ComputedAt:   r.ComputedAt,
	}
}

// SerializeResult marshals a result into an OutputEvent keyed by job ID.
func SerializeResult(result CorrectionResult) (OutputEvent, error) {
	data, err := json.Marshal(result.ResultRecord())
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize correction result: %w", err)
	}
	return OutputEvent{
		Key:   []byte(result.JobID),
		Value: data,
		Headers: map[string]string{
			"job_id":      result.JobID,
			"stations":    fmt.Sprintf("%d", len(result.Corrections)),
			"computed_at": result.ComputedAt.Format(time.RFC3339),
		},
	}, nil
}
