// Command validate performs end-to-end integrity checks across the mock data
// fixtures: job well-formedness, recomputation of every expected result, and
// job/result correspondence.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -jobs data/mock/correction_jobs.json \
//	  -results data/mock/static_corrections.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/domain"
	"github.com/jonboulle/clockwork"
)

// valueEpsilon is the tolerance for comparing recomputed correction values.
const valueEpsilon = 1e-9

var fixtureTime = time.Date(2024, time.May, 12, 6, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	jobsPath := flag.String("jobs", "data/mock/correction_jobs.json", "path to the job fixture")
	resultsPath := flag.String("results", "data/mock/static_corrections.json", "path to the expected-results fixture")
	flag.Parse()

	if code := run(*jobsPath, *resultsPath); code != 0 {
		os.Exit(code)
	}
}

func run(jobsPath, resultsPath string) int {
	// Fixed clock matching genmock so recomputed timestamps line up.
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	fmt.Println("=== Static Correction Fixture Validation ===")
	fmt.Println()

	jobs, err := loadJSON[domain.CorrectionJobRecord](jobsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load jobs: %v\n", err)
		return 1
	}

	results, err := loadJSON[domain.CorrectionResultRecord](resultsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load results: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateJobs(jobs),
		validateCorrespondence(jobs, results),
		validateRecomputation(jobs, results),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d jobs, %d results\n", len(jobs), len(results))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Job Well-Formedness ──
// Every job must parse into a valid observation system and velocity model.

func validateJobs(jobs []domain.CorrectionJobRecord) *phase {
	p := &phase{name: "Phase 1: Job Well-Formedness"}

	seen := map[string]bool{}
	for i, rec := range jobs {
		if rec.JobID == "" {
			p.errorf("job %d: missing job_id", i)
			continue
		}
		if seen[rec.JobID] {
			p.errorf("job %d: duplicate job_id %q", i, rec.JobID)
		}
		seen[rec.JobID] = true

		if _, err := parseJob(rec); err != nil {
			p.errorf("job %s: %v", rec.JobID, err)
		}
	}
	return p
}

// ── Phase 2: Job/Result Correspondence ──
// Results must line up with jobs one-to-one, in order, with matching station
// numbers.

func validateCorrespondence(jobs []domain.CorrectionJobRecord, results []domain.CorrectionResultRecord) *phase {
	p := &phase{name: "Phase 2: Job/Result Correspondence"}

	if len(jobs) != len(results) {
		p.errorf("count mismatch: %d jobs, %d results", len(jobs), len(results))
		return p
	}

	for i := range jobs {
		job, res := jobs[i], results[i]
		if job.JobID != res.JobID {
			p.errorf("index %d: job_id mismatch: job=%q, result=%q", i, job.JobID, res.JobID)
			continue
		}
		if res.Stations != len(res.Corrections) {
			p.errorf("result %s: stations=%d but %d corrections", res.JobID, res.Stations, len(res.Corrections))
		}
		if len(job.ObservationSystem.Stations) != len(res.Corrections) {
			p.errorf("result %s: job has %d stations, result has %d corrections",
				res.JobID, len(job.ObservationSystem.Stations), len(res.Corrections))
			continue
		}
		for j, st := range job.ObservationSystem.Stations {
			if res.Corrections[j].StationNumber != st.Number {
				p.errorf("result %s: correction %d: station %d, expected %d (order must match the job)",
					res.JobID, j, res.Corrections[j].StationNumber, st.Number)
			}
		}
	}
	return p
}

// ── Phase 3: Recomputation ──
// Re-run the computation for every job and compare against the fixture.

func validateRecomputation(jobs []domain.CorrectionJobRecord, results []domain.CorrectionResultRecord) *phase {
	p := &phase{name: "Phase 3: Recomputation"}

	if len(jobs) != len(results) {
		p.errorf("count mismatch: %d jobs, %d results", len(jobs), len(results))
		return p
	}

	for i := range jobs {
		expected := results[i]

		job, err := parseJob(jobs[i])
		if err != nil {
			p.errorf("job %s: %v", jobs[i].JobID, err)
			continue
		}
		result, err := domain.ComputeCorrections(job)
		if err != nil {
			p.errorf("job %s: compute: %v", job.ID, err)
			continue
		}
		got := result.ResultRecord()

		if !floatEq(got.BaseAltitude, expected.BaseAltitude) {
			p.errorf("job %s: base_altitude: expected %g, got %g", job.ID, expected.BaseAltitude, got.BaseAltitude)
		}
		if !got.ComputedAt.Equal(expected.ComputedAt) {
			p.errorf("job %s: computed_at: expected %s, got %s",
				job.ID, expected.ComputedAt.Format(time.RFC3339), got.ComputedAt.Format(time.RFC3339))
		}
		if len(got.Corrections) != len(expected.Corrections) {
			p.errorf("job %s: expected %d corrections, got %d", job.ID, len(expected.Corrections), len(got.Corrections))
			continue
		}
		for j := range got.Corrections {
			if !floatEq(got.Corrections[j].Value, expected.Corrections[j].Value) {
				p.errorf("job %s: station %d: expected %.12g, got %.12g",
					job.ID, expected.Corrections[j].StationNumber,
					expected.Corrections[j].Value, got.Corrections[j].Value)
			}
		}
	}
	return p
}

// ── Helpers ──

func parseJob(rec domain.CorrectionJobRecord) (domain.CorrectionJob, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return domain.CorrectionJob{}, fmt.Errorf("marshal: %w", err)
	}
	return domain.ParseJobEvent(domain.RawEvent{Value: payload})
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < valueEpsilon
}
