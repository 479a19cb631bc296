// Command genmock generates random correction-job fixtures plus their
// expected results. It uses the actual domain package for the computation so
// the result fixture matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -jobs 25 -seed 1 \
//	  -jobs-out data/mock/correction_jobs.json \
//	  -results-out data/mock/static_corrections.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ArtCode-Kazan/PerforationLocationProject/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Fixture value ranges. Coordinates are meters in a local grid, altitudes and
// layer edges are meters relative to sea level, velocities are m/s.
const (
	minCoordinate = -1000.0
	maxCoordinate = 1000.0
	minEdge       = -2000.0
	maxEdge       = 200.0
	minVelocity   = 100.0
	maxVelocity   = 2000.0

	minLayers   = 2
	maxLayers   = 10
	minStations = 1
	maxStations = 10

	maxStationNumber = 100
)

var fixtureTime = time.Date(2024, time.May, 12, 6, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	jobCount := flag.Int("jobs", 25, "number of correction jobs to generate")
	seed := flag.Int64("seed", 1, "random seed for reproducible fixtures")
	jobsOut := flag.String("jobs-out", "data/mock/correction_jobs.json", "output path for the job fixture")
	resultsOut := flag.String("results-out", "data/mock/static_corrections.json", "output path for the expected-results fixture")
	flag.Parse()

	if *jobCount < 1 {
		flag.Usage()
		return fmt.Errorf("-jobs must be positive")
	}

	// Fixed clock for reproducible computed_at timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(*seed))

	jobs := make([]domain.CorrectionJobRecord, 0, *jobCount)
	results := make([]domain.CorrectionResultRecord, 0, *jobCount)

	for i := 0; i < *jobCount; i++ {
		jobRec := randomJob(rng, fmt.Sprintf("job-%04d", i+1))

		payload, err := json.Marshal(jobRec)
		if err != nil {
			return fmt.Errorf("marshal job %s: %w", jobRec.JobID, err)
		}
		job, err := domain.ParseJobEvent(domain.RawEvent{Value: payload})
		if err != nil {
			return fmt.Errorf("parse job %s: %w", jobRec.JobID, err)
		}
		result, err := domain.ComputeCorrections(job)
		if err != nil {
			return fmt.Errorf("compute job %s: %w", jobRec.JobID, err)
		}

		jobs = append(jobs, jobRec)
		results = append(results, result.ResultRecord())
	}

	if err := writeJSON(*jobsOut, jobs); err != nil {
		return fmt.Errorf("writing job fixture: %w", err)
	}
	log.Printf("wrote job fixture: %s (%d jobs)", *jobsOut, len(jobs))

	if err := writeJSON(*resultsOut, results); err != nil {
		return fmt.Errorf("writing results fixture: %w", err)
	}
	log.Printf("wrote results fixture: %s", *resultsOut)

	printStats(results)
	return nil
}

// randomJob builds one job with a contiguous random velocity model and
// stations placed inside the model's altitude range.
func randomJob(rng *rand.Rand, jobID string) domain.CorrectionJobRecord {
	layerCount := minLayers + rng.Intn(maxLayers-minLayers+1)
	edges := randomEdges(rng, layerCount+1)

	layers := make([]domain.LayerRecord, 0, layerCount)
	for i := 0; i < layerCount; i++ {
		layers = append(layers, domain.LayerRecord{
			AltitudeInterval: domain.IntervalRecord{MinVal: edges[i], MaxVal: edges[i+1]},
			Vp:               uniform(rng, minVelocity, maxVelocity),
		})
	}

	stationCount := minStations + rng.Intn(maxStations-minStations+1)
	numbers := rng.Perm(maxStationNumber)[:stationCount]
	sort.Ints(numbers)

	stations := make([]domain.StationRecord, 0, stationCount)
	for _, n := range numbers {
		stations = append(stations, domain.StationRecord{
			Number: n + 1,
			Coordinate: domain.CoordinateRecord{
				X:        uniform(rng, minCoordinate, maxCoordinate),
				Y:        uniform(rng, minCoordinate, maxCoordinate),
				Altitude: uniform(rng, edges[0], edges[len(edges)-1]),
			},
		})
	}

	return domain.CorrectionJobRecord{
		JobID:             jobID,
		ObservationSystem: domain.ObservationSystemRecord{Stations: stations},
		VelocityModel:     domain.VelocityModelRecord{Layers: layers},
	}
}

// randomEdges returns n distinct layer boundaries in ascending order.
func randomEdges(rng *rand.Rand, n int) []float64 {
	seen := make(map[float64]bool, n)
	edges := make([]float64, 0, n)
	for len(edges) < n {
		e := uniform(rng, minEdge, maxEdge)
		if seen[e] {
			continue
		}
		seen[e] = true
		edges = append(edges, e)
	}
	sort.Float64s(edges)
	return edges
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(results []domain.CorrectionResultRecord) {
	var stations, zeros int
	var maxValue float64
	for i := range results {
		stations += results[i].Stations
		for _, c := range results[i].Corrections {
			if c.Value == 0 {
				zeros++
			}
			if c.Value > maxValue {
				maxValue = c.Value
			}
		}
	}
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Jobs: %d\n", len(results))
	fmt.Printf("Stations: %d\n", stations)
	fmt.Printf("Zero corrections (station at base): %d\n", zeros)
	fmt.Printf("Max correction: %g s\n", maxValue)
}
