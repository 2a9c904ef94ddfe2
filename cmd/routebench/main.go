// Command routebench runs every routing algorithm over one instance and
// writes a JSON report with distances, timings and the host description.
//
//	routebench -catalog data/seeds/catalog.json -start "Depot A" -dest "Customer 1" -dest "Customer 2"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"logistics-route-service/internal/adapters/repositories"
	"logistics-route-service/internal/config"
	"logistics-route-service/internal/domain"
	"logistics-route-service/internal/platform/sysinfo"
	"logistics-route-service/internal/services"
)

type stringList []string

func (l *stringList) String() string { return fmt.Sprintf("%v", *l) }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type Result struct {
	Algorithm       string   `json:"algorithm"`
	Stops           []string `json:"stops"`
	TotalDistanceKm float64  `json:"total_distance_km"`
	EstimatedTimeHr float64  `json:"estimated_time_hr"`
	AvgElapsedMs    float64  `json:"avg_elapsed_ms"`
	Generations     int      `json:"generations,omitempty"`
	StopReason      string   `json:"stop_reason,omitempty"`
	Error           string   `json:"error,omitempty"`
}

type Report struct {
	Start        string       `json:"start"`
	Destinations []string     `json:"destinations"`
	Runs         int          `json:"runs"`
	Seed         int64        `json:"seed"`
	System       sysinfo.Info `json:"system"`
	Results      []Result     `json:"results"`
	Best         string       `json:"best_algorithm"`
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	var dests, algos stringList

	fs := flag.NewFlagSet("routebench", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "data/seeds/catalog.json", "Path to the catalog JSON with locations")
	optimizerPath := fs.String("config", "", "Optional optimizer YAML")
	start := fs.String("start", "Depot A", "Start depot name")
	fs.Var(&dests, "dest", "Destination name (repeatable). Defaults to every non-depot location")
	fs.Var(&algos, "algorithm", "Algorithm to run (repeatable). Defaults to dijkstra, astar and genetic")
	seed := fs.Int64("seed", 42, "Genetic seed. 0 seeds from the clock")
	runs := fs.Int("runs", 1, "Runs per algorithm for timing")
	output := fs.String("output", "", "Report path. Defaults to stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runs < 1 {
		return errors.New("routebench: -runs must be at least 1")
	}

	catalog, err := repositories.LoadCatalogJSON(*catalogPath)
	if err != nil {
		return fmt.Errorf("routebench: %w", err)
	}

	opt := config.DefaultOptimizer()
	if *optimizerPath != "" {
		if opt, err = config.LoadOptimizer(*optimizerPath); err != nil {
			return fmt.Errorf("routebench: %w", err)
		}
	}
	// Benchmarks are bounded by generations so seeded runs stay comparable.
	opt.Genetic.TimeBudget = 0
	opt.Genetic.Seed = *seed

	if len(dests) == 0 {
		for _, l := range catalog.Locations {
			if !l.IsDepot {
				dests = append(dests, l.Name)
			}
		}
	}
	if len(algos) == 0 {
		algos = stringList{string(domain.AlgorithmDijkstra), string(domain.AlgorithmAStar), string(domain.AlgorithmGenetic)}
	}

	assembler := services.NewRouteAssembler(services.AssemblerOptions{
		SpeedKmh:        opt.SpeedKmh,
		StopServiceTime: opt.StopServiceTime(),
		HeuristicWeight: opt.AStar.HeuristicWeight,
		Genetic:         opt.Genetic,
	})

	report := Report{
		Start:        *start,
		Destinations: dests,
		Runs:         *runs,
		Seed:         *seed,
		System:       sysinfo.Collect(),
	}

	bestDist := -1.0
	for _, algo := range algos {
		res := bench(assembler, AssembleInput{Start: *start, Destinations: dests, Locations: catalog.Locations}, strings.TrimSpace(algo), *runs)
		if res.Error == "" && (bestDist < 0 || res.TotalDistanceKm < bestDist) {
			bestDist = res.TotalDistanceKm
			report.Best = res.Algorithm
		}
		report.Results = append(report.Results, res)
		log.Printf("algorithm=%s distance_km=%.3f avg_ms=%.3f err=%q", res.Algorithm, res.TotalDistanceKm, res.AvgElapsedMs, res.Error)
	}

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("routebench: create report: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("routebench: write report: %w", err)
	}
	return nil
}

type AssembleInput struct {
	Start        string
	Destinations []string
	Locations    []domain.Location
}

// bench assembles the same request runs times and reports the last route with the mean duration.
func bench(a *services.RouteAssembler, in AssembleInput, algo string, runs int) Result {
	res := Result{Algorithm: algo}

	var (
		total     time.Duration
		assembled services.Assembled
		err       error
	)
	for i := 0; i < runs; i++ {
		began := time.Now()
		assembled, err = a.Assemble(context.Background(), services.AssembleRequest{
			Start:        in.Start,
			Destinations: in.Destinations,
			Locations:    in.Locations,
			Algorithm:    algo,
		})
		total += time.Since(began)
		if err != nil {
			res.Error = err.Error()
			return res
		}
	}

	route := assembled.Route
	res.Stops = route.StopNames()
	res.TotalDistanceKm = route.TotalDistanceKm
	res.EstimatedTimeHr = route.EstimatedTimeHr
	res.AvgElapsedMs = float64(total.Microseconds()) / 1000 / float64(runs)
	if ev := assembled.Evolution; ev != nil {
		res.Generations = ev.Generations
		res.StopReason = string(ev.StopReason)
	}
	return res
}
