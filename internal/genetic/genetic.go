// Package genetic searches destination orderings with a genetic algorithm.
//
// A candidate is a permutation of destination vertices visited after a fixed
// start. Fitness is the inverse of the one-way tour distance, so candidates
// are ranked by ascending distance.
package genetic

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"logistics-route-service/internal/graph"
	"logistics-route-service/internal/search"
)

type Config struct {
	PopulationSize int           `yaml:"population_size"`
	Generations    int           `yaml:"generations"`
	MutationRate   float64       `yaml:"mutation_rate"`
	EliteCount     int           `yaml:"elite_count"`
	TournamentSize int           `yaml:"tournament_size"`
	Patience       int           `yaml:"patience"`
	TimeBudget     time.Duration `yaml:"time_budget"`
	// Seed 0 seeds from the clock. Any other value reproduces the same run,
	// provided it ends on Generations or Patience rather than TimeBudget.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		PopulationSize: 50,
		Generations:    200,
		MutationRate:   0.1,
		EliteCount:     10,
		TournamentSize: 3,
		Patience:       50,
		TimeBudget:     2 * time.Second,
	}
}

// WithDefaults fills zero fields from DefaultConfig. A zero TimeBudget stays
// zero and leaves the run bounded by Generations only.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.PopulationSize == 0 {
		c.PopulationSize = d.PopulationSize
	}
	if c.Generations == 0 {
		c.Generations = d.Generations
	}
	if c.MutationRate == 0 {
		c.MutationRate = d.MutationRate
	}
	if c.EliteCount == 0 {
		c.EliteCount = max(1, c.PopulationSize/5)
	}
	if c.TournamentSize == 0 {
		c.TournamentSize = d.TournamentSize
	}
	if c.Patience == 0 {
		c.Patience = d.Patience
	}
	return c
}

// Validate checks a config after WithDefaults has been applied.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize < 2:
		return fmt.Errorf("genetic config: population_size must be at least 2, got %d", c.PopulationSize)
	case c.Generations < 1:
		return fmt.Errorf("genetic config: generations must be at least 1, got %d", c.Generations)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("genetic config: mutation_rate must be within [0, 1], got %v", c.MutationRate)
	case c.EliteCount < 0 || c.EliteCount >= c.PopulationSize:
		return fmt.Errorf("genetic config: elite_count must be within [0, population_size), got %d", c.EliteCount)
	case c.TournamentSize < 1:
		return fmt.Errorf("genetic config: tournament_size must be at least 1, got %d", c.TournamentSize)
	case c.Patience < 1:
		return fmt.Errorf("genetic config: patience must be at least 1, got %d", c.Patience)
	case c.TimeBudget < 0:
		return fmt.Errorf("genetic config: time_budget must not be negative, got %v", c.TimeBudget)
	}
	return nil
}

type StopReason string

const (
	StopTrivial     StopReason = "trivial"
	StopGenerations StopReason = "generations"
	StopPatience    StopReason = "patience"
	StopTimeBudget  StopReason = "time_budget"
	StopCancelled   StopReason = "cancelled"
)

type Result struct {
	// Order starts with the start vertex.
	Order        []int
	Distance     float64
	Generations  int
	Improvements int
	// BestHistory holds the best distance after each generation. It never increases.
	BestHistory []float64
	StopReason  StopReason
	Seed        int64
}

type candidate struct {
	perm []int
	dist float64
}

// Evolve returns the best ordering found for visiting destinations from start.
//
// The initial population contains the nearest-neighbor ordering, and elites
// survive unchanged, so the result is never worse than the greedy baseline.
// Cancelling ctx or exhausting the budget ends the run with the best
// candidate so far; only invalid input is an error.
func Evolve(ctx context.Context, g *graph.Graph, start int, destinations []int, cfg Config) (Result, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	greedy, err := search.Search(g, start, destinations, search.Options{Mode: search.ModeDijkstra})
	if err != nil {
		return Result{}, fmt.Errorf("evolve: %w", err)
	}

	if len(destinations) <= 1 {
		return Result{
			Order:      greedy,
			Distance:   g.PathDistance(greedy),
			StopReason: StopTrivial,
			Seed:       cfg.Seed,
		}, nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &evolver{
		g:     g,
		start: start,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		inSeg: make([]bool, g.Len()),
	}

	var deadline time.Time
	if cfg.TimeBudget > 0 {
		deadline = time.Now().Add(cfg.TimeBudget)
	}

	pop := e.initialPopulation(greedy[1:], destinations)
	best := pop[0]
	res := Result{Seed: seed, StopReason: StopGenerations}
	stale := 0

	for res.Generations < cfg.Generations {
		if ctx.Err() != nil {
			res.StopReason = StopCancelled
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			res.StopReason = StopTimeBudget
			break
		}

		pop = e.nextGeneration(pop)
		res.Generations++

		if pop[0].dist < best.dist {
			best = pop[0]
			res.Improvements++
			stale = 0
		} else {
			stale++
		}
		res.BestHistory = append(res.BestHistory, best.dist)

		if stale >= cfg.Patience {
			res.StopReason = StopPatience
			break
		}
	}

	res.Order = append([]int{start}, best.perm...)
	res.Distance = g.PathDistance(res.Order)
	return res, nil
}

type evolver struct {
	g     *graph.Graph
	start int
	cfg   Config
	rng   *rand.Rand
	inSeg []bool
}

func (e *evolver) tourDistance(perm []int) float64 {
	total := e.g.Distance(e.start, perm[0])
	for k := 1; k < len(perm); k++ {
		total += e.g.Distance(perm[k-1], perm[k])
	}
	return total
}

func (e *evolver) newCandidate(perm []int) candidate {
	return candidate{perm: perm, dist: e.tourDistance(perm)}
}

// initialPopulation returns the population ranked best first.
func (e *evolver) initialPopulation(greedy, destinations []int) []candidate {
	pop := make([]candidate, 0, e.cfg.PopulationSize)
	pop = append(pop, e.newCandidate(slices.Clone(greedy)))

	for len(pop) < e.cfg.PopulationSize {
		perm := slices.Clone(destinations)
		e.rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		pop = append(pop, e.newCandidate(perm))
	}

	rank(pop)
	return pop
}

// nextGeneration expects pop ranked best first and returns the next one ranked the same way.
func (e *evolver) nextGeneration(pop []candidate) []candidate {
	next := make([]candidate, 0, len(pop))

	next = append(next, pop[:min(e.cfg.EliteCount, len(pop))]...)

	for len(next) < len(pop) {
		a := e.tournament(pop)
		b := e.tournament(pop)
		child := e.orderedCrossover(a.perm, b.perm)
		if e.rng.Float64() < e.cfg.MutationRate {
			e.swapMutation(child)
		}
		next = append(next, e.newCandidate(child))
	}

	rank(next)
	return next
}

func (e *evolver) tournament(pop []candidate) candidate {
	best := pop[e.rng.Intn(len(pop))]
	for k := 1; k < e.cfg.TournamentSize; k++ {
		c := pop[e.rng.Intn(len(pop))]
		if c.dist < best.dist {
			best = c
		}
	}
	return best
}

// orderedCrossover copies a random slice of a into the child and fills the
// remaining positions with b's genes in b's order, starting after the slice.
// The child is always a permutation of the parents' genes.
func (e *evolver) orderedCrossover(a, b []int) []int {
	n := len(a)
	i, j := e.rng.Intn(n), e.rng.Intn(n)
	if i > j {
		i, j = j, i
	}

	child := make([]int, n)
	for k := i; k <= j; k++ {
		child[k] = a[k]
		e.inSeg[a[k]] = true
	}

	pos := (j + 1) % n
	for k := 0; k < n; k++ {
		gene := b[(j+1+k)%n]
		if e.inSeg[gene] {
			continue
		}
		child[pos] = gene
		pos = (pos + 1) % n
	}

	for k := i; k <= j; k++ {
		e.inSeg[a[k]] = false
	}
	return child
}

func (e *evolver) swapMutation(perm []int) {
	i := e.rng.Intn(len(perm))
	j := e.rng.Intn(len(perm) - 1)
	if j >= i {
		j++
	}
	perm[i], perm[j] = perm[j], perm[i]
}

// rank sorts by ascending distance. The sort is stable so equal candidates
// keep their relative order and runs stay reproducible.
func rank(pop []candidate) {
	slices.SortStableFunc(pop, func(x, y candidate) int {
		switch {
		case x.dist < y.dist:
			return -1
		case x.dist > y.dist:
			return 1
		default:
			return 0
		}
	})
}
