// Package montecarlo repeatedly runs alchemy experiments over randomly
// generated inventories and aggregates the results.
package montecarlo

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// TrialResult is the outcome of a single experiment run.
type TrialResult struct {
	RunIdx      int
	PotionCount int
	TotalValue  int64
	Elapsed     time.Duration
}

// Experiment is one repeatable trial. RunOnce must be safe for
// concurrent calls; all randomness must come from the supplied source.
type Experiment interface {
	Name() string
	RunOnce(r *rand.Rand, runIdx int) (TrialResult, error)
}

// Config controls a Monte Carlo run.
type Config struct {
	Simulations int
	Workers     int
	Seed        uint64
}

// DefaultConfig runs 1000 single-threaded trials with a fixed seed.
func DefaultConfig() Config {
	return Config{Simulations: 1000, Workers: 1, Seed: 1}
}

// Summary aggregates all trial results of a run.
type Summary struct {
	Experiment   string
	Trials       int
	TotalPotions int
	MinPotions   int
	MaxPotions   int
	MeanPotions  float64
	TotalValue   int64
	Elapsed      time.Duration
}

// Runner executes experiments according to its config.
type Runner struct {
	cfg Config
}

// NewRunner validates the config and builds a runner.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Simulations < 1 {
		return nil, fmt.Errorf("simulations must be >= 1, got %d", cfg.Simulations)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be >= 1, got %d", cfg.Workers)
	}
	return &Runner{cfg: cfg}, nil
}

// Run executes the experiment cfg.Simulations times, fanning out over
// cfg.Workers goroutines. Each trial gets its own PCG source derived
// from the seed and trial index, so results are reproducible for a
// given (seed, simulations) pair regardless of worker count.
func (r *Runner) Run(ctx context.Context, exp Experiment) (Summary, error) {
	start := time.Now()

	results := make([]TrialResult, r.cfg.Simulations)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	var mu sync.Mutex
	done := 0

	for i := 0; i < r.cfg.Simulations; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src := rand.New(rand.NewPCG(r.cfg.Seed, uint64(i)))
			res, err := exp.RunOnce(src, i)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = res

			mu.Lock()
			done++
			if done%100 == 0 {
				slog.Info("monte carlo progress", "experiment", exp.Name(), "done", done, "of", r.cfg.Simulations)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return summarize(exp.Name(), results, time.Since(start)), nil
}

func summarize(name string, results []TrialResult, elapsed time.Duration) Summary {
	s := Summary{
		Experiment: name,
		Trials:     len(results),
		MinPotions: results[0].PotionCount,
		MaxPotions: results[0].PotionCount,
		Elapsed:    elapsed,
	}
	for _, res := range results {
		s.TotalPotions += res.PotionCount
		s.TotalValue += res.TotalValue
		if res.PotionCount < s.MinPotions {
			s.MinPotions = res.PotionCount
		}
		if res.PotionCount > s.MaxPotions {
			s.MaxPotions = res.PotionCount
		}
	}
	s.MeanPotions = float64(s.TotalPotions) / float64(s.Trials)
	return s
}
