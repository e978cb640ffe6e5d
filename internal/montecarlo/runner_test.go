package montecarlo

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

// recordingExperiment reports the first random draw of each trial so
// reproducibility across worker counts can be checked.
type recordingExperiment struct {
	fail int // trial index that errors, -1 for none
}

func (e *recordingExperiment) Name() string { return "recording" }

func (e *recordingExperiment) RunOnce(r *rand.Rand, runIdx int) (TrialResult, error) {
	if runIdx == e.fail {
		return TrialResult{}, errors.New("boom")
	}
	return TrialResult{
		RunIdx:      runIdx,
		PotionCount: int(r.Uint64N(1000)),
		TotalValue:  int64(r.Uint64N(1000)),
	}, nil
}

func TestNewRunner_Validation(t *testing.T) {
	_, err := NewRunner(Config{Simulations: 0, Workers: 1})
	assert.Error(t, err)

	_, err = NewRunner(Config{Simulations: 10, Workers: 0})
	assert.Error(t, err)

	_, err = NewRunner(DefaultConfig())
	assert.NoError(t, err)
}

func TestRunner_ReproducibleAcrossWorkerCounts(t *testing.T) {
	exp := &recordingExperiment{fail: -1}

	run := func(workers int) Summary {
		r, err := NewRunner(Config{Simulations: 50, Workers: workers, Seed: 99})
		require.NoError(t, err)
		s, err := r.Run(context.Background(), exp)
		require.NoError(t, err)
		return s
	}

	serial := run(1)
	parallel := run(8)

	assert.Equal(t, serial.TotalPotions, parallel.TotalPotions)
	assert.Equal(t, serial.TotalValue, parallel.TotalValue)
	assert.Equal(t, serial.MinPotions, parallel.MinPotions)
	assert.Equal(t, serial.MaxPotions, parallel.MaxPotions)
}

func TestRunner_TrialErrorAborts(t *testing.T) {
	exp := &recordingExperiment{fail: 3}
	r, err := NewRunner(Config{Simulations: 10, Workers: 2, Seed: 1})
	require.NoError(t, err)

	_, err = r.Run(context.Background(), exp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trial 3")
}

func TestRunner_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exp := &recordingExperiment{fail: -1}
	r, err := NewRunner(Config{Simulations: 10, Workers: 2, Seed: 1})
	require.NoError(t, err)

	_, err = r.Run(ctx, exp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	results := []TrialResult{
		{PotionCount: 4, TotalValue: 100},
		{PotionCount: 2, TotalValue: 50},
		{PotionCount: 6, TotalValue: 150},
	}

	s := summarize("test", results, time.Second)

	assert.Equal(t, 3, s.Trials)
	assert.Equal(t, 12, s.TotalPotions)
	assert.Equal(t, 2, s.MinPotions)
	assert.Equal(t, 6, s.MaxPotions)
	assert.InDelta(t, 4.0, s.MeanPotions, 1e-9)
	assert.Equal(t, int64(300), s.TotalValue)
}

func TestExhaustExperiment(t *testing.T) {
	cat, err := data.Load()
	require.NoError(t, err)

	exp := &ExhaustExperiment{
		Catalog:       cat,
		Actor:         model.DefaultActor(),
		InventorySize: 12,
	}

	r, err := NewRunner(Config{Simulations: 5, Workers: 2, Seed: 7})
	require.NoError(t, err)

	s, err := r.Run(context.Background(), exp)
	require.NoError(t, err)

	assert.Equal(t, "exhaust-normal-12", s.Experiment)
	assert.Equal(t, 5, s.Trials)
	assert.GreaterOrEqual(t, s.MinPotions, 0)
	assert.GreaterOrEqual(t, s.TotalValue, int64(0))
}

func TestExhaustExperiment_Deterministic(t *testing.T) {
	cat, err := data.Load()
	require.NoError(t, err)

	exp := &ExhaustExperiment{Catalog: cat, Actor: model.DefaultActor(), InventorySize: 10}

	once := func() TrialResult {
		res, err := exp.RunOnce(rand.New(rand.NewPCG(5, 0)), 0)
		require.NoError(t, err)
		return res
	}

	a := once()
	b := once()
	assert.Equal(t, a.PotionCount, b.PotionCount)
	assert.Equal(t, a.TotalValue, b.TotalValue)
}
