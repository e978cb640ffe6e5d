package montecarlo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jblackburn/alembic/internal/alchemy"
	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

// ExhaustExperiment generates a random inventory per trial and runs the
// greedy planner to exhaustion.
type ExhaustExperiment struct {
	Catalog       *data.Catalog
	Actor         model.ActorProfile
	InventorySize int // <= 0 draws the size from Normal(35, 10)
}

// Name implements Experiment.
func (e *ExhaustExperiment) Name() string {
	return fmt.Sprintf("exhaust-normal-%d", e.InventorySize)
}

// RunOnce implements Experiment.
func (e *ExhaustExperiment) RunOnce(r *rand.Rand, runIdx int) (TrialResult, error) {
	inv := model.GenerateNormal(r, e.Catalog, e.InventorySize)

	start := time.Now()
	result, err := alchemy.ExhaustInventory(inv, e.Actor, e.Catalog)
	if err != nil {
		return TrialResult{}, fmt.Errorf("planning run: %w", err)
	}

	var total int64
	for _, p := range result.Potions {
		total += p.TotalValue
	}

	return TrialResult{
		RunIdx:      runIdx,
		PotionCount: len(result.Potions),
		TotalValue:  total,
		Elapsed:     time.Since(start),
	}, nil
}
