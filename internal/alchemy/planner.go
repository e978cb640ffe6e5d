package alchemy

import (
	"fmt"
	"log/slog"

	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

// TerminalState reports how a planning run ended.
type TerminalState string

const (
	// StateExhausted — every ingredient was consumed.
	StateExhausted TerminalState = "exhausted"
	// StateStuck — ingredients remain but no valid compound exists.
	StateStuck TerminalState = "stuck"
)

// PlanResult holds the ordered compounds a planning run produced and
// its terminal state.
type PlanResult struct {
	Potions []*Potion
	State   TerminalState
}

// ExhaustInventory drives the inventory to exhaustion: regenerate all
// candidates from the current stock, brew the most valuable one,
// consume its ingredients, repeat. Ties go to the first maximum in
// enumeration order, which is canonical because the inventory lists
// its ingredients sorted.
//
// The inventory is mutated in place. An ErrInventoryInconsistent
// return means a selected compound's ingredients were not actually
// available — a logic defect, surfaced with the potions made so far.
func ExhaustInventory(inv *model.Inventory, actor model.ActorProfile, cat *data.Catalog) (PlanResult, error) {
	var made []*Potion

	for !inv.IsEmpty() {
		candidates := GeneratePotions(inv.AvailableIngredients(), actor, cat)
		if len(candidates) == 0 {
			slog.Debug("planner stuck", "remaining", inv.UniqueItems(), "brewed", len(made))
			return PlanResult{Potions: made, State: StateStuck}, nil
		}

		best := candidates[0]
		for _, p := range candidates[1:] {
			if p.TotalValue > best.TotalValue {
				best = p
			}
		}

		if !inv.ConsumeRecipe(best.Ingredients) {
			return PlanResult{Potions: made, State: StateStuck},
				fmt.Errorf("%w: %v", ErrInventoryInconsistent, best.Ingredients)
		}

		slog.Debug("brewed compound",
			"name", best.Name,
			"value", best.TotalValue,
			"ingredients", best.Ingredients)
		made = append(made, best)
	}

	return PlanResult{Potions: made, State: StateExhausted}, nil
}
