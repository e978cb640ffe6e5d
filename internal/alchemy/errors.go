package alchemy

import "errors"

var (
	// ErrCombinationSize — a compound needs exactly 2 or 3 ingredients.
	ErrCombinationSize = errors.New("combination must have 2 or 3 ingredients")

	// ErrUnknownIngredient — an ingredient name is not in the catalog.
	ErrUnknownIngredient = errors.New("unknown ingredient")

	// ErrNoSharedEffects — no effect is shared by 2+ members, so the
	// combination yields nothing.
	ErrNoSharedEffects = errors.New("ingredients share no effects")

	// ErrInventoryInconsistent — the planner selected a compound whose
	// ingredients turned out not to be available. Indicates a logic
	// defect, fatal to the planning run.
	ErrInventoryInconsistent = errors.New("selected compound not available in inventory")
)
