package alchemy

import (
	"fmt"

	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

// Potion — a realized compound of 2 or 3 ingredients. Immutable once
// built; regenerated from scratch whenever the candidate set changes.
type Potion struct {
	Name        string
	Ingredients []string
	Effects     []RealizedEffect
	Dominant    RealizedEffect
	TotalValue  int64
	Harmful     bool
}

// boundEffect pairs an ingredient-bound effect template with its
// ranking value so dominance is computed once.
type boundEffect struct {
	tmpl      *data.EffectTemplate
	baseValue int64
}

// NewPotion builds a compound from an explicit ingredient-name set.
//
// Errors: ErrCombinationSize for a set outside {2,3},
// ErrUnknownIngredient when a name has no catalog entry, and
// ErrNoSharedEffects when filtering leaves nothing to bottle.
func NewPotion(names []string, actor model.ActorProfile, cat *data.Catalog) (*Potion, error) {
	if len(names) < 2 || len(names) > 3 {
		return nil, fmt.Errorf("%w: got %d", ErrCombinationSize, len(names))
	}

	ingredients := make([]*data.Ingredient, len(names))
	for i, name := range names {
		ing := cat.Ingredient(name)
		if ing == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownIngredient, name)
		}
		ingredients[i] = ing
	}

	kept := collectSharedEffects(ingredients, cat)
	if len(kept) == 0 {
		return nil, ErrNoSharedEffects
	}

	dominant := kept[0]
	for _, be := range kept[1:] {
		if be.baseValue > dominant.baseValue {
			dominant = be
		}
	}

	// Purity strips every effect whose polarity differs from the
	// dominant one.
	if actor.HasPurity {
		filtered := kept[:0]
		for _, be := range kept {
			if be.tmpl.IsPoison() == dominant.tmpl.IsPoison() {
				filtered = append(filtered, be)
			}
		}
		kept = filtered
	}

	// The benefactor perk only applies inside potions and the poisoner
	// perk only inside poisons. When the kept set still carries effects
	// of the opposite polarity, the whole set is realized once against
	// a profile with the mismatched perk disabled.
	calcActor := actor
	if dominant.tmpl.IsPoison() && actor.BenefactorPerk > 0 && hasPolarity(kept, dominant, false) {
		calcActor = actor.WithoutBenefactor()
	} else if !dominant.tmpl.IsPoison() && actor.PoisonerPerk > 0 && hasPolarity(kept, dominant, true) {
		calcActor = actor.WithoutPoisoner()
	}

	effects := make([]RealizedEffect, len(kept))
	var total int64
	var dominantRealized RealizedEffect
	for i, be := range kept {
		effects[i] = Realize(be.tmpl, calcActor)
		total += effects[i].Value
		if be.tmpl.Name == dominant.tmpl.Name {
			dominantRealized = effects[i]
		}
	}

	prefix := "Potion"
	if dominant.tmpl.IsPoison() {
		prefix = "Poison"
	}

	return &Potion{
		Name:        fmt.Sprintf("%s of %s", prefix, dominant.tmpl.Name),
		Ingredients: append([]string(nil), names...),
		Effects:     effects,
		Dominant:    dominantRealized,
		TotalValue:  total,
		Harmful:     dominant.tmpl.IsPoison(),
	}, nil
}

// collectSharedEffects gathers every effect claimed by 2+ members and
// keeps, per effect name, the binding with the highest base value.
// Missing effect templates drop the contributing pair, not the run.
// Order is first-seen over the ingredient list, which keeps compound
// construction deterministic.
func collectSharedEffects(ingredients []*data.Ingredient, cat *data.Catalog) []boundEffect {
	counts := make(map[string]int)
	for _, ing := range ingredients {
		for _, name := range ing.EffectNames() {
			counts[name]++
		}
	}

	var order []string
	best := make(map[string]boundEffect)
	for _, ing := range ingredients {
		for _, name := range ing.EffectNames() {
			if counts[name] < 2 {
				continue
			}
			bound := cat.IngredientEffect(name, ing)
			if bound == nil {
				continue
			}
			be := boundEffect{tmpl: bound, baseValue: BaseValue(bound)}
			prev, seen := best[name]
			if !seen {
				order = append(order, name)
				best[name] = be
			} else if be.baseValue > prev.baseValue {
				best[name] = be
			}
		}
	}

	kept := make([]boundEffect, 0, len(order))
	for _, name := range order {
		kept = append(kept, best[name])
	}
	return kept
}

// hasPolarity reports whether any kept effect other than the dominant
// one is (or is not) a poison.
func hasPolarity(kept []boundEffect, dominant boundEffect, poison bool) bool {
	for _, be := range kept {
		if be.tmpl.Name == dominant.tmpl.Name {
			continue
		}
		if be.tmpl.IsPoison() == poison {
			return true
		}
	}
	return false
}
