package alchemy

import (
	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

// GeneratePotions enumerates every valid 2- then 3-ingredient compound
// buildable from the given distinct names and scores each one. The
// enumeration order follows the input slice, so passing sorted names
// yields a canonical order. Pure function of its inputs.
//
// Subsets with unknown ingredients or no surviving shared effect are
// silently excluded; only explicit construction via NewPotion reports
// those as errors.
func GeneratePotions(names []string, actor model.ActorProfile, cat *data.Catalog) []*Potion {
	ingredients := make([]*data.Ingredient, len(names))
	for i, name := range names {
		ingredients[i] = cat.Ingredient(name) // nil allowed, rejected below
	}

	var potions []*Potion
	build := func(idx ...int) {
		subsetIngs := make([]*data.Ingredient, len(idx))
		subsetNames := make([]string, len(idx))
		for i, j := range idx {
			if ingredients[j] == nil {
				return
			}
			subsetIngs[i] = ingredients[j]
			subsetNames[i] = names[j]
		}
		if !hasSharedEffects(subsetIngs) {
			return
		}
		p, err := NewPotion(subsetNames, actor, cat)
		if err != nil {
			return // degraded candidate (e.g. missing effect template)
		}
		potions = append(potions, p)
	}

	n := len(names)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			build(i, j)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				build(i, j, k)
			}
		}
	}
	return potions
}

// hasSharedEffects checks pairwise coverage: every member must share at
// least one effect name with at least one other member. Coverage is
// pairwise, not intersectional — a 3-set is valid even when no single
// effect spans all three.
func hasSharedEffects(ingredients []*data.Ingredient) bool {
	for i, a := range ingredients {
		shared := false
		for j, b := range ingredients {
			if i == j {
				continue
			}
			for _, name := range a.EffectNames() {
				if b.HasEffect(name) {
					shared = true
					break
				}
			}
			if shared {
				break
			}
		}
		if !shared {
			return false
		}
	}
	return true
}
