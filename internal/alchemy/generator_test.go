package alchemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

// chainCatalog builds a tiny catalog where A shares one effect with B
// and a different one with C, while B and C share nothing.
func chainCatalog() *data.Catalog {
	effects := []*data.EffectTemplate{
		{Name: "Restore Health", BaseCost: 0.5, BaseMag: 5, Type: data.EffectRestore},
		{Name: "Fortify Stamina", BaseCost: 0.3, BaseMag: 4, BaseDur: 60, Type: data.EffectFortify},
	}
	ingredients := []*data.Ingredient{
		{Name: "A", Effects: []data.IngredientEffectRef{
			{Name: "Restore Health", Magnitude: 5},
			{Name: "Fortify Stamina", Magnitude: 4, Duration: 60},
		}},
		{Name: "B", Effects: []data.IngredientEffectRef{
			{Name: "Restore Health", Magnitude: 10},
		}},
		{Name: "C", Effects: []data.IngredientEffectRef{
			{Name: "Fortify Stamina", Magnitude: 4, Duration: 60},
		}},
	}
	return data.NewCatalog(effects, ingredients)
}

func potionIngredients(potions []*Potion) [][]string {
	out := make([][]string, len(potions))
	for i, p := range potions {
		out[i] = p.Ingredients
	}
	return out
}

func TestGeneratePotions_EnumerationOrder(t *testing.T) {
	cat := chainCatalog()

	potions := GeneratePotions([]string{"A", "B", "C"}, model.ActorProfile{}, cat)

	// Pairs in input order first, then triples. B+C share nothing and
	// is skipped; the triple passes because coverage is pairwise.
	assert.Equal(t, [][]string{
		{"A", "B"},
		{"A", "C"},
		{"A", "B", "C"},
	}, potionIngredients(potions))
}

func TestGeneratePotions_PairwiseCoverage(t *testing.T) {
	cat := chainCatalog()

	// No single effect spans all three, yet each member shares with at
	// least one other: the triple is a valid compound.
	p, err := NewPotion([]string{"A", "B", "C"}, model.ActorProfile{}, cat)
	require.NoError(t, err)
	assert.Len(t, p.Effects, 2)
	// B's stronger Restore Health binding must win inside the triple.
	for _, e := range p.Effects {
		if e.Name == "Restore Health" {
			assert.Equal(t, int32(40), e.Magnitude)
		}
	}
}

func TestGeneratePotions_SkipsUnknownNames(t *testing.T) {
	cat := chainCatalog()

	potions := GeneratePotions([]string{"A", "B", "Nonexistent"}, model.ActorProfile{}, cat)

	// Every subset touching the unknown name disappears silently.
	assert.Equal(t, [][]string{{"A", "B"}}, potionIngredients(potions))
}

func TestGeneratePotions_NoCandidates(t *testing.T) {
	cat := chainCatalog()

	assert.Empty(t, GeneratePotions([]string{"B", "C"}, model.ActorProfile{}, cat))
	assert.Empty(t, GeneratePotions([]string{"A"}, model.ActorProfile{}, cat))
	assert.Empty(t, GeneratePotions(nil, model.ActorProfile{}, cat))
}

func TestGeneratePotions_Idempotent(t *testing.T) {
	cat := loadCatalog(t)
	names := []string{"Blue Mountain Flower", "Wheat", "Blisterwort", "Butterfly Wing"}

	first := GeneratePotions(names, model.DefaultActor(), cat)
	second := GeneratePotions(names, model.DefaultActor(), cat)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Ingredients, second[i].Ingredients)
		assert.Equal(t, first[i].TotalValue, second[i].TotalValue)
	}
}

func TestGeneratePotions_FullCatalogSubset(t *testing.T) {
	cat := loadCatalog(t)
	names := []string{"Blue Mountain Flower", "Wheat", "Hanging Moss"}

	potions := GeneratePotions(names, model.ActorProfile{}, cat)

	// All three pairs share effects and so does the triple.
	require.Len(t, potions, 4)
	for _, p := range potions {
		assert.NotEmpty(t, p.Effects)
		assert.Greater(t, p.TotalValue, int64(0))
	}
}
