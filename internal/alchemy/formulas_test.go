package alchemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

func loadCatalog(t *testing.T) *data.Catalog {
	t.Helper()
	cat, err := data.Load()
	require.NoError(t, err)
	return cat
}

func TestScaleFactor_ZeroActor(t *testing.T) {
	cat := loadCatalog(t)

	// Every multiplier term collapses to 1 for a zero actor.
	for _, eff := range cat.AllEffects() {
		assert.InDelta(t, 4.0, ScaleFactor(eff, model.ActorProfile{}), 1e-12, eff.Name)
	}
}

func TestScaleFactor_PerkPolarity(t *testing.T) {
	actor := model.ActorProfile{
		PhysicianPerk:  25,
		BenefactorPerk: 25,
		PoisonerPerk:   25,
	}

	tests := []struct {
		name   string
		effect *data.EffectTemplate
		want   float64
	}{
		{
			name:   "restore gets physician only",
			effect: &data.EffectTemplate{Name: "Restore Health", Type: data.EffectRestore},
			want:   5.0,
		},
		{
			name:   "fortify gets benefactor only",
			effect: &data.EffectTemplate{Name: "Fortify Health", Type: data.EffectFortify},
			want:   5.0,
		},
		{
			name:   "poison gets poisoner only",
			effect: &data.EffectTemplate{Name: "Damage Health", Type: data.EffectPoison},
			want:   5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScaleFactor(tt.effect, actor), 1e-12)
		})
	}
}

func TestScaleFactor_Multiplicative(t *testing.T) {
	actor := model.ActorProfile{
		Skill:           100,
		FortifyAlchemy:  50,
		AlchemistPerk:   100,
		SeekerOfShadows: 10,
	}
	eff := &data.EffectTemplate{Name: "Fortify Health", Type: data.EffectFortify}

	// 4 * 1.5 * 1.5 * 2 * 1.1
	assert.InDelta(t, 19.8, ScaleFactor(eff, actor), 1e-9)
}

func TestRealize_MagnitudeScaling(t *testing.T) {
	cat := loadCatalog(t)
	rh := cat.EffectTemplate("Restore Health")
	require.NotNil(t, rh)

	got := Realize(rh, model.ActorProfile{})

	assert.Equal(t, int32(20), got.Magnitude)
	assert.Equal(t, int32(0), got.Duration, "fixed-duration effect keeps its base duration")
	// floor(0.5 * 20^1.1 * (10/10)^1.1) — zero duration prices as 10.
	assert.Equal(t, int64(13), got.Value)
	assert.False(t, got.Harmful)
	assert.Equal(t, "Restore 20 points of Health.", got.Description)
}

func TestRealize_DurationScaling(t *testing.T) {
	cat := loadCatalog(t)
	paralysis := cat.EffectTemplate("Paralysis")
	require.NotNil(t, paralysis)
	require.True(t, paralysis.VariesDuration)

	got := Realize(paralysis, model.ActorProfile{})

	assert.Equal(t, int32(1), got.Magnitude, "duration-variable effect keeps its base magnitude")
	assert.Equal(t, int32(4), got.Duration)
	// floor(500 * 1^1.1 * (4/10)^1.1)
	assert.Equal(t, int64(182), got.Value)
	assert.True(t, got.Harmful)
}

func TestRealize_RoundsBeforeExponentiation(t *testing.T) {
	// 5 * 4.3 = 21.5 rounds to 22 before pricing; pricing 21.5 directly
	// would give a different floor.
	cat := loadCatalog(t)
	rh := cat.EffectTemplate("Restore Health")
	require.NotNil(t, rh)

	got := Realize(rh, model.DefaultActor())
	assert.Equal(t, int32(22), got.Magnitude)
	assert.Equal(t, int64(14), got.Value)
}

func TestBaseValue(t *testing.T) {
	cat := loadCatalog(t)

	t.Run("reference actor pricing", func(t *testing.T) {
		assert.Equal(t, int64(14), BaseValue(cat.EffectTemplate("Restore Health")))
		assert.Equal(t, int64(56), BaseValue(cat.EffectTemplate("Fortify Health")))
	})

	t.Run("duration-variable never dominates", func(t *testing.T) {
		assert.Equal(t, int64(-1), BaseValue(cat.EffectTemplate("Paralysis")))
		assert.Equal(t, int64(-1), BaseValue(cat.EffectTemplate("Invisibility")))
	})
}

func TestEffectValue_ZeroMagnitude(t *testing.T) {
	assert.Equal(t, int64(0), effectValue(3.0, 0, 10))
}
