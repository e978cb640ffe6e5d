// Package alchemy implements the potion valuation engine, the
// combinatorial compound generator and the greedy inventory planner.
package alchemy

import (
	"math"

	"github.com/jblackburn/alembic/internal/data"
	"github.com/jblackburn/alembic/internal/model"
)

// valueExponent is fixed by the game's pricing formula:
// value = floor(baseCost · mag^1.1 · (dur/10)^1.1).
const valueExponent = 1.1

// RealizedEffect — an effect evaluated against a specific actor.
// Derived data, never mutated after creation.
type RealizedEffect struct {
	Name        string
	Magnitude   int32
	Duration    int32
	Value       int64
	Harmful     bool
	Description string
}

// ScaleFactor combines every actor multiplier for the given effect.
// All terms are multiplicative; an actor with everything at zero
// reduces the chain to exactly 4.0.
func ScaleFactor(e *data.EffectTemplate, actor model.ActorProfile) float64 {
	factor := 4 * (1 + float64(actor.Skill)/200)
	factor *= 1 + float64(actor.FortifyAlchemy)/100
	factor *= 1 + float64(actor.AlchemistPerk)/100
	factor *= 1 + float64(actor.SeekerOfShadows)/100

	if e.IsRestore() {
		factor *= 1 + float64(actor.PhysicianPerk)/100
	}
	switch {
	case e.IsFortify():
		factor *= 1 + float64(actor.BenefactorPerk)/100
	case e.IsPoison():
		factor *= 1 + float64(actor.PoisonerPerk)/100
	}
	return factor
}

// Realize evaluates an effect against an actor. Duration-variable
// effects keep the base magnitude and scale duration; all others scale
// magnitude and keep the base duration. Rounding happens before
// exponentiation, flooring after — both fixed by the game contract.
func Realize(e *data.EffectTemplate, actor model.ActorProfile) RealizedEffect {
	scale := ScaleFactor(e, actor)

	var magnitude, duration int32
	if e.VariesDuration {
		magnitude = e.BaseMag
		duration = int32(math.Round(float64(e.BaseDur) * scale))
	} else {
		magnitude = int32(math.Round(float64(e.BaseMag) * scale))
		duration = e.BaseDur
	}

	return RealizedEffect{
		Name:        e.Name,
		Magnitude:   magnitude,
		Duration:    duration,
		Value:       effectValue(e.BaseCost, magnitude, duration),
		Harmful:     e.IsPoison(),
		Description: e.Describe(magnitude, duration),
	}
}

// BaseValue ranks an effect binding for dominance selection: its value
// for the reference actor. Duration-variable effects rank below
// everything else and never dominate.
func BaseValue(e *data.EffectTemplate) int64 {
	if e.VariesDuration {
		return -1
	}
	return Realize(e, model.DefaultActor()).Value
}

// effectValue prices a realized effect. A zero duration counts as 10
// so instant effects are not priced into a degenerate zero.
func effectValue(baseCost float64, magnitude, duration int32) int64 {
	effDur := float64(duration)
	if duration == 0 {
		effDur = 10
	}
	v := baseCost * math.Pow(float64(magnitude), valueExponent) * math.Pow(effDur/10, valueExponent)
	return int64(math.Floor(v))
}
