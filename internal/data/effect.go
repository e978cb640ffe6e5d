package data

import (
	"strconv"
	"strings"
)

// EffectType classifies an alchemical effect template.
type EffectType string

const (
	EffectFortify EffectType = "fortify"
	EffectRestore EffectType = "restore"
	EffectPoison  EffectType = "poison"
)

// EffectTemplate — immutable definition of an alchemical effect.
// Base magnitude/duration are catalog defaults; ingredients override
// them via Catalog.IngredientEffect.
type EffectTemplate struct {
	Name           string
	BaseCost       float64
	BaseMag        int32
	BaseDur        int32
	Type           EffectType
	VariesDuration bool
	Description    string // template with <mag> and <dur> placeholders
}

// IsPoison reports whether the effect is harmful.
func (e *EffectTemplate) IsPoison() bool {
	return e.Type == EffectPoison
}

// IsRestore reports whether the effect is restorative.
func (e *EffectTemplate) IsRestore() bool {
	return e.Type == EffectRestore
}

// IsFortify reports whether the effect is a fortification.
func (e *EffectTemplate) IsFortify() bool {
	return e.Type == EffectFortify
}

// Describe renders the description template for concrete magnitude
// and duration. Falls back to the effect name when no template is set.
func (e *EffectTemplate) Describe(magnitude, duration int32) string {
	if e.Description == "" {
		return e.Name
	}
	s := strings.ReplaceAll(e.Description, "<mag>", strconv.Itoa(int(magnitude)))
	s = strings.ReplaceAll(s, "<dur>", strconv.Itoa(int(duration)))
	return s
}

// WithPotency returns a copy of the template carrying an ingredient's
// magnitude and duration instead of the catalog defaults.
func (e *EffectTemplate) WithPotency(magnitude, duration int32) *EffectTemplate {
	bound := *e
	bound.BaseMag = magnitude
	bound.BaseDur = duration
	return &bound
}
