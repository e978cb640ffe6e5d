// Package data holds the immutable alchemy catalog: effect templates and
// ingredient definitions, loaded once from the embedded CSV dataset or
// from PostgreSQL, then only read.
package data

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

//go:embed catalog/effects.csv catalog/ingredients.csv
var catalogFS embed.FS

// Catalog provides read-only lookup of effect templates and ingredients.
// A missing name returns nil, never an error; callers treat an absent
// entry as "not a contributor", not as a fault.
type Catalog struct {
	effects     map[string]*EffectTemplate
	ingredients map[string]*Ingredient
	order       []string // ingredient names in load order
}

// Ingredient returns the ingredient definition, or nil if unknown.
func (c *Catalog) Ingredient(name string) *Ingredient {
	return c.ingredients[name]
}

// EffectTemplate returns the effect template, or nil if unknown.
func (c *Catalog) EffectTemplate(name string) *EffectTemplate {
	return c.effects[name]
}

// AllIngredients returns every ingredient in load order.
func (c *Catalog) AllIngredients() []*Ingredient {
	result := make([]*Ingredient, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, c.ingredients[name])
	}
	return result
}

// AllEffects returns every effect template sorted by name.
func (c *Catalog) AllEffects() []*EffectTemplate {
	names := make([]string, 0, len(c.effects))
	for name := range c.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]*EffectTemplate, 0, len(names))
	for _, name := range names {
		result = append(result, c.effects[name])
	}
	return result
}

// IngredientEffect returns the effect template bound to the ingredient's
// own magnitude and duration for that effect. Returns nil when either
// the template or the ingredient's slot is missing, which drops the
// pair from compound building instead of failing the whole run.
func (c *Catalog) IngredientEffect(effectName string, ing *Ingredient) *EffectTemplate {
	tmpl := c.effects[effectName]
	if tmpl == nil {
		return nil
	}
	mag, dur, ok := ing.EffectData(effectName)
	if !ok {
		return nil
	}
	return tmpl.WithPotency(mag, dur)
}

// NewCatalog builds a catalog from already-constructed entries.
// Used by the PostgreSQL repository; CSV loading goes through Load.
func NewCatalog(effects []*EffectTemplate, ingredients []*Ingredient) *Catalog {
	c := &Catalog{
		effects:     make(map[string]*EffectTemplate, len(effects)),
		ingredients: make(map[string]*Ingredient, len(ingredients)),
	}
	for _, e := range effects {
		c.effects[e.Name] = e
	}
	for _, ing := range ingredients {
		if _, dup := c.ingredients[ing.Name]; !dup {
			c.order = append(c.order, ing.Name)
		}
		c.ingredients[ing.Name] = ing
	}
	return c
}

// Load parses the embedded CSV dataset into a Catalog.
func Load() (*Catalog, error) {
	effFile, err := catalogFS.Open("catalog/effects.csv")
	if err != nil {
		return nil, fmt.Errorf("opening effects dataset: %w", err)
	}
	defer effFile.Close()

	effects, err := parseEffects(effFile)
	if err != nil {
		return nil, fmt.Errorf("parsing effects dataset: %w", err)
	}

	ingFile, err := catalogFS.Open("catalog/ingredients.csv")
	if err != nil {
		return nil, fmt.Errorf("opening ingredients dataset: %w", err)
	}
	defer ingFile.Close()

	ingredients, err := parseIngredients(ingFile)
	if err != nil {
		return nil, fmt.Errorf("parsing ingredients dataset: %w", err)
	}

	cat := NewCatalog(effects, ingredients)
	slog.Info("loaded alchemy catalog",
		"effects", len(cat.effects),
		"ingredients", len(cat.ingredients))
	return cat, nil
}

// effects.csv columns:
// effect_name,base_cost,base_mag,base_dur,effect_type,varies_duration,description
func parseEffects(r io.Reader) ([]*EffectTemplate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 7

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	effects := make([]*EffectTemplate, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		cost, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("effect %q: bad base_cost %q: %w", row[0], row[1], err)
		}
		mag, err := strconv.ParseInt(row[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("effect %q: bad base_mag %q: %w", row[0], row[2], err)
		}
		dur, err := strconv.ParseInt(row[3], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("effect %q: bad base_dur %q: %w", row[0], row[3], err)
		}
		effType := EffectType(row[4])
		switch effType {
		case EffectFortify, EffectRestore, EffectPoison:
		default:
			return nil, fmt.Errorf("effect %q: unknown effect_type %q", row[0], row[4])
		}

		effects = append(effects, &EffectTemplate{
			Name:           row[0],
			BaseCost:       cost,
			BaseMag:        int32(mag),
			BaseDur:        int32(dur),
			Type:           effType,
			VariesDuration: row[5] == "true",
			Description:    row[6],
		})
	}
	return effects, nil
}

// ingredients.csv columns:
// ingredient_name,ingredient_id,base_value,weight,
// effect_1,effect_1_mag,effect_1_dur, ... effect_4,effect_4_mag,effect_4_dur,
// dlc,rarity,source
func parseIngredients(r io.Reader) ([]*Ingredient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 19

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	ingredients := make([]*Ingredient, 0, len(rows)-1)
	for _, row := range rows[1:] {
		id, err := strconv.ParseInt(row[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: bad id %q: %w", row[0], row[1], err)
		}
		value, err := strconv.ParseInt(row[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: bad base_value %q: %w", row[0], row[2], err)
		}
		weight, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: bad weight %q: %w", row[0], row[3], err)
		}

		var effects []IngredientEffectRef
		for slot := 0; slot < 4; slot++ {
			base := 4 + slot*3
			name := strings.TrimSpace(row[base])
			if name == "" {
				continue
			}
			mag, err := strconv.ParseInt(row[base+1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("ingredient %q: bad effect_%d_mag %q: %w", row[0], slot+1, row[base+1], err)
			}
			dur, err := strconv.ParseInt(row[base+2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("ingredient %q: bad effect_%d_dur %q: %w", row[0], slot+1, row[base+2], err)
			}
			effects = append(effects, IngredientEffectRef{
				Name:      name,
				Magnitude: int32(mag),
				Duration:  int32(dur),
			})
		}

		ingredients = append(ingredients, &Ingredient{
			Name:    row[0],
			ID:      int32(id),
			Value:   int32(value),
			Weight:  weight,
			Effects: effects,
			DLC:     row[16],
			Rarity:  row[17],
			Source:  row[18],
		})
	}
	return ingredients, nil
}
