package data

// IngredientEffectRef — one of up to four effect slots on an ingredient.
// Magnitude/duration override the effect template defaults.
type IngredientEffectRef struct {
	Name      string
	Magnitude int32
	Duration  int32
}

// Ingredient — immutable catalog definition of a raw alchemy ingredient.
// Rarity and source tags are used only by inventory sampling.
type Ingredient struct {
	Name    string
	ID      int32
	Value   int32
	Weight  float64
	Effects []IngredientEffectRef // up to 4
	DLC     string
	Rarity  string
	Source  string
}

// EffectNames returns the names of all effect slots in declaration order.
func (i *Ingredient) EffectNames() []string {
	names := make([]string, len(i.Effects))
	for idx, ref := range i.Effects {
		names[idx] = ref.Name
	}
	return names
}

// EffectData returns the ingredient-specific magnitude and duration for
// the named effect. ok is false when the ingredient does not carry it.
func (i *Ingredient) EffectData(name string) (magnitude, duration int32, ok bool) {
	for _, ref := range i.Effects {
		if ref.Name == name {
			return ref.Magnitude, ref.Duration, true
		}
	}
	return 0, 0, false
}

// HasEffect reports whether the ingredient carries the named effect.
func (i *Ingredient) HasEffect(name string) bool {
	_, _, ok := i.EffectData(name)
	return ok
}
