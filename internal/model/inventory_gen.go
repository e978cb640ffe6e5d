package model

import (
	"math"
	"math/rand/v2"

	"github.com/jblackburn/alembic/internal/data"
)

// QuantityParams controls the chi-squared quantity draw for one
// sampled ingredient: Gamma(DF/2, 2) · Scale, clamped to [Min, Max].
type QuantityParams struct {
	DF    float64
	Scale float64
	Min   int
	Max   int
}

// NormalQuantityParams is the default draw for uniform sampling.
var NormalQuantityParams = QuantityParams{DF: 5, Scale: 1.5, Min: 1, Max: 50}

// WeightedQuantityParams keys per-rarity draws for weighted sampling.
var WeightedQuantityParams = map[string]QuantityParams{
	"common":    {DF: 5, Scale: 1.5, Min: 1, Max: 50},
	"uncommon":  {DF: 3, Scale: 1.2, Min: 1, Max: 30},
	"rare":      {DF: 1.5, Scale: 0.7, Min: 1, Max: 10},
	"very_rare": {DF: 1, Scale: 0.5, Min: 1, Max: 5},
	"unique":    {DF: 1, Scale: 0.3, Min: 1, Max: 3},
}

// rarityWeights biases weighted sampling toward common ingredients.
var rarityWeights = map[string]float64{
	"common":    1.0,
	"uncommon":  0.85,
	"rare":      0.7,
	"very_rare": 0.5,
	"unique":    0.3,
}

// Inventory size distribution for generated inventories.
const (
	sizeMean = 35
	sizeStd  = 10
	sizeMin  = 10
	sizeMax  = 70
)

// vendorBlacklist lists ingredients vendors never stock.
var vendorBlacklist = map[string]bool{
	"Crimson Nirnroot": true,
	"Glowing Mushroom": true,
}

// vendorTier describes one Bernoulli slot pool of the vendor table.
type vendorTier struct {
	rarity      string
	slots       int
	spawnChance float64
}

var vendorTiers = []vendorTier{
	{rarity: "common", slots: 15, spawnChance: 0.75},
	{rarity: "uncommon", slots: 10, spawnChance: 0.75},
	{rarity: "rare", slots: 5, spawnChance: 0.75},
}

// VendorQuantityRanges gives the uniform quantity range per rarity.
var VendorQuantityRanges = map[string][2]int{
	"common":   {1, 5},
	"uncommon": {1, 3},
	"rare":     {1, 2},
}

// GenerateNormal samples size distinct ingredients uniformly from the
// catalog with chi-squared quantities. size <= 0 draws the size from a
// clamped Normal(35, 10).
func GenerateNormal(r *rand.Rand, cat *data.Catalog, size int) *Inventory {
	if size <= 0 {
		size = sampleInventorySize(r)
	}

	all := cat.AllIngredients()
	if size > len(all) {
		size = len(all)
	}

	inv := NewInventory()
	for _, idx := range r.Perm(len(all))[:size] {
		qty := sampleChi2Quantity(r, NormalQuantityParams)
		inv.items[all[idx].Name] = qty
	}
	return inv
}

// GenerateWeighted samples ingredients with rarity-biased selection and
// per-rarity quantity draws.
func GenerateWeighted(r *rand.Rand, cat *data.Catalog, size int) *Inventory {
	if size <= 0 {
		size = sampleInventorySize(r)
	}

	all := cat.AllIngredients()
	if size > len(all) {
		size = len(all)
	}

	weights := make([]float64, len(all))
	total := 0.0
	for i, ing := range all {
		w, ok := rarityWeights[ing.Rarity]
		if !ok {
			w = 1.0
		}
		weights[i] = w
		total += w
	}

	// Sample with replacement, dedupe, allow a bounded number of
	// extra passes to fill the target size.
	selected := make(map[string]*data.Ingredient, size)
	maxAttempts := size * 3
	for attempt := 0; len(selected) < size && attempt < maxAttempts; attempt++ {
		need := size - len(selected)
		for range need {
			pick := r.Float64() * total
			for i, w := range weights {
				pick -= w
				if pick <= 0 {
					selected[all[i].Name] = all[i]
					break
				}
			}
		}
	}

	inv := NewInventory()
	for _, ing := range all { // catalog order keeps output deterministic per seed
		chosen, ok := selected[ing.Name]
		if !ok {
			continue
		}
		params, ok := WeightedQuantityParams[chosen.Rarity]
		if !ok {
			params = WeightedQuantityParams["common"]
		}
		inv.items[chosen.Name] = sampleChi2Quantity(r, params)
	}
	return inv
}

// GenerateVendor builds a vendor inventory with the tiered Bernoulli
// slot table: each slot spawns with 75% probability and picks uniformly
// from its rarity pool. Blacklisted, very_rare and unique ingredients
// never appear.
func GenerateVendor(r *rand.Rand, cat *data.Catalog) *Inventory {
	pools := make(map[string][]string)
	for _, ing := range cat.AllIngredients() {
		if vendorBlacklist[ing.Name] {
			continue
		}
		switch ing.Rarity {
		case "common", "uncommon", "rare":
			pools[ing.Rarity] = append(pools[ing.Rarity], ing.Name)
		}
	}

	selected := make(map[string]string) // name → rarity
	for _, tier := range vendorTiers {
		pool := pools[tier.rarity]
		if len(pool) == 0 {
			continue
		}
		for range tier.slots {
			if r.Float64() < tier.spawnChance {
				name := pool[r.IntN(len(pool))]
				selected[name] = tier.rarity
			}
		}
	}

	inv := NewInventory()
	for _, ing := range cat.AllIngredients() {
		rarity, ok := selected[ing.Name]
		if !ok {
			continue
		}
		rng, ok := VendorQuantityRanges[rarity]
		if !ok {
			rng = [2]int{1, 3}
		}
		inv.items[ing.Name] = rng[0] + r.IntN(rng[1]-rng[0]+1)
	}
	return inv
}

func sampleInventorySize(r *rand.Rand) int {
	size := int(r.NormFloat64()*sizeStd + sizeMean)
	return clamp(size, sizeMin, sizeMax)
}

// sampleChi2Quantity draws from Chi2(df) = Gamma(df/2, 2), scaled and
// clamped.
func sampleChi2Quantity(r *rand.Rand, p QuantityParams) int {
	raw := sampleGamma(r, p.DF/2.0) * 2.0 * p.Scale
	return clamp(int(raw), p.Min, p.Max)
}

// sampleGamma draws from Gamma(shape, 1) using the Marsaglia–Tsang
// squeeze method. Shapes below 1 use the boost transform.
func sampleGamma(r *rand.Rand, shape float64) float64 {
	if shape < 1 {
		return sampleGamma(r, shape+1) * math.Pow(r.Float64(), 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := r.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
