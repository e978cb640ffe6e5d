package db

import (
	"context"
	"fmt"

	"github.com/jblackburn/alembic/internal/data"
)

// CatalogRepository loads and seeds the alchemy catalog tables.
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load reads the full catalog into memory. The returned catalog is
// the same immutable value the embedded CSV loader produces.
func (r *CatalogRepository) Load(ctx context.Context) (*data.Catalog, error) {
	effects, err := r.loadEffects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading effects: %w", err)
	}
	ingredients, err := r.loadIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ingredients: %w", err)
	}
	return data.NewCatalog(effects, ingredients), nil
}

func (r *CatalogRepository) loadEffects(ctx context.Context) ([]*data.EffectTemplate, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT effect_name, base_cost, base_mag, base_dur, effect_type, varies_duration, description
		FROM effects
		ORDER BY effect_name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying effects: %w", err)
	}
	defer rows.Close()

	var effects []*data.EffectTemplate
	for rows.Next() {
		var e data.EffectTemplate
		var effType string
		if err := rows.Scan(&e.Name, &e.BaseCost, &e.BaseMag, &e.BaseDur, &effType, &e.VariesDuration, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning effect row: %w", err)
		}
		e.Type = data.EffectType(effType)
		effects = append(effects, &e)
	}
	return effects, rows.Err()
}

func (r *CatalogRepository) loadIngredients(ctx context.Context) ([]*data.Ingredient, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT ingredient_name, ingredient_id, base_value, weight,
		       COALESCE(effect_1, ''), effect_1_mag, effect_1_dur,
		       COALESCE(effect_2, ''), effect_2_mag, effect_2_dur,
		       COALESCE(effect_3, ''), effect_3_mag, effect_3_dur,
		       COALESCE(effect_4, ''), effect_4_mag, effect_4_dur,
		       dlc, rarity, source
		FROM ingredients
		ORDER BY ingredient_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*data.Ingredient
	for rows.Next() {
		var ing data.Ingredient
		var names [4]string
		var mags, durs [4]int32
		if err := rows.Scan(
			&ing.Name, &ing.ID, &ing.Value, &ing.Weight,
			&names[0], &mags[0], &durs[0],
			&names[1], &mags[1], &durs[1],
			&names[2], &mags[2], &durs[2],
			&names[3], &mags[3], &durs[3],
			&ing.DLC, &ing.Rarity, &ing.Source,
		); err != nil {
			return nil, fmt.Errorf("scanning ingredient row: %w", err)
		}
		for slot := range names {
			if names[slot] == "" {
				continue
			}
			ing.Effects = append(ing.Effects, data.IngredientEffectRef{
				Name:      names[slot],
				Magnitude: mags[slot],
				Duration:  durs[slot],
			})
		}
		ingredients = append(ingredients, &ing)
	}
	return ingredients, rows.Err()
}

// IsEmpty reports whether the catalog tables hold no ingredients.
func (r *CatalogRepository) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ingredients`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting ingredients: %w", err)
	}
	return count == 0, nil
}

// Seed inserts the given catalog into the tables. Existing rows with
// the same name are left untouched, so seeding is idempotent.
func (r *CatalogRepository) Seed(ctx context.Context, cat *data.Catalog) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range cat.AllEffects() {
		_, err := tx.Exec(ctx, `
			INSERT INTO effects (effect_name, base_cost, base_mag, base_dur, effect_type, varies_duration, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (effect_name) DO NOTHING
		`, e.Name, e.BaseCost, e.BaseMag, e.BaseDur, string(e.Type), e.VariesDuration, e.Description)
		if err != nil {
			return fmt.Errorf("inserting effect %q: %w", e.Name, err)
		}
	}

	for _, ing := range cat.AllIngredients() {
		var names [4]any
		var mags, durs [4]int32
		for slot, ref := range ing.Effects {
			names[slot] = ref.Name
			mags[slot] = ref.Magnitude
			durs[slot] = ref.Duration
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO ingredients (ingredient_name, ingredient_id, base_value, weight,
			                         effect_1, effect_1_mag, effect_1_dur,
			                         effect_2, effect_2_mag, effect_2_dur,
			                         effect_3, effect_3_mag, effect_3_dur,
			                         effect_4, effect_4_mag, effect_4_dur,
			                         dlc, rarity, source)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
			ON CONFLICT (ingredient_name) DO NOTHING
		`, ing.Name, ing.ID, ing.Value, ing.Weight,
			names[0], mags[0], durs[0],
			names[1], mags[1], durs[1],
			names[2], mags[2], durs[2],
			names[3], mags[3], durs[3],
			ing.DLC, ing.Rarity, ing.Source)
		if err != nil {
			return fmt.Errorf("inserting ingredient %q: %w", ing.Name, err)
		}
	}

	return tx.Commit(ctx)
}
