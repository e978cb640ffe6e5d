package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/jblackburn/alembic/internal/alchemy"
	"github.com/jblackburn/alembic/internal/model"
)

// maxRequestBody caps calculate requests at 1 MiB.
const maxRequestBody = 1 << 20

type effectJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Magnitude   int32  `json:"magnitude"`
	Duration    int32  `json:"duration"`
	Value       int64  `json:"value"`
	IsPoison    bool   `json:"is_poison"`
}

type potionJSON struct {
	Name        string       `json:"name"`
	Ingredients []string     `json:"ingredients"`
	TotalValue  int64        `json:"total_value"`
	Effects     []effectJSON `json:"effects"`
}

func potionToJSON(p *alchemy.Potion) potionJSON {
	effects := make([]effectJSON, len(p.Effects))
	for i, e := range p.Effects {
		effects[i] = effectJSON{
			Name:        e.Name,
			Description: e.Description,
			Magnitude:   e.Magnitude,
			Duration:    e.Duration,
			Value:       e.Value,
			IsPoison:    e.Harmful,
		}
	}
	return potionJSON{
		Name:        p.Name,
		Ingredients: p.Ingredients,
		TotalValue:  p.TotalValue,
		Effects:     effects,
	}
}

// handleCalculatePotions enumerates and prices every compound buildable
// from the submitted ingredient list for the submitted actor stats.
// Missing stat fields fall back to the untrained defaults.
func (s *Server) handleCalculatePotions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body")
		return
	}
	if !gjson.ValidBytes(body) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	actor, err := actorFromRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var names []string
	for _, v := range gjson.GetBytes(body, "ingredients").Array() {
		names = append(names, v.String())
	}
	if len(names) < 2 {
		writeError(w, http.StatusBadRequest, "please select at least 2 ingredients")
		return
	}
	for _, name := range names {
		if s.catalog.Ingredient(name) != nil {
			continue
		}
		msg := fmt.Sprintf("unknown ingredient %q", name)
		if suggestion := s.catalog.NearestIngredient(name); suggestion != "" {
			msg = fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	potions := alchemy.GeneratePotions(names, actor, s.catalog)
	sort.SliceStable(potions, func(i, j int) bool {
		return potions[i].TotalValue > potions[j].TotalValue
	})

	result := make([]potionJSON, len(potions))
	for i, p := range potions {
		result[i] = potionToJSON(p)
	}

	slog.Debug("calculated potions", "ingredients", len(names), "potions", len(result))
	writeJSON(w, http.StatusOK, map[string]any{"potions": result})
}

// actorFromRequest builds an actor profile from the request body with
// the same lenient defaulting the original calculator used: absent
// fields mean "untrained".
func actorFromRequest(body []byte) (model.ActorProfile, error) {
	skill := int32(model.DefaultSkill)
	if v := gjson.GetBytes(body, "skill"); v.Exists() {
		skill = int32(v.Int())
	}
	fortify := int32(gjson.GetBytes(body, "fortify").Int())
	rank := int32(gjson.GetBytes(body, "alchemist_rank").Int())

	actor, err := model.NewActorProfile(
		skill,
		fortify,
		rank,
		gjson.GetBytes(body, "physician").Bool(),
		gjson.GetBytes(body, "benefactor").Bool(),
		gjson.GetBytes(body, "poisoner").Bool(),
		gjson.GetBytes(body, "seeker").Bool(),
		gjson.GetBytes(body, "purity").Bool(),
	)
	if err != nil {
		return model.ActorProfile{}, fmt.Errorf("invalid player stats: %w", err)
	}
	return actor, nil
}

type ingredientJSON struct {
	Name    string   `json:"name"`
	Value   int32    `json:"value"`
	Weight  float64  `json:"weight"`
	Rarity  string   `json:"rarity"`
	Source  string   `json:"source"`
	Effects []string `json:"effects"`
}

func (s *Server) handleListIngredients(w http.ResponseWriter, _ *http.Request) {
	all := s.catalog.AllIngredients()
	result := make([]ingredientJSON, len(all))
	for i, ing := range all {
		result[i] = ingredientJSON{
			Name:    ing.Name,
			Value:   ing.Value,
			Weight:  ing.Weight,
			Rarity:  ing.Rarity,
			Source:  ing.Source,
			Effects: ing.EffectNames(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ingredients": result})
}

type effectTemplateJSON struct {
	Name           string  `json:"name"`
	BaseCost       float64 `json:"base_cost"`
	BaseMag        int32   `json:"base_mag"`
	BaseDur        int32   `json:"base_dur"`
	Type           string  `json:"effect_type"`
	VariesDuration bool    `json:"varies_duration"`
}

func (s *Server) handleListEffects(w http.ResponseWriter, _ *http.Request) {
	all := s.catalog.AllEffects()
	result := make([]effectTemplateJSON, len(all))
	for i, e := range all {
		result[i] = effectTemplateJSON{
			Name:           e.Name,
			BaseCost:       e.BaseCost,
			BaseMag:        e.BaseMag,
			BaseDur:        e.BaseDur,
			Type:           string(e.Type),
			VariesDuration: e.VariesDuration,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"effects": result})
}
