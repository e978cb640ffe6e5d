package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jblackburn/alembic/internal/data"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat, err := data.Load()
	require.NoError(t, err)
	return NewServer(cat)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestCalculatePotions(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/potions", `{
		"ingredients": ["Blue Mountain Flower", "Wheat"],
		"skill": 0
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	potions := gjson.Get(body, "potions").Array()
	require.Len(t, potions, 1)

	assert.Equal(t, "Potion of Fortify Health", potions[0].Get("name").String())
	assert.Equal(t, int64(66), potions[0].Get("total_value").Int())
	assert.Len(t, potions[0].Get("effects").Array(), 2)
}

func TestCalculatePotions_SortedByValue(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/potions", `{
		"ingredients": ["Blue Mountain Flower", "Wheat", "Hanging Moss"]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	potions := gjson.Get(rec.Body.String(), "potions").Array()
	require.NotEmpty(t, potions)

	prev := potions[0].Get("total_value").Int()
	for _, p := range potions[1:] {
		cur := p.Get("total_value").Int()
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestCalculatePotions_DefaultsMissingStats(t *testing.T) {
	srv := newTestServer(t)

	// No stats at all: the untrained defaults apply and the request
	// still succeeds.
	rec := doRequest(t, srv, http.MethodPost, "/api/potions", `{
		"ingredients": ["Blue Mountain Flower", "Wheat"]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	potions := gjson.Get(rec.Body.String(), "potions").Array()
	require.Len(t, potions, 1)
	// Default skill 15 prices higher than the zero actor's 66.
	assert.Greater(t, potions[0].Get("total_value").Int(), int64(66))
}

func TestCalculatePotions_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "invalid JSON",
			body:    `{"ingredients": [`,
			wantMsg: "invalid JSON",
		},
		{
			name:    "too few ingredients",
			body:    `{"ingredients": ["Wheat"]}`,
			wantMsg: "at least 2 ingredients",
		},
		{
			name:    "no ingredients field",
			body:    `{"skill": 50}`,
			wantMsg: "at least 2 ingredients",
		},
		{
			name:    "unknown ingredient with suggestion",
			body:    `{"ingredients": ["Weat", "Garlic"]}`,
			wantMsg: `did you mean "Wheat"`,
		},
		{
			name:    "negative skill",
			body:    `{"ingredients": ["Wheat", "Garlic"], "skill": -5}`,
			wantMsg: "invalid player stats",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/potions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, gjson.Get(rec.Body.String(), "error").String(), tt.wantMsg)
		})
	}
}

func TestCalculatePotions_PerksFromRequest(t *testing.T) {
	srv := newTestServer(t)

	base := doRequest(t, srv, http.MethodPost, "/api/potions", `{
		"ingredients": ["Blue Mountain Flower", "Wheat"], "skill": 15
	}`)
	boosted := doRequest(t, srv, http.MethodPost, "/api/potions", `{
		"ingredients": ["Blue Mountain Flower", "Wheat"],
		"skill": 15, "alchemist_rank": 5, "benefactor": true
	}`)

	require.Equal(t, http.StatusOK, base.Code)
	require.Equal(t, http.StatusOK, boosted.Code)

	baseValue := gjson.Get(base.Body.String(), "potions.0.total_value").Int()
	boostedValue := gjson.Get(boosted.Body.String(), "potions.0.total_value").Int()
	assert.Greater(t, boostedValue, baseValue)
}

func TestListIngredients(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/ingredients", "")
	require.Equal(t, http.StatusOK, rec.Code)

	ingredients := gjson.Get(rec.Body.String(), "ingredients").Array()
	require.NotEmpty(t, ingredients)

	first := ingredients[0]
	assert.NotEmpty(t, first.Get("name").String())
	assert.NotEmpty(t, first.Get("effects").Array())
	assert.NotEmpty(t, first.Get("rarity").String())
}

func TestListEffects(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/effects", "")
	require.Equal(t, http.StatusOK, rec.Code)

	effects := gjson.Get(rec.Body.String(), "effects").Array()
	require.NotEmpty(t, effects)

	for _, e := range effects {
		assert.NotEmpty(t, e.Get("name").String())
		assert.Contains(t, []string{"fortify", "restore", "poison"}, e.Get("effect_type").String())
	}
}

func TestMethodRouting(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/potions", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/nonexistent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
