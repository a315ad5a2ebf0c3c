package ops

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/portalconfig"
)

func testServer() *Server {
	cat := &catalog.Catalog{
		Equipment: []catalog.EquipmentItem{
			{ID: 1, Name: "SM58", MaxQty: 4, Cost: 10, Value: 100},
			{ID: 2, Name: "C414", MaxQty: 2, Cost: 35, Value: 1100},
		},
		Unavailable: []catalog.UnavailableRange{
			{
				Start: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	return New(portalconfig.Default(), cat)
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestHealth(t *testing.T) {
	w, out := doJSON(t, testServer().Handler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", out["status"])
}

func TestEquipment(t *testing.T) {
	w, out := doJSON(t, testServer().Handler(), http.MethodGet, "/api/v1/equipment", "")

	require.Equal(t, http.StatusOK, w.Code)
	items := out["equipment"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)
	assert.Equal(t, "SM58", first["name"])
	assert.Equal(t, float64(1), first["id"])
}

func TestUnavailable(t *testing.T) {
	w, out := doJSON(t, testServer().Handler(), http.MethodGet, "/api/v1/unavailable", "")

	require.Equal(t, http.StatusOK, w.Code)
	ranges := out["unavailable"].([]any)
	require.Len(t, ranges, 1)

	r := ranges[0].(map[string]any)
	assert.Equal(t, "2026-09-18", r["start_date"])
	assert.Equal(t, "2026-09-21", r["end_date"])
}

func TestAvailability(t *testing.T) {
	h := testServer().Handler()

	w, out := doJSON(t, h, http.MethodGet, "/api/v1/availability?date=2026-09-19", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["unavailable"])

	w, out = doJSON(t, h, http.MethodGet, "/api/v1/availability?date=2026-09-25", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["unavailable"])

	w, _ = doJSON(t, h, http.MethodGet, "/api/v1/availability?date=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuote(t *testing.T) {
	body := `{
		"items": [
			{"id": 1, "quantity": "2"},
			{"id": 2, "quantity": "1"},
			{"id": 99, "quantity": "5"}
		],
		"dates": ["2026-09-05", "2026-09-08", "2026-09-09"]
	}`

	w, out := doJSON(t, testServer().Handler(), http.MethodPost, "/api/v1/quote", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 55.0, out["per_day_total"])
	assert.Equal(t, float64(3), out["days"])
	assert.Equal(t, 165.0, out["total"])
}

func TestQuoteClampsQuantity(t *testing.T) {
	body := `{"items": [{"id": 1, "quantity": "99"}], "dates": ["2026-09-05"]}`

	w, out := doJSON(t, testServer().Handler(), http.MethodPost, "/api/v1/quote", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 40.0, out["per_day_total"], "quantity must clamp to the item's max")
}

func TestQuoteBadBody(t *testing.T) {
	w, _ := doJSON(t, testServer().Handler(), http.MethodPost, "/api/v1/quote", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteIgnoresBadDates(t *testing.T) {
	body := `{"items": [{"id": 1, "quantity": "1"}], "dates": ["2026-09-05", "bogus"]}`

	w, out := doJSON(t, testServer().Handler(), http.MethodPost, "/api/v1/quote", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), out["days"])
	assert.Equal(t, 10.0, out["total"])
}
