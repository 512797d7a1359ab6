package routehandlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coreybb/shiftmate/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(g *fakeGateway) http.Handler {
	r := chi.NewRouter()
	for path, res := range map[string]Resource{
		"/shifts":    ShiftResource,
		"/mood":      MoodResource,
		"/hydration": HydrationResource,
	} {
		h := NewResourceHandler(g, res)
		r.Post(path, webutil.MakeHandler(h.HandleCreate))
		r.Get(path+"/{"+ParamUserID+"}", webutil.MakeHandler(h.HandleListByUser))
	}
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(webutil.HeaderContentType, "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return rec, decoded
}

func TestCreateHydration(t *testing.T) {
	g := newFakeGateway()

	rec, body := do(t, newTestRouter(g), http.MethodPost, "/hydration", `{"user_id":"u1","amount_ml":250}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := body.(map[string]any)
	assert.Equal(t, "Hydration event logged successfully", envelope["message"])
	hydration := envelope["hydration"].(map[string]any)
	assert.Equal(t, "u1", hydration["user_id"])
	assert.Equal(t, 250.0, hydration["amount_ml"])
	assert.Equal(t, "id-1", hydration["id"])
	assert.Equal(t, "2024-01-01T09:00:00Z", hydration["created_at"])
}

func TestCreateShift_RoundTrip(t *testing.T) {
	g := newFakeGateway()
	payload := `{"user_id":"u7","start_time":"2024-02-10T22:00:00Z","end_time":"2024-02-11T06:00:00Z","type":"night"}`

	rec, body := do(t, newTestRouter(g), http.MethodPost, "/shifts", payload)

	require.Equal(t, http.StatusCreated, rec.Code)
	envelope := body.(map[string]any)
	assert.Equal(t, "Shift created successfully", envelope["message"])
	shift := envelope["shift"].(map[string]any)
	assert.Equal(t, "u7", shift["user_id"])
	assert.Equal(t, "2024-02-10T22:00:00Z", shift["start_time"])
	assert.Equal(t, "2024-02-11T06:00:00Z", shift["end_time"])
	assert.Equal(t, "night", shift["type"])
	assert.Contains(t, shift, "id")
	assert.Contains(t, shift, "created_at")
}

func TestCreateShift_MissingType(t *testing.T) {
	g := newFakeGateway()
	payload := `{"user_id":"u1","start_time":"2024-02-10T22:00:00Z","end_time":"2024-02-11T06:00:00Z"}`

	rec, body := do(t, newTestRouter(g), http.MethodPost, "/shifts", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{
		"error":    "Missing required fields",
		"required": []any{"user_id", "start_time", "end_time", "type"},
	}, body)
	assert.Empty(t, g.records, "rejected payload must not reach the gateway")
}

func TestCreate_MissingFieldsAcrossResources(t *testing.T) {
	tests := []struct {
		path     string
		required []any
	}{
		{"/shifts", []any{"user_id", "start_time", "end_time", "type"}},
		{"/mood", []any{"user_id", "mood_level"}},
		{"/hydration", []any{"user_id", "amount_ml"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, body := do(t, newTestRouter(newFakeGateway()), http.MethodPost, tt.path, `{}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Missing required fields", body.(map[string]any)["error"])
			assert.Equal(t, tt.required, body.(map[string]any)["required"])
		})
	}
}

func TestCreate_InvalidJSON(t *testing.T) {
	rec, body := do(t, newTestRouter(newFakeGateway()), http.MethodPost, "/mood", `{"user_id":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", body.(map[string]any)["error"])
	assert.Equal(t, []any{"user_id", "mood_level"}, body.(map[string]any)["required"])
}

func TestCreate_GatewayFailure(t *testing.T) {
	tests := []struct {
		path    string
		payload string
		message string
	}{
		{"/shifts", `{"user_id":"u1","start_time":"2024-02-10T22:00:00Z","end_time":"2024-02-11T06:00:00Z","type":"night"}`, "Failed to create shift"},
		{"/mood", `{"user_id":"u1","mood_level":3}`, "Failed to log mood"},
		{"/hydration", `{"user_id":"u1","amount_ml":100}`, "Failed to log hydration event"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			g := newFakeGateway()
			g.err = errBackendDown

			rec, body := do(t, newTestRouter(g), http.MethodPost, tt.path, tt.payload)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, map[string]any{"error": tt.message}, body)
			assert.NotContains(t, rec.Body.String(), "10.0.0.5")
		})
	}
}

func TestListMood_NewestFirst(t *testing.T) {
	g := newFakeGateway()
	router := newTestRouter(g)

	rec, _ := do(t, router, http.MethodPost, "/mood", `{"user_id":"u1","mood_level":2,"note":"early"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = do(t, router, http.MethodPost, "/mood", `{"user_id":"u1","mood_level":4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = do(t, router, http.MethodPost, "/mood", `{"user_id":"u2","mood_level":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := do(t, router, http.MethodGet, "/mood/u1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	moods := body.([]any)
	require.Len(t, moods, 2)
	assert.Equal(t, 4.0, moods[0].(map[string]any)["mood_level"])
	assert.Equal(t, 2.0, moods[1].(map[string]any)["mood_level"])
	assert.Equal(t, "early", moods[1].(map[string]any)["note"])
	assert.NotContains(t, moods[0].(map[string]any), "note")
	assert.Equal(t, "created_at", g.lastOrderField)
	assert.True(t, g.lastDescending)
}

func TestListShifts_OrderedByStartTime(t *testing.T) {
	g := newFakeGateway()
	router := newTestRouter(g)

	for _, start := range []string{"2024-03-01T08:00:00Z", "2024-03-03T08:00:00Z", "2024-03-02T08:00:00Z"} {
		rec, _ := do(t, router, http.MethodPost, "/shifts",
			`{"user_id":"u1","start_time":"`+start+`","end_time":"2024-03-04T00:00:00Z","type":"day"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := do(t, router, http.MethodGet, "/shifts/u1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	shifts := body.([]any)
	require.Len(t, shifts, 3)
	assert.Equal(t, "2024-03-03T08:00:00Z", shifts[0].(map[string]any)["start_time"])
	assert.Equal(t, "2024-03-02T08:00:00Z", shifts[1].(map[string]any)["start_time"])
	assert.Equal(t, "2024-03-01T08:00:00Z", shifts[2].(map[string]any)["start_time"])
	assert.Equal(t, "start_time", g.lastOrderField)
}

func TestList_EmptyIsNotAnError(t *testing.T) {
	for _, path := range []string{"/shifts/nobody", "/mood/nobody", "/hydration/nobody"} {
		rec, body := do(t, newTestRouter(newFakeGateway()), http.MethodGet, path, "")

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, []any{}, body, path)
	}
}

func TestList_GatewayFailure(t *testing.T) {
	g := newFakeGateway()
	g.err = errBackendDown

	rec, body := do(t, newTestRouter(g), http.MethodGet, "/hydration/u1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"error": "Failed to fetch hydration events"}, body)
}
