package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Mani-Chandra65/Weather-App/internal/owm"
	"github.com/Mani-Chandra65/Weather-App/internal/prefs"
	"github.com/Mani-Chandra65/Weather-App/internal/session"
	"github.com/Mani-Chandra65/Weather-App/internal/weather"
)

// newTestApp builds a demo-mode app: no credential, so every weather
// endpoint serves synthetic data without touching the network.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := zap.NewNop().Sugar()
	svc := weather.NewService(nil, true, log)
	sess := session.NewManager(prefs.NewMemoryStore(), log)

	app := fiber.New()
	RegisterRoutes(app, svc, sess)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func TestHealthReportsDemoMode(t *testing.T) {
	app := newTestApp(t)

	var body map[string]interface{}
	resp := doJSON(t, app, http.MethodGet, "/api/health", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["apiKeyStatus"] != "demo_mode" {
		t.Errorf("apiKeyStatus = %v, want demo_mode", body["apiKeyStatus"])
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestCurrentWeatherDemoPayload(t *testing.T) {
	app := newTestApp(t)

	var body owm.CurrentWeather
	resp := doJSON(t, app, http.MethodGet, "/api/weather/current/Paris", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body.Name != "Paris" {
		t.Errorf("name = %q, want Paris", body.Name)
	}
	if len(body.Weather) == 0 {
		t.Error("payload missing weather conditions")
	}
	if body.Main.Humidity == 0 || body.Main.Pressure == 0 {
		t.Error("payload missing main metrics")
	}
}

func TestForecastCoordinateRoute(t *testing.T) {
	app := newTestApp(t)

	var body owm.Forecast
	resp := doJSON(t, app, http.MethodGet, "/api/weather/forecast/coordinates/40.7/-74", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(body.List) != 40 {
		t.Errorf("forecast has %d samples, want 40", len(body.List))
	}
}

func TestCoordinateValidation(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{
		"/api/weather/coordinates/91/0",
		"/api/weather/coordinates/0/181",
		"/api/weather/coordinates/abc/0",
		"/api/weather/air-quality/-91/0",
	} {
		resp := doJSON(t, app, http.MethodGet, path, nil, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, resp.StatusCode)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/api/weather/coordinates/40.7/-74", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid coordinates: status = %d, want 200", resp.StatusCode)
	}
}

func TestCompareEndpoint(t *testing.T) {
	app := newTestApp(t)

	var results []owm.CurrentWeather
	resp := doJSON(t, app, http.MethodPost, "/api/weather/compare",
		map[string][]string{"cities": {"Oslo", "Cairo"}}, &results)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "Oslo" || results[1].Name != "Cairo" {
		t.Errorf("results out of order: %q, %q", results[0].Name, results[1].Name)
	}

	// Too many cities is rejected before any fetch.
	resp = doJSON(t, app, http.MethodPost, "/api/weather/compare",
		map[string][]string{"cities": {"a", "b", "c", "d", "e", "f"}}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("oversized compare: status = %d, want 400", resp.StatusCode)
	}

	// An empty list is rejected too.
	resp = doJSON(t, app, http.MethodPost, "/api/weather/compare",
		map[string][]string{"cities": {}}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty compare: status = %d, want 400", resp.StatusCode)
	}
}

func TestAPINotFoundEchoesPath(t *testing.T) {
	app := newTestApp(t)

	var body map[string]interface{}
	resp := doJSON(t, app, http.MethodGet, "/api/no/such/route", nil, &body)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if body["error"] != "API endpoint not found" {
		t.Errorf("error = %v", body["error"])
	}
	if body["path"] != "/api/no/such/route" {
		t.Errorf("path = %v, want the requested path", body["path"])
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	app := newTestApp(t)

	var state map[string]interface{}
	resp := doJSON(t, app, http.MethodGet, "/api/preferences", nil, &state)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if state["theme"] != "light" || state["autoTheme"] != false {
		t.Errorf("default preferences = %v", state)
	}

	resp = doJSON(t, app, http.MethodPut, "/api/preferences",
		map[string]interface{}{"theme": "dark"}, &state)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if state["theme"] != "dark" {
		t.Errorf("theme = %v after update, want dark", state["theme"])
	}

	resp = doJSON(t, app, http.MethodPut, "/api/preferences",
		map[string]interface{}{"theme": "sepia"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid theme: status = %d, want 400", resp.StatusCode)
	}
}

func TestAirQualityDemoPayload(t *testing.T) {
	app := newTestApp(t)

	var body owm.AirQuality
	resp := doJSON(t, app, http.MethodGet, "/api/weather/air-quality/40.7/-74", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(body.List) != 1 {
		t.Fatalf("air quality list has %d entries, want 1", len(body.List))
	}
	if aqi := body.List[0].Main.AQI; aqi < 1 || aqi > 5 {
		t.Errorf("AQI = %d, want a category in [1,5]", aqi)
	}
}

func TestGeoRoutes(t *testing.T) {
	app := newTestApp(t)

	var direct []owm.GeoLocation
	resp := doJSON(t, app, http.MethodGet, "/api/geo/direct/Springfield", nil, &direct)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("direct: status = %d, want 200", resp.StatusCode)
	}
	if len(direct) == 0 || direct[0].Name != "Springfield" {
		t.Errorf("direct geocode = %v", direct)
	}

	var reverse []owm.GeoLocation
	resp = doJSON(t, app, http.MethodGet, "/api/geo/reverse/48.85/2.35", nil, &reverse)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reverse: status = %d, want 200", resp.StatusCode)
	}
	if len(reverse) != 1 {
		t.Errorf("reverse geocode returned %d entries, want 1", len(reverse))
	}
}
