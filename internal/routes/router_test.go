package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"trippilot/skyview/internal/api"
	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/config"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/providers"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logging.SetLogger(zap.NewNop())

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/airports":
			fmt.Fprint(w, `{"airports":[{"code":"DEL","city":"Delhi","lat":28.56,"lng":77.1},{"code":"BOM","city":"Mumbai","lat":19.09,"lng":72.87}]}`)
		case "/api/flights/active":
			fmt.Fprint(w, `{"flights":[{"id":"f1","flightNumber":"AI101","origin":"DEL","destination":"BOM","lat":24,"lon":75,"heading":200}]}`)
		case "/api/chat":
			fmt.Fprint(w, `{"response":"Descending soon."}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(backend.Close)

	reg := prometheus.NewRegistry()
	deps := api.InitDependencies(api.Infra{
		Config: config.Config{
			ViewTTL:             time.Hour,
			ViewTokenTTL:        time.Hour,
			ViewSecret:          "test-secret",
			TrackCacheTTL:       time.Minute,
			WeatherTTL:          time.Hour,
			AirportPollInterval: time.Hour,
			FlightPollInterval:  time.Hour,
			RequestTimeout:      time.Second,
		},
		Cache:   common.NewCacheService(time.Hour, 0),
		Backend: providers.NewBackendProvider(backend.URL, time.Second),
		Metrics: metrics.NewMetricsRegistry(reg),
	})
	t.Cleanup(deps.Services.Views.Shutdown)

	handler := RegisterRoutes(deps, RouterConfig{
		AllowedOrigins:     []string{"*"},
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, time.Now())

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, server *httptest.Server, method, path, token, body string) (int, dtos.APIResponse) {
	t.Helper()
	req, _ := http.NewRequest(method, server.URL+path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	var resp dtos.APIResponse
	_ = json.NewDecoder(res.Body).Decode(&resp)
	return res.StatusCode, resp
}

func data(t *testing.T, resp dtos.APIResponse, dst any) {
	t.Helper()
	raw, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
}

func TestViewLifecycle(t *testing.T) {
	server := newTestServer(t)

	code, resp := call(t, server, "POST", "/api/v1/views", "", "")
	if code != http.StatusCreated {
		t.Fatalf("Mount: expected 201, got %d (%s)", code, resp.Message)
	}
	var mounted dtos.MountViewResponse
	data(t, resp, &mounted)
	base := "/api/v1/views/" + mounted.ViewID

	if code, _ := call(t, server, "GET", base+"/map", "", ""); code != http.StatusUnauthorized {
		t.Errorf("Map without token: expected 401, got %d", code)
	}

	code, resp = call(t, server, "GET", base+"/map", mounted.Token, "")
	if code != http.StatusOK {
		t.Fatalf("Map: expected 200, got %d", code)
	}
	var state struct {
		Markers []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"markers"`
	}
	data(t, resp, &state)
	if len(state.Markers) != 3 {
		t.Errorf("Expected 2 airports and 1 flight, got %+v", state.Markers)
	}

	if code, _ := call(t, server, "POST", base+"/select/flight/f1", mounted.Token, ""); code != http.StatusOK {
		t.Fatalf("Select flight: expected 200, got %d", code)
	}
	_, resp = call(t, server, "GET", base+"/map", mounted.Token, "")
	var withRoute struct {
		Route *struct {
			FlightID string `json:"flightId"`
		} `json:"route"`
	}
	data(t, resp, &withRoute)
	if withRoute.Route == nil {
		t.Error("Selecting a resolvable flight should draw its route")
	}

	_, resp = call(t, server, "POST", base+"/chat", mounted.Token, `{"message":"status?"}`)
	var reply dtos.ChatReply
	data(t, resp, &reply)
	if reply.Reply.Content != "Descending soon." || !strings.Contains(reply.Context, "Route: DEL to BOM.") {
		t.Errorf("Unexpected chat reply %+v", reply)
	}

	code, resp = call(t, server, "GET", base+"/search?q=mum", mounted.Token, "")
	var found dtos.SearchResponse
	data(t, resp, &found)
	if code != http.StatusOK || len(found.Airports) != 1 || found.Airports[0].Code != "BOM" {
		t.Errorf("Search: %d %+v", code, found)
	}

	if code, _ := call(t, server, "DELETE", base+"/selection", mounted.Token, ""); code != http.StatusOK {
		t.Errorf("Clear selection: expected 200, got %d", code)
	}

	if code, _ := call(t, server, "DELETE", base, mounted.Token, ""); code != http.StatusOK {
		t.Fatalf("Unmount: expected 200, got %d", code)
	}
	if code, _ := call(t, server, "GET", base+"/map", mounted.Token, ""); code != http.StatusUnauthorized {
		t.Errorf("Revoked token: expected 401, got %d", code)
	}
}

func TestViewTokenIsScopedToItsView(t *testing.T) {
	server := newTestServer(t)

	_, respA := call(t, server, "POST", "/api/v1/views", "", `{"show_flights":false}`)
	_, respB := call(t, server, "POST", "/api/v1/views", "", "")
	var a, b dtos.MountViewResponse
	data(t, respA, &a)
	data(t, respB, &b)

	if a.ShowFlights || !a.ShowAirports {
		t.Errorf("Expected airports-only view, got %+v", a)
	}
	if code, _ := call(t, server, "GET", "/api/v1/views/"+b.ViewID+"/map", a.Token, ""); code != http.StatusForbidden {
		t.Errorf("Cross-view token: expected 403, got %d", code)
	}
}

func TestPublicRoutes(t *testing.T) {
	server := newTestServer(t)

	if code, _ := call(t, server, "POST", "/api/v1/auth/password-strength", "", `{"password":"hunter22"}`); code != http.StatusOK {
		t.Errorf("Password strength: expected 200, got %d", code)
	}
	if code, _ := call(t, server, "GET", "/healthCheck", "", ""); code != http.StatusOK {
		t.Errorf("Health: expected 200, got %d", code)
	}

	res, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	defer res.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(res.Body)
	if !strings.Contains(buf.String(), "skyview_http_requests_total") {
		t.Error("Metrics endpoint should expose skyview_http_requests_total")
	}
}
