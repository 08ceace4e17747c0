package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolveState(t *testing.T) {
	if got := ResolveState("NJ"); got != "new jersey" {
		t.Errorf("ResolveState(NJ) = %q", got)
	}
	if got := ResolveState("texas"); got != "texas" {
		t.Errorf("ResolveState(texas) = %q", got)
	}
}

func TestWMODescription(t *testing.T) {
	if got := WMODescription(0); got != "Clear sky" {
		t.Errorf("WMODescription(0) = %q", got)
	}
	if got := WMODescription(1234); got != "Unknown" {
		t.Errorf("unknown code should map to Unknown, got %q", got)
	}
}

func TestLookupStateHintDisambiguation(t *testing.T) {
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"name": "Morristown", "latitude": 36.2, "longitude": -83.3, "admin1": "Tennessee"},
				{"name": "Morristown", "latitude": 40.8, "longitude": -74.5, "admin1": "New Jersey"},
			},
		})
	}))
	defer geoSrv.Close()

	fcSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 验证转发的是州提示命中的坐标
		if lat := r.URL.Query().Get("latitude"); lat == "" || lat[:4] != "40.8" {
			t.Errorf("expected NJ latitude, got %q", lat)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"current": map[string]any{
				"temperature_2m":       72.4,
				"relative_humidity_2m": 55.0,
				"apparent_temperature": 74.1,
				"weather_code":         2,
				"wind_speed_10m":       8.3,
			},
			"daily": map[string]any{
				"time":               []string{"2026-08-28"},
				"temperature_2m_max": []float64{81.0},
				"temperature_2m_min": []float64{63.0},
				"weather_code":       []int{1},
			},
		})
	}))
	defer fcSrv.Close()

	c := &Client{
		GeocodingURL: geoSrv.URL,
		ForecastURL:  fcSrv.URL,
		Client:       &http.Client{Timeout: 2 * time.Second},
	}

	report, err := c.Lookup(context.Background(), "Morristown, NJ")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if report.Location != "Morristown, New Jersey" {
		t.Errorf("expected disambiguated location, got %q", report.Location)
	}
	if report.Description != "Partly cloudy" {
		t.Errorf("expected Partly cloudy, got %q", report.Description)
	}
	if len(report.Forecast) != 1 || report.Forecast[0].Description != "Mainly clear" {
		t.Errorf("unexpected forecast: %+v", report.Forecast)
	}
}

func TestLookupNoResults(t *testing.T) {
	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer geoSrv.Close()

	c := &Client{
		GeocodingURL: geoSrv.URL,
		ForecastURL:  geoSrv.URL,
		Client:       &http.Client{Timeout: 2 * time.Second},
	}
	if _, err := c.Lookup(context.Background(), "Nowheresville"); err == nil {
		t.Fatalf("expected error for unknown location")
	}
}
