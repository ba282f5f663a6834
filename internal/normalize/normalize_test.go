package normalize

import (
	"testing"

	"trippilot/skyview/internal/models/entities"
)

func TestAirport_MissingFieldsGetDefaults(t *testing.T) {
	a := Airport(map[string]any{"code": "DEL"})

	if a.Name != entities.UnknownAirportName {
		t.Errorf("Expected default name, got %q", a.Name)
	}
	if a.City != entities.UnknownCity {
		t.Errorf("Expected default city, got %q", a.City)
	}
	if a.Lat != 0 || a.Lng != 0 || a.Terminal != 0 {
		t.Errorf("Expected zero numerics, got %+v", a)
	}
	if a.Amenities != (entities.Amenities{}) {
		t.Errorf("Expected zero amenities, got %+v", a.Amenities)
	}
}

func TestAirport_FullRecord(t *testing.T) {
	a := Airport(map[string]any{
		"code":     "BOM",
		"name":     "Chhatrapati Shivaji",
		"city":     "Mumbai",
		"lat":      19.0896,
		"lng":      "72.8656",
		"terminal": 2.0,
		"amenities": map[string]any{
			"restaurants": 12.0,
			"lounges":     3.0,
		},
	})

	if a.Lng != 72.8656 {
		t.Errorf("Expected numeric string to parse, got %v", a.Lng)
	}
	if a.Terminal != 2 || a.Amenities.Restaurants != 12 || a.Amenities.Lounges != 3 || a.Amenities.Shops != 0 {
		t.Errorf("Unexpected airport %+v", a)
	}
}

func TestFlight_EveryFieldSubsetIsPopulated(t *testing.T) {
	full := map[string]any{
		"id":           "abc",
		"flightNumber": "AI101",
		"airline":      "Air India",
		"origin":       "DEL",
		"destination":  "BOM",
		"lat":          10.0,
		"lon":          20.0,
		"altitude":     35000.0,
		"heading":      90.0,
		"speed":        480.0,
		"status":       "Delayed",
	}
	keys := make([]string, 0, len(full))
	for k := range full {
		keys = append(keys, k)
	}

	// every subset of a fixed key order: 2^11 combinations
	for mask := 0; mask < 1<<len(keys); mask++ {
		raw := map[string]any{}
		for i, k := range keys {
			if mask&(1<<i) != 0 {
				raw[k] = full[k]
			}
		}
		f := Flight(raw, 7)

		if f.ID == "" || f.FlightNumber == "" || f.Airline == "" || f.Origin == "" || f.Destination == "" {
			t.Fatalf("Empty string field for input %v: %+v", raw, f)
		}
		if f.Status != entities.StatusInAir {
			t.Fatalf("Expected status forced to In Air, got %q", f.Status)
		}
	}
}

func TestFlight_AliasesAndSyntheticID(t *testing.T) {
	f := Flight(map[string]any{
		"icao24":   "800c1a",
		"callsign": "IGO202",
		"lat":      "21.5",
		"lng":      79.1,
		"velocity": 420.0,
	}, 0)

	if f.ID != "800c1a" {
		t.Errorf("Expected icao24 id, got %s", f.ID)
	}
	if f.FlightNumber != "IGO202" || f.Airline != "IGO" {
		t.Errorf("Expected callsign-derived number/airline, got %s / %s", f.FlightNumber, f.Airline)
	}
	if f.Lat != 21.5 || f.Lon != 79.1 || f.Speed != 420 {
		t.Errorf("Unexpected position/speed %+v", f)
	}
	if f.Origin != entities.UnknownRoute || f.Destination != entities.UnknownRoute {
		t.Errorf("Expected Unknown route, got %s -> %s", f.Origin, f.Destination)
	}

	anon := Flight(map[string]any{}, 4)
	if anon.ID != "flight_4" {
		t.Errorf("Expected synthetic id flight_4, got %s", anon.ID)
	}
	if anon.Airline != unknownAirline {
		t.Errorf("Expected unknown airline, got %s", anon.Airline)
	}
}

func TestAirports_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{"something":1}`},
		{"not an array", `{"airports":"oops"}`},
		{"null body", `null`},
		{"scalar body", `42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Airports([]byte(tt.body))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Expected empty non-nil collection, got %v", got)
			}
		})
	}
}

func TestAirports_SyntaxErrorIsReported(t *testing.T) {
	if _, err := Airports([]byte(`{"airports":[`)); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestAirports_DropsEmptyAndDuplicateCodes(t *testing.T) {
	body := `{"airports":[
		{"code":"DEL","city":"Delhi"},
		{"name":"nameless"},
		{"code":"DEL","city":"Second"},
		"garbage",
		{"code":"BOM"}
	]}`
	got, err := Airports([]byte(body))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 airports, got %d", len(got))
	}
	if got[0].City != "Delhi" {
		t.Errorf("Expected first DEL to win, got %s", got[0].City)
	}
}

func TestFlights_DedupesIDs(t *testing.T) {
	body := `{"flights":[{"id":"A1","lat":10,"lon":20},{"id":"A1","lat":11},{"id":"B2"}]}`
	got, err := Flights([]byte(body))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 flights, got %d", len(got))
	}
	if got[0].Lat != 10 || got[0].Lon != 20 {
		t.Errorf("Expected first A1 kept, got %+v", got[0])
	}
}

func TestFlights_TopLevelArrayAccepted(t *testing.T) {
	got, err := Flights([]byte(`[{"id":"X"}]`))
	if err != nil || len(got) != 1 {
		t.Fatalf("Expected one flight, got %v (%v)", got, err)
	}
}

func TestWithProgress(t *testing.T) {
	idx := entities.IndexAirports([]entities.Airport{
		{Code: "AAA", Lat: 0, Lng: 0},
		{Code: "BBB", Lat: 0, Lng: 10},
	})
	flights := []entities.Flight{
		{ID: "1", Origin: "AAA", Destination: "BBB", Lat: 0, Lon: 5, Status: entities.StatusInAir},
		{ID: "2", Origin: "AAA", Destination: "ZZZ", Lat: 0, Lon: 5, Status: entities.StatusInAir},
		{ID: "3", Origin: "AAA", Destination: "BBB", Lat: 0, Lon: 5, Status: entities.StatusLanded},
	}

	got := WithProgress(flights, idx)

	if got[0].Progress != 50 {
		t.Errorf("Expected 50%%, got %d", got[0].Progress)
	}
	if got[1].Progress != 0 {
		t.Errorf("Expected 0 for unresolvable destination, got %d", got[1].Progress)
	}
	if got[2].Progress != 0 {
		t.Errorf("Expected 0 for non-airborne flight, got %d", got[2].Progress)
	}
	if flights[0].Progress != 0 {
		t.Error("Expected input slice to stay untouched")
	}
}
