package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("countrycodes") != "ro" {
			t.Errorf("expected countrycodes=ro, got %q", r.URL.Query().Get("countrycodes"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected User-Agent header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"46.7712","lon":"23.6236","display_name":"Cluj-Napoca"}]`))
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL}, nil)
	coords, err := g.Geocode(context.Background(), "Strada Motilor 10, Cluj-Napoca, Cluj, Romania")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Latitude != 46.7712 || coords.Longitude != 23.6236 {
		t.Errorf("unexpected coordinates: %+v", coords)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL}, nil)
	_, err := g.Geocode(context.Background(), "no such place")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestGeocodeEmptyAddress(t *testing.T) {
	g := NewGeocoder(GeocoderConfig{BaseURL: "http://unused"}, nil)
	_, err := g.Geocode(context.Background(), "   ")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("expected ErrAddressNotFound for empty address, got %v", err)
	}
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL}, nil)
	_, err := g.Geocode(context.Background(), "Bucuresti")
	if err == nil {
		t.Fatal("expected error on 502 response")
	}
	if errors.Is(err, ErrAddressNotFound) {
		t.Error("server error must not be reported as address-not-found")
	}
}

func TestGeocodeCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	g := NewGeocoder(GeocoderConfig{BaseURL: srv.URL}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Geocode(ctx, "Bucuresti"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestCountyLookups(t *testing.T) {
	if len(Counties()) != 42 {
		t.Errorf("expected 42 counties (41 + Bucharest), got %d", len(Counties()))
	}

	c, ok := CountyByCode("cj")
	if !ok || c.Name != "Cluj" {
		t.Errorf("CountyByCode(cj) = %+v, %v", c, ok)
	}

	c, ok = CountyByName("TIMIS")
	if !ok || c.Code != "TM" {
		t.Errorf("CountyByName(TIMIS) = %+v, %v", c, ok)
	}

	if _, ok := CountyByCode("XX"); ok {
		t.Error("expected unknown code to miss")
	}

	if locs := LocalitiesIn("B"); len(locs) != 6 {
		t.Errorf("expected 6 Bucharest sectors, got %v", locs)
	}
	if LocalitiesIn("??") != nil {
		t.Error("expected nil localities for unknown county")
	}
}

func TestNormalizeAddress(t *testing.T) {
	got := NormalizeAddress("Strada Motilor 10", "Cluj-Napoca", "Cluj")
	want := "Strada Motilor 10, Cluj-Napoca, Cluj, Romania"
	if got != want {
		t.Errorf("NormalizeAddress = %q, want %q", got, want)
	}

	got = NormalizeAddress("", "Brasov", "")
	if got != "Brasov, Romania" {
		t.Errorf("expected empty parts skipped, got %q", got)
	}
}
