package geo

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestCoordsValidate(t *testing.T) {
	cases := []struct {
		name    string
		coords  Coords
		wantErr bool
	}{
		{"origin", Coords{0, 0}, false},
		{"edges", Coords{-90, 180}, false},
		{"lat too big", Coords{90.1, 0}, true},
		{"lng too small", Coords{0, -180.5}, true},
		{"nan", Coords{math.NaN(), 0}, true},
		{"inf", Coords{0, math.Inf(1)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coords.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFromPair(t *testing.T) {
	c, err := FromPair([]float64{51.5, -0.12})
	if err != nil {
		t.Fatalf("FromPair: %v", err)
	}
	if c.Lat != 51.5 || c.Lng != -0.12 {
		t.Fatalf("unexpected coords %+v", c)
	}
	if _, err := FromPair([]float64{1}); err == nil {
		t.Fatal("expected error for short pair")
	}
}

func TestChainFallsBackToStatic(t *testing.T) {
	home := Coords{Lat: 48.85, Lng: 2.35}
	reported := NewReportedLocator()
	chain := Chain{reported, NewStaticLocator(&home)}

	pos, err := chain.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos != home {
		t.Fatalf("expected home %+v, got %+v", home, pos)
	}

	browser := Coords{Lat: 40.4, Lng: -3.7}
	if err := reported.Report(browser); err != nil {
		t.Fatalf("report: %v", err)
	}
	pos, err = chain.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if pos != browser {
		t.Fatalf("expected reported %+v, got %+v", browser, pos)
	}
}

func TestReportedLocatorDenied(t *testing.T) {
	reported := NewReportedLocator()
	_ = reported.Report(Coords{Lat: 1, Lng: 1})
	reported.Deny()

	if !reported.Denied() {
		t.Fatal("expected denied")
	}
	_, err := Chain{reported, NewStaticLocator(nil)}.Locate(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestChainStopsOnDenial(t *testing.T) {
	home := Coords{Lat: 48.85, Lng: 2.35}
	reported := NewReportedLocator()
	reported.Deny()
	chain := Chain{reported, NewStaticLocator(&home)}

	_, err := chain.Locate(context.Background())
	if !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected denial to match ErrUnavailable, got %v", err)
	}

	browser := Coords{Lat: 40.4, Lng: -3.7}
	if err := reported.Report(browser); err != nil {
		t.Fatalf("report: %v", err)
	}
	pos, err := chain.Locate(context.Background())
	if err != nil {
		t.Fatalf("locate after report: %v", err)
	}
	if pos != browser {
		t.Fatalf("expected reported %+v, got %+v", browser, pos)
	}
}
