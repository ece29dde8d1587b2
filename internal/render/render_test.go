package render

import (
	"testing"
	"time"

	"mapty/internal/geo"
	"mapty/internal/model"
)

var date = time.Date(2026, time.April, 12, 18, 0, 0, 0, time.UTC)

func TestMarker(t *testing.T) {
	run, _ := model.NewRunning("7", date, geo.Coords{Lat: 41.9, Lng: 12.5}, 5, 30, 170)
	m := Marker(run)

	if m.PopupText != "🏃 Jogging 4/12/2026" {
		t.Fatalf("unexpected popup %q", m.PopupText)
	}
	if m.PopupClass != "running-popup" || m.Opacity != 0.7 {
		t.Fatalf("unexpected marker %+v", m)
	}
	if m.Coords != [2]float64{41.9, 12.5} {
		t.Fatalf("unexpected coords %v", m.Coords)
	}
}

func TestEntryRunning(t *testing.T) {
	run, _ := model.NewRunning("7", date, geo.Coords{}, 5, 30, 170)
	entry := Entry(run)

	want := []Detail{
		{Icon: "🏃", Value: "5", Unit: "km"},
		{Icon: "⏱", Value: "30", Unit: "min"},
		{Icon: "📏⏱", Value: "6.00", Unit: "min/km"},
		{Icon: "👟⏱", Value: "170", Unit: "step/min"},
	}
	assertDetails(t, entry.Details, want)
	if entry.Title != "Jogging 4/12/2026" || entry.Type != "running" || entry.ID != "7" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestEntryCycling(t *testing.T) {
	ride, _ := model.NewCycling("8", date, geo.Coords{}, 10, 30, 12.5)
	want := []Detail{
		{Icon: "🚵‍♂️", Value: "10", Unit: "km"},
		{Icon: "⏱", Value: "30", Unit: "min"},
		{Icon: "📏⏱", Value: "0.01", Unit: "km/h"},
		{Icon: "🏔", Value: "12.5", Unit: "m"},
	}
	assertDetails(t, Entry(ride).Details, want)
}

func TestSidebarNewestFirst(t *testing.T) {
	first, _ := model.NewRunning("1", date, geo.Coords{}, 5, 30, 170)
	second, _ := model.NewCycling("2", date, geo.Coords{}, 10, 30, 0)

	entries := Sidebar([]model.Workout{first, second})
	if len(entries) != 2 || entries[0].ID != "2" || entries[1].ID != "1" {
		t.Fatalf("unexpected order %+v", entries)
	}
	if len(Markers([]model.Workout{first, second})) != 2 {
		t.Fatal("expected a marker per workout")
	}
}

func assertDetails(t *testing.T, got, want []Detail) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d details, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("detail %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
