// Package render turns workouts into the pieces the page shows: map markers
// with popups and sidebar entries.
package render

import (
	"fmt"
	"strconv"

	"mapty/internal/geo"
	"mapty/internal/model"
)

const markerOpacity = 0.7

const (
	iconRunning   = "🏃"
	iconCycling   = "🚵‍♂️"
	iconDuration  = "⏱"
	iconRate      = "📏⏱"
	iconCadence   = "👟⏱"
	iconElevation = "🏔"
)

func Icon(workoutType string) string {
	if workoutType == model.TypeRunning {
		return iconRunning
	}
	return iconCycling
}

func Marker(w model.Workout) geo.Marker {
	return geo.Marker{
		ID:         w.ID,
		Coords:     w.Coords.Pair(),
		Opacity:    markerOpacity,
		PopupClass: w.Type + "-popup",
		PopupText:  fmt.Sprintf("%s %s", Icon(w.Type), w.Description),
	}
}

func Markers(workouts []model.Workout) []geo.Marker {
	markers := make([]geo.Marker, 0, len(workouts))
	for _, w := range workouts {
		markers = append(markers, Marker(w))
	}
	return markers
}

type Detail struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

type SidebarEntry struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Details []Detail `json:"details"`
}

func Entry(w model.Workout) SidebarEntry {
	details := []Detail{
		{Icon: Icon(w.Type), Value: formatNumber(w.Distance), Unit: "km"},
		{Icon: iconDuration, Value: formatNumber(w.Duration), Unit: "min"},
	}
	switch w.Type {
	case model.TypeRunning:
		details = append(details,
			Detail{Icon: iconRate, Value: fmt.Sprintf("%.2f", w.Pace), Unit: "min/km"},
			Detail{Icon: iconCadence, Value: formatNumber(w.Cadence), Unit: "step/min"},
		)
	case model.TypeCycling:
		details = append(details,
			Detail{Icon: iconRate, Value: fmt.Sprintf("%.2f", w.Speed), Unit: "km/h"},
			Detail{Icon: iconElevation, Value: formatNumber(w.ElevationGain), Unit: "m"},
		)
	}
	return SidebarEntry{
		ID:      w.ID,
		Type:    w.Type,
		Title:   w.Description,
		Details: details,
	}
}

// Sidebar lists entries newest first, the order they stack in under the
// form.
func Sidebar(workouts []model.Workout) []SidebarEntry {
	entries := make([]SidebarEntry, 0, len(workouts))
	for i := len(workouts) - 1; i >= 0; i-- {
		entries = append(entries, Entry(workouts[i]))
	}
	return entries
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
