package model

import (
	"fmt"
	"time"

	"mapty/internal/geo"
)

// Record is the plain-data form of a workout as it sits in storage. It
// carries no behavior; Rehydrate turns it back into a Workout.
type Record struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Date          time.Time `json:"date"`
	Coords        []float64 `json:"coords"`
	Distance      float64   `json:"distance"`
	Duration      float64   `json:"duration"`
	Description   string    `json:"description"`
	Clicks        int       `json:"clickNumber"`
	Cadence       *float64  `json:"cadence,omitempty"`
	Pace          *float64  `json:"pace,omitempty"`
	ElevationGain *float64  `json:"elevationGain,omitempty"`
	Speed         *float64  `json:"speed,omitempty"`
}

func (w Workout) Record() Record {
	pair := w.Coords.Pair()
	r := Record{
		ID:          w.ID,
		Type:        w.Type,
		Date:        w.Date,
		Coords:      pair[:],
		Distance:    w.Distance,
		Duration:    w.Duration,
		Description: w.Description,
		Clicks:      w.Clicks,
	}
	switch w.Type {
	case TypeRunning:
		cadence, pace := w.Cadence, w.Pace
		r.Cadence, r.Pace = &cadence, &pace
	case TypeCycling:
		gain, speed := w.ElevationGain, w.Speed
		r.ElevationGain, r.Speed = &gain, &speed
	}
	return r
}

// Rehydrate rebuilds the variant a record was saved from. Derived metrics and
// the description are recomputed rather than trusted.
func Rehydrate(r Record) (Workout, error) {
	if r.ID == "" {
		return Workout{}, fmt.Errorf("record has no id")
	}
	if r.Date.IsZero() {
		return Workout{}, fmt.Errorf("record %s has no date", r.ID)
	}
	coords, err := geo.FromPair(r.Coords)
	if err != nil {
		return Workout{}, fmt.Errorf("record %s coords: %w", r.ID, err)
	}

	var w Workout
	switch r.Type {
	case TypeRunning:
		if r.Cadence == nil {
			return Workout{}, fmt.Errorf("record %s: running without cadence", r.ID)
		}
		w, err = NewRunning(r.ID, r.Date, coords, r.Distance, r.Duration, *r.Cadence)
	case TypeCycling:
		if r.ElevationGain == nil {
			return Workout{}, fmt.Errorf("record %s: cycling without elevation gain", r.ID)
		}
		w, err = NewCycling(r.ID, r.Date, coords, r.Distance, r.Duration, *r.ElevationGain)
	default:
		return Workout{}, fmt.Errorf("record %s: unknown type %q", r.ID, r.Type)
	}
	if err != nil {
		return Workout{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	if r.Clicks > 0 {
		w.Clicks = r.Clicks
	}
	return w, nil
}
