package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"mapty/internal/geo"
)

const (
	TypeRunning = "running"
	TypeCycling = "cycling"
)

const descriptionDateLayout = "1/2/2006"

var ErrInvalidInput = errors.New("enter a positive number")

// Workout is a tagged union over the running and cycling variants.
// Cadence and Pace are set only for running, ElevationGain and Speed only
// for cycling.
type Workout struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Date          time.Time  `json:"date"`
	Coords        geo.Coords `json:"coords"`
	Distance      float64    `json:"distance"`
	Duration      float64    `json:"duration"`
	Description   string     `json:"description"`
	Clicks        int        `json:"clicks"`
	Cadence       float64    `json:"cadence,omitempty"`
	Pace          float64    `json:"pace,omitempty"`
	ElevationGain float64    `json:"elevationGain,omitempty"`
	Speed         float64    `json:"speed,omitempty"`
}

// NewRunning builds a running workout. Distance, duration and cadence must
// all be finite and positive.
func NewRunning(id string, date time.Time, coords geo.Coords, distance, duration, cadence float64) (Workout, error) {
	if !allFinite(distance, duration, cadence) || !allPositive(distance, duration, cadence) {
		return Workout{}, ErrInvalidInput
	}
	w := Workout{
		ID:       id,
		Type:     TypeRunning,
		Date:     date,
		Coords:   coords,
		Distance: distance,
		Duration: duration,
		Cadence:  cadence,
	}
	w.calculatePace()
	w.setDescription()
	return w, nil
}

// NewCycling builds a cycling workout. Elevation gain only has to be finite;
// a descent is a valid ride.
func NewCycling(id string, date time.Time, coords geo.Coords, distance, duration, elevationGain float64) (Workout, error) {
	if !allFinite(distance, duration, elevationGain) || !allPositive(distance, duration) {
		return Workout{}, ErrInvalidInput
	}
	w := Workout{
		ID:            id,
		Type:          TypeCycling,
		Date:          date,
		Coords:        coords,
		Distance:      distance,
		Duration:      duration,
		ElevationGain: elevationGain,
	}
	w.calculateSpeed()
	w.setDescription()
	return w, nil
}

// Click records one interaction with the workout.
func (w *Workout) Click() {
	w.Clicks++
}

// min/km
func (w *Workout) calculatePace() {
	w.Pace = w.Duration / w.Distance
}

func (w *Workout) calculateSpeed() {
	w.Speed = w.Distance / w.Duration / 60
}

// setDescription formats the date in the location it carries; workouts are
// stamped in local time.
func (w *Workout) setDescription() {
	label := "Cycling"
	if w.Type == TypeRunning {
		label = "Jogging"
	}
	w.Description = fmt.Sprintf("%s %s", label, w.Date.Format(descriptionDateLayout))
}

func IsValidType(workoutType string) bool {
	return workoutType == TypeRunning || workoutType == TypeCycling
}

func allFinite(numbers ...float64) bool {
	for _, n := range numbers {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return false
		}
	}
	return true
}

func allPositive(numbers ...float64) bool {
	for _, n := range numbers {
		if !(n > 0) {
			return false
		}
	}
	return true
}

// IDGenerator hands out time-derived workout ids: the last ten digits of the
// Unix millisecond clock. Two workouts created in the same millisecond get
// consecutive ids.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh id and the creation time it was derived from.
func (g *IDGenerator) Next() (string, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	at := g.now()
	ms := at.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	raw := strconv.FormatInt(ms, 10)
	if len(raw) > 10 {
		raw = raw[len(raw)-10:]
	}
	return raw, at
}

// Observe makes the generator skip ids already handed out in an earlier
// session.
func (g *IDGenerator) Observe(id string) {
	value, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	// restore the clock prefix the id was cut from
	base := ms - ms%1e10 + value
	if base > ms {
		base -= 1e10
	}
	if base > g.last {
		g.last = base
	}
}
