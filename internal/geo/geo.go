package geo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

const (
	DefaultZoom        = 13
	DefaultTileURL     = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

var ErrUnavailable = errors.New("location unavailable")

// ErrDenied reports that the browser refused to share a position. It wraps
// ErrUnavailable and stops a Chain from falling back to other locators.
var ErrDenied = fmt.Errorf("location denied: %w", ErrUnavailable)

// Coords is a WGS 84 coordinate pair.
type Coords struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

func (c Coords) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return fmt.Errorf("coordinates must be finite")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", c.Lng)
	}
	return nil
}

// Pair returns the coordinate as [lat, lng], the order the map library expects.
func (c Coords) Pair() [2]float64 {
	return [2]float64{c.Lat, c.Lng}
}

func FromPair(pair []float64) (Coords, error) {
	if len(pair) != 2 {
		return Coords{}, fmt.Errorf("expected [lat, lng], got %d values", len(pair))
	}
	c := Coords{Lat: pair[0], Lng: pair[1]}
	if err := c.Validate(); err != nil {
		return Coords{}, err
	}
	return c, nil
}

// Locator resolves the user's current position.
type Locator interface {
	Locate(ctx context.Context) (Coords, error)
}

// StaticLocator always answers with a configured home position.
type StaticLocator struct {
	home *Coords
}

func NewStaticLocator(home *Coords) *StaticLocator {
	return &StaticLocator{home: home}
}

func (l *StaticLocator) Locate(ctx context.Context) (Coords, error) {
	if err := ctx.Err(); err != nil {
		return Coords{}, err
	}
	if l.home == nil {
		return Coords{}, ErrUnavailable
	}
	return *l.home, nil
}

// ReportedLocator holds the position last reported by the browser.
type ReportedLocator struct {
	mu     sync.Mutex
	pos    *Coords
	denied bool
}

func NewReportedLocator() *ReportedLocator {
	return &ReportedLocator{}
}

func (l *ReportedLocator) Report(c Coords) error {
	if err := c.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pos = &c
	l.denied = false
	return nil
}

// Deny records that the browser refused or failed to provide a position.
func (l *ReportedLocator) Deny() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pos = nil
	l.denied = true
}

func (l *ReportedLocator) Denied() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.denied
}

func (l *ReportedLocator) Locate(ctx context.Context) (Coords, error) {
	if err := ctx.Err(); err != nil {
		return Coords{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.denied {
		return Coords{}, ErrDenied
	}
	if l.pos == nil {
		return Coords{}, ErrUnavailable
	}
	return *l.pos, nil
}

// Chain returns the first position any of its locators can provide. A
// denial ends the search.
type Chain []Locator

func (c Chain) Locate(ctx context.Context) (Coords, error) {
	for _, locator := range c {
		pos, err := locator.Locate(ctx)
		if err == nil {
			return pos, nil
		}
		if errors.Is(err, ErrDenied) || !errors.Is(err, ErrUnavailable) {
			return Coords{}, err
		}
	}
	return Coords{}, ErrUnavailable
}

// Marker is a map marker with an always-open popup.
type Marker struct {
	ID         string     `json:"id"`
	Coords     [2]float64 `json:"coords"`
	Opacity    float64    `json:"opacity"`
	PopupClass string     `json:"popupClass"`
	PopupText  string     `json:"popupText"`
}

// MapView is everything the client needs to draw the map.
type MapView struct {
	Center      [2]float64 `json:"center"`
	Zoom        int        `json:"zoom"`
	TileURL     string     `json:"tileUrl"`
	Attribution string     `json:"attribution"`
	Markers     []Marker   `json:"markers"`
}
