package service

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"mapty/internal/geo"
	"mapty/internal/model"
)

const (
	FieldType      = "type"
	FieldDistance  = "distance"
	FieldDuration  = "duration"
	FieldCadence   = "cadence"
	FieldElevation = "elevation"
)

// FormInput is the raw text of the workout form, exactly as typed.
type FormInput struct {
	Type      string `json:"type" form:"type"`
	Distance  string `json:"distance" form:"distance"`
	Duration  string `json:"duration" form:"duration"`
	Cadence   string `json:"cadence" form:"cadence"`
	Elevation string `json:"elevation" form:"elevation"`
}

type FormView struct {
	Visible bool        `json:"visible"`
	Type    string      `json:"type"`
	Fields  []string    `json:"fields"`
	Pending *geo.Coords `json:"pending,omitempty"`
}

// VisibleFields lists the inputs shown for a workout type. Switching type
// swaps cadence for elevation and back.
func VisibleFields(workoutType string) []string {
	fields := []string{FieldType, FieldDistance, FieldDuration}
	if workoutType == model.TypeCycling {
		return append(fields, FieldElevation)
	}
	return append(fields, FieldCadence)
}

// coerceNumber converts form text the way a numeric unary plus would: blank
// is zero, 0x/0o/0b prefixes select a radix, digit separators are not
// allowed and anything unparsable is NaN.
func coerceNumber(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	switch trimmed {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(lower, "_") {
		return math.NaN()
	}
	if len(lower) > 2 && lower[0] == '0' {
		switch lower[1] {
		case 'x':
			return parseRadix(lower[2:], 16)
		case 'o':
			return parseRadix(lower[2:], 8)
		case 'b':
			return parseRadix(lower[2:], 2)
		}
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// parseRadix reads unsigned integer digits; values past uint64 still convert.
func parseRadix(digits string, base int) float64 {
	if strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		return math.NaN()
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	value, _ := new(big.Float).SetInt(n).Float64()
	return value
}
