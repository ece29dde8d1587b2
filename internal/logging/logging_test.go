package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("key", "workouts").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"key":"workouts"`) {
		t.Fatalf("expected structured field, got %s", out)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", &buf)
	log.Info().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatal("expected info output")
	}
}
