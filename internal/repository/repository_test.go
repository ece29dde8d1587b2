package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mapty/internal/db"
	"mapty/internal/geo"
	"mapty/internal/model"
	"mapty/internal/repository"
)

func TestStores(t *testing.T) {
	stores := map[string]repository.KVStore{
		"sqlite": newSQLiteStore(t),
		"badger": newBadgerStore(t),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.Get(ctx, "missing"); err != repository.ErrNotFound {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := store.Set(ctx, "k", []byte("one")); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, "k", []byte("two")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			value, err := store.Get(ctx, "k")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(value) != "two" {
				t.Fatalf("expected two, got %q", value)
			}
			if err := store.Delete(ctx, "k"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := store.Get(ctx, "k"); err != repository.ErrNotFound {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
			if err := store.Delete(ctx, "k"); err != nil {
				t.Fatalf("deleting a missing key should succeed: %v", err)
			}
		})
	}
}

func TestWorkoutRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWorkoutRepository(newSQLiteStore(t), "", zerolog.Nop())

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty list, got %d", len(loaded))
	}

	date := time.Date(2026, time.June, 1, 7, 0, 0, 0, time.UTC)
	run, _ := model.NewRunning("1", date, geo.Coords{Lat: 45, Lng: 7}, 5, 30, 170)
	ride, _ := model.NewCycling("2", date, geo.Coords{Lat: 46, Lng: 8}, 10, 30, -40)
	if err := repo.Save(ctx, []model.Workout{run, ride}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(loaded))
	}
	if loaded[0].Type != model.TypeRunning || loaded[0].Pace != 6 {
		t.Fatalf("running not rehydrated: %+v", loaded[0])
	}
	if loaded[1].Type != model.TypeCycling || loaded[1].Speed != speedOf(10, 30) || loaded[1].ElevationGain != -40 {
		t.Fatalf("cycling not rehydrated: %+v", loaded[1])
	}
	if !loaded[0].Date.Equal(date) {
		t.Fatalf("date changed: %v", loaded[0].Date)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty list after clear, got %d", len(loaded))
	}
}

func TestWorkoutRepositoryLoadsPlainData(t *testing.T) {
	ctx := context.Background()
	store := newBadgerStore(t)
	raw := `[
		{"id":"1","type":"running","date":"2026-06-01T07:00:00Z","coords":[45,7],"distance":"5","duration":30,"temp":170,"cadence":170,"clickNumber":2},
		{"id":"2","type":"cycling","date":"2026-06-01T08:00:00Z","coords":[45,7],"distance":10,"duration":30,"elevationGain":120,"speed":0.0055},
		{"id":"3","type":"swimming","date":"2026-06-01T09:00:00Z","coords":[45,7],"distance":1,"duration":30},
		"garbage"
	]`
	if err := store.Set(ctx, "workouts", []byte(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	loaded, err := repository.NewWorkoutRepository(store, "workouts", zerolog.Nop()).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 valid workouts, got %d", len(loaded))
	}
	if loaded[0].Distance != 5 || loaded[0].Clicks != 2 {
		t.Fatalf("unexpected running workout %+v", loaded[0])
	}
	if loaded[1].Speed != speedOf(10, 30) {
		t.Fatalf("speed should be recomputed, got %v", loaded[1].Speed)
	}
}

func TestWorkoutRepositoryRestoresDatesInLocalTime(t *testing.T) {
	ctx := context.Background()
	store := newBadgerStore(t)
	raw := `[
		{"id":"1","type":"running","date":"2026-06-01T23:30:00.250+02:00","coords":[45,7],"distance":5,"duration":30,"cadence":170},
		{"id":"2","type":"cycling","date":"2026-06-02T01:15:00Z","coords":[45,7],"distance":10,"duration":30,"elevationGain":0},
		{"id":"3","type":"running","date":"yesterday","coords":[45,7],"distance":5,"duration":30,"cadence":170}
	]`
	if err := store.Set(ctx, "workouts", []byte(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	loaded, err := repository.NewWorkoutRepository(store, "workouts", zerolog.Nop()).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected unparsable date to be skipped, got %d workouts", len(loaded))
	}

	want := []time.Time{
		time.Date(2026, time.June, 1, 23, 30, 0, 250_000_000, time.FixedZone("", 2*60*60)),
		time.Date(2026, time.June, 2, 1, 15, 0, 0, time.UTC),
	}
	prefixes := []string{"Jogging ", "Cycling "}
	for i, w := range loaded {
		if w.Date.Location() != time.Local {
			t.Fatalf("workout %s: expected local location, got %v", w.ID, w.Date.Location())
		}
		if !w.Date.Equal(want[i]) {
			t.Fatalf("workout %s: expected %v, got %v", w.ID, want[i], w.Date)
		}
		desc := prefixes[i] + want[i].Local().Format("1/2/2006")
		if w.Description != desc {
			t.Fatalf("workout %s: expected description %q, got %q", w.ID, desc, w.Description)
		}
	}
}

func TestWorkoutRepositoryCorruptList(t *testing.T) {
	ctx := context.Background()
	store := newBadgerStore(t)
	if err := store.Set(ctx, "workouts", []byte("{not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := repository.NewWorkoutRepository(store, "workouts", zerolog.Nop()).Load(ctx); err == nil {
		t.Fatal("expected decode error")
	}
}

func newSQLiteStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	migrations, err := db.Migrations("")
	if err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if err := db.RunMigrations(database, migrations); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return repository.NewSQLiteStore(database)
}

func newBadgerStore(t *testing.T) *repository.BadgerStore {
	t.Helper()
	database, err := db.OpenBadger("")
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() {
		_ = db.CloseBadger(database)
	})
	return repository.NewBadgerStore("mapty", database)
}

// speedOf mirrors the runtime arithmetic so float rounding matches exactly.
func speedOf(distance, duration float64) float64 {
	return distance / duration / 60
}
