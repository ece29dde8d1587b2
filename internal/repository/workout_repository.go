package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"

	"mapty/internal/model"
)

const DefaultWorkoutsKey = "workouts"

// WorkoutRepository stores the whole workout list as one JSON array under a
// single key.
type WorkoutRepository struct {
	store KVStore
	key   string
	log   zerolog.Logger
}

func NewWorkoutRepository(store KVStore, key string, log zerolog.Logger) *WorkoutRepository {
	if key == "" {
		key = DefaultWorkoutsKey
	}
	return &WorkoutRepository{store: store, key: key, log: log}
}

// Load returns the stored workouts in the order they were saved. A missing
// key is an empty list. Elements that cannot be rehydrated are skipped.
func (r *WorkoutRepository) Load(ctx context.Context) ([]model.Workout, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err == ErrNotFound {
		return []model.Workout{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}

	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}

	workouts := make([]model.Workout, 0, len(items))
	for i, item := range items {
		record, err := decodeRecord(item)
		if err != nil {
			r.log.Warn().Err(err).Int("index", i).Msg("skipping stored workout")
			continue
		}
		workout, err := model.Rehydrate(record)
		if err != nil {
			r.log.Warn().Err(err).Int("index", i).Msg("skipping stored workout")
			continue
		}
		workouts = append(workouts, workout)
	}
	return workouts, nil
}

// Save replaces the stored list.
func (r *WorkoutRepository) Save(ctx context.Context, workouts []model.Workout) error {
	records := make([]model.Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, w.Record())
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode workouts: %w", err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("save workouts: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("clear workouts: %w", err)
	}
	return nil
}

// decodeRecord maps one loosely typed JSON object onto a Record. Numbers
// stored as strings are accepted.
func decodeRecord(item interface{}) (model.Record, error) {
	var record model.Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToTimeHook,
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &record,
	})
	if err != nil {
		return model.Record{}, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(item); err != nil {
		return model.Record{}, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

func stringToTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	raw := data.(string)
	if raw == "" {
		return time.Time{}, nil
	}
	// RFC 3339 with or without fractional seconds, as JSON.stringify writes
	// dates. Restored in local time so descriptions keep the local day.
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t.Local(), nil
}
