package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	apperrors "mapty/internal/errors"
	"mapty/internal/geo"
	"mapty/internal/model"
	"mapty/internal/render"
	"mapty/internal/repository"
)

const (
	MessageInvalidInput = "Enter a positive number!"
	MessageNoLocation   = "App can't find your location"
)

type MapSettings struct {
	Zoom        int
	TileURL     string
	Attribution string
}

// AppService owns the state of one tracker page: the workout list, the map
// and the coordinate picked for the next workout.
type AppService struct {
	mu       sync.Mutex
	repo     *repository.WorkoutRepository
	locator  geo.Locator
	reported *geo.ReportedLocator
	ids      *model.IDGenerator
	settings MapSettings
	log      zerolog.Logger

	workouts  []model.Workout
	mapLoaded bool
	center    geo.Coords
	pending   *geo.Coords
	formType  string
}

func NewAppService(
	repo *repository.WorkoutRepository,
	locator geo.Locator,
	reported *geo.ReportedLocator,
	ids *model.IDGenerator,
	settings MapSettings,
	log zerolog.Logger,
) *AppService {
	if settings.Zoom == 0 {
		settings.Zoom = geo.DefaultZoom
	}
	if settings.TileURL == "" {
		settings.TileURL = geo.DefaultTileURL
	}
	if settings.Attribution == "" {
		settings.Attribution = geo.DefaultAttribution
	}
	return &AppService{
		repo:     repo,
		locator:  locator,
		reported: reported,
		ids:      ids,
		settings: settings,
		log:      log,
		workouts: []model.Workout{},
		formType: model.TypeRunning,
	}
}

type MoveView struct {
	Center  [2]float64    `json:"center"`
	Zoom    int           `json:"zoom"`
	Workout model.Workout `json:"workout"`
}

// Load replaces the in-memory list with what storage holds.
func (s *AppService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *AppService) loadLocked(ctx context.Context) error {
	workouts, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	for _, w := range workouts {
		s.ids.Observe(w.ID)
	}
	s.workouts = workouts
	s.log.Info().Int("count", len(workouts)).Msg("workouts restored")
	return nil
}

func (s *AppService) ReportPosition(pos geo.Coords) *apperrors.APIError {
	if err := s.reported.Report(pos); err != nil {
		return apperrors.BadRequest("invalid_coords", err.Error())
	}
	return nil
}

func (s *AppService) ReportDenied() {
	s.reported.Deny()
	s.log.Warn().Msg("browser geolocation denied")
}

// LoadMap locates the user and returns the map centered on them with a
// marker for every workout. Without a position no map is loaded and no
// workout can be created.
func (s *AppService) LoadMap(ctx context.Context) (*geo.MapView, *apperrors.APIError) {
	pos, err := s.locator.Locate(ctx)
	if errors.Is(err, geo.ErrUnavailable) {
		return nil, apperrors.ServiceUnavailable("location_unavailable", MessageNoLocation)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to locate user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapLoaded = true
	s.center = pos

	view := s.mapViewLocked()
	return &view, nil
}

func (s *AppService) mapViewLocked() geo.MapView {
	return geo.MapView{
		Center:      s.center.Pair(),
		Zoom:        s.settings.Zoom,
		TileURL:     s.settings.TileURL,
		Attribution: s.settings.Attribution,
		Markers:     render.Markers(s.workouts),
	}
}

// SelectLocation handles a click on the map: it remembers the coordinate and
// opens the form.
func (s *AppService) SelectLocation(pos geo.Coords) (*FormView, *apperrors.APIError) {
	if err := pos.Validate(); err != nil {
		return nil, apperrors.BadRequest("invalid_coords", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mapLoaded {
		return nil, apperrors.Conflict("map_not_loaded", MessageNoLocation, nil)
	}
	s.pending = &pos

	view := s.formViewLocked()
	return &view, nil
}

// ToggleType switches the form between running and cycling inputs.
func (s *AppService) ToggleType(workoutType string) (*FormView, *apperrors.APIError) {
	if !model.IsValidType(workoutType) {
		return nil, apperrors.BadRequest("invalid_type", "type must be running or cycling")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formType = workoutType
	view := s.formViewLocked()
	return &view, nil
}

func (s *AppService) Form() FormView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formViewLocked()
}

func (s *AppService) formViewLocked() FormView {
	view := FormView{
		Visible: s.pending != nil,
		Type:    s.formType,
		Fields:  VisibleFields(s.formType),
	}
	if s.pending != nil {
		pending := *s.pending
		view.Pending = &pending
	}
	return view
}

// CreateWorkout validates the form, records the workout at the selected
// coordinate and persists the whole list. Invalid input changes nothing.
func (s *AppService) CreateWorkout(ctx context.Context, input FormInput) (*model.Workout, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return nil, apperrors.Conflict("no_location", "click on the map to choose where the workout happened", nil)
	}

	workoutType := input.Type
	if workoutType == "" {
		workoutType = s.formType
	}
	distance := coerceNumber(input.Distance)
	duration := coerceNumber(input.Duration)

	id, at := s.ids.Next()
	var (
		workout model.Workout
		err     error
	)
	switch workoutType {
	case model.TypeRunning:
		workout, err = model.NewRunning(id, at, *s.pending, distance, duration, coerceNumber(input.Cadence))
	case model.TypeCycling:
		workout, err = model.NewCycling(id, at, *s.pending, distance, duration, coerceNumber(input.Elevation))
	default:
		return nil, apperrors.BadRequest("invalid_type", "type must be running or cycling")
	}
	if err != nil {
		return nil, apperrors.BadRequest("invalid_input", MessageInvalidInput)
	}

	next := append(append([]model.Workout{}, s.workouts...), workout)
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("failed to persist workouts")
		return nil, apperrors.Internal("failed to save workout")
	}
	s.workouts = next
	s.pending = nil
	s.formType = model.TypeRunning

	s.log.Info().Str("id", workout.ID).Str("type", workout.Type).Msg("workout recorded")
	return &workout, nil
}

func (s *AppService) Workouts() []model.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Workout{}, s.workouts...)
}

// MoveTo centers the map on a workout and counts the interaction.
func (s *AppService) MoveTo(ctx context.Context, id string) (*MoveView, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i := range s.workouts {
		if s.workouts[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, apperrors.NotFound("workout_not_found", "workout not found")
	}

	next := append([]model.Workout{}, s.workouts...)
	next[index].Click()
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("failed to persist workouts")
		return nil, apperrors.Internal("failed to save workout")
	}
	s.workouts = next
	s.center = next[index].Coords

	return &MoveView{
		Center:  next[index].Coords.Pair(),
		Zoom:    s.settings.Zoom,
		Workout: next[index],
	}, nil
}

// Reset wipes storage and starts over as if the page had been reloaded.
func (s *AppService) Reset(ctx context.Context) *apperrors.APIError {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear workouts")
		return apperrors.Internal("failed to reset")
	}
	s.mapLoaded = false
	s.pending = nil
	s.formType = model.TypeRunning
	if err := s.loadLocked(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to reload workouts")
		return apperrors.Internal("failed to reload")
	}
	return nil
}
