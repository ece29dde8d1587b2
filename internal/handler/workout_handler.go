package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mapty/internal/geo"
	"mapty/internal/render"
	"mapty/internal/service"
)

type WorkoutHandler struct {
	app *service.AppService
}

type locationRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

func NewWorkoutHandler(app *service.AppService) *WorkoutHandler {
	return &WorkoutHandler{app: app}
}

// ReportLocation receives the browser's geolocation result, either a
// position or an error.
func (h *WorkoutHandler) ReportLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}
	if req.Error != "" {
		h.app.ReportDenied()
		c.JSON(http.StatusOK, gin.H{"status": "denied"})
		return
	}

	pos, ok := coordsFrom(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_coords", "message": "lat and lng are required"},
		})
		return
	}
	if apiErr := h.app.ReportPosition(pos); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "located"})
}

func (h *WorkoutHandler) GetMap(c *gin.Context) {
	view, apiErr := h.app.LoadMap(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"map": view})
}

func (h *WorkoutHandler) ClickMap(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}
	pos, ok := coordsFrom(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_coords", "message": "lat and lng are required"},
		})
		return
	}

	form, apiErr := h.app.SelectLocation(pos)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *WorkoutHandler) GetForm(c *gin.Context) {
	workoutType := c.Query("type")
	if workoutType == "" {
		c.JSON(http.StatusOK, gin.H{"form": h.app.Form()})
		return
	}

	form, apiErr := h.app.ToggleType(workoutType)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	workouts := h.app.Workouts()
	c.JSON(http.StatusOK, gin.H{
		"workouts": workouts,
		"sidebar":  render.Sidebar(workouts),
	})
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req service.FormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	workout, apiErr := h.app.CreateWorkout(c.Request.Context(), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"workout": workout,
		"marker":  render.Marker(*workout),
		"entry":   render.Entry(*workout),
	})
}

func (h *WorkoutHandler) MoveTo(c *gin.Context) {
	move, apiErr := h.app.MoveTo(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, move)
}

func (h *WorkoutHandler) Reset(c *gin.Context) {
	if apiErr := h.app.Reset(c.Request.Context()); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func coordsFrom(req locationRequest) (geo.Coords, bool) {
	if req.Lat == nil || req.Lng == nil {
		return geo.Coords{}, false
	}
	return geo.Coords{Lat: *req.Lat, Lng: *req.Lng}, true
}
