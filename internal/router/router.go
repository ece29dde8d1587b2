package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mapty/internal/handler"
	"mapty/internal/middleware"
	"mapty/web"
)

func New(
	workoutHandler *handler.WorkoutHandler,
	pageHandler *handler.PageHandler,
	corsOrigins []string,
	log zerolog.Logger,
) (*gin.Engine, error) {
	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("open static files: %w", err)
	}

	engine := gin.New()
	engine.Use(middleware.RequestLogger(log), gin.Recovery(), middleware.CORS(corsOrigins))
	engine.SetHTMLTemplate(templates)
	engine.StaticFS("/static", http.FS(static))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/", pageHandler.Index)
	engine.POST("/workouts", pageHandler.SubmitForm)
	engine.POST("/reset", pageHandler.Reset)

	api := engine.Group("/api")
	api.POST("/location", workoutHandler.ReportLocation)
	api.GET("/map", workoutHandler.GetMap)
	api.POST("/map/click", workoutHandler.ClickMap)
	api.GET("/form", workoutHandler.GetForm)

	workouts := api.Group("/workouts")
	workouts.GET("", workoutHandler.ListWorkouts)
	workouts.POST("", workoutHandler.CreateWorkout)
	workouts.POST("/:id/move", workoutHandler.MoveTo)

	api.POST("/reset", workoutHandler.Reset)

	return engine, nil
}
