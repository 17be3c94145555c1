package handlers

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the trainer API and the health check on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	tr := e.Group("/trainer")
	tr.GET("", h.GetAllTrainers)
	tr.POST("", h.CreateTrainer)
	tr.PATCH("", h.PatchTrainer)
	tr.GET("/:id", h.GetTrainer)
	tr.DELETE("/:id", h.DeleteTrainer)
	tr.GET("/:id/batch", h.GetTrainerBatches)
	tr.GET("/:id/batch/project", h.GetTrainerProjects)
	tr.GET("/:id/batch/associate", h.GetTrainerAssociates)
	tr.GET("/:id/batch/project/:projectID/team", h.GetTrainerTeams)
}
