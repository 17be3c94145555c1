package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/trainerapi/models"
)

// GetAllTrainers lists every trainer. An empty list is still a 200.
func (h *Handler) GetAllTrainers(c echo.Context) error {
	trainers, err := h.trainers.GetAllTrainers(c.Request().Context())
	if err != nil {
		return err
	}
	if trainers == nil {
		trainers = []models.Trainer{}
	}
	return writeJSON(c, http.StatusOK, trainers)
}

// GetTrainer returns a single trainer.
func (h *Handler) GetTrainer(c echo.Context) error {
	res, err := h.trainers.GetTrainerByID(c.Request().Context(), c.Param("id"))
	return respond(c, http.StatusOK, res, err)
}

// GetTrainerBatches returns the batches run by a trainer.
func (h *Handler) GetTrainerBatches(c echo.Context) error {
	res, err := h.trainers.GetBatchesByTrainerID(c.Request().Context(), c.Param("id"))
	return respond(c, http.StatusOK, res, err)
}

// GetTrainerProjects returns the projects across a trainer's batches.
func (h *Handler) GetTrainerProjects(c echo.Context) error {
	res, err := h.trainers.GetProjectsByTrainerID(c.Request().Context(), c.Param("id"))
	return respond(c, http.StatusOK, res, err)
}

// GetTrainerAssociates returns the associates across a trainer's batches.
func (h *Handler) GetTrainerAssociates(c echo.Context) error {
	res, err := h.trainers.GetAssociatesByTrainerID(c.Request().Context(), c.Param("id"))
	return respond(c, http.StatusOK, res, err)
}

// GetTrainerTeams returns the teams of one of the trainer's projects.
func (h *Handler) GetTrainerTeams(c echo.Context) error {
	res, err := h.trainers.GetTeamsByTrainerID(c.Request().Context(), c.Param("id"), c.Param("projectID"))
	return respond(c, http.StatusOK, res, err)
}

// CreateTrainer inserts a new trainer.
func (h *Handler) CreateTrainer(c echo.Context) error {
	var req models.Trainer
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.trainers.SaveTrainer(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, created)
}

// PatchTrainer updates the trainer named by the id in the body.
func (h *Handler) PatchTrainer(c echo.Context) error {
	var req models.TrainerPatch
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.trainers.PatchTrainer(c.Request().Context(), req)
	return respond(c, http.StatusOK, res, err)
}

// DeleteTrainer removes a trainer and returns it.
func (h *Handler) DeleteTrainer(c echo.Context) error {
	res, err := h.trainers.DeleteTrainer(c.Request().Context(), c.Param("id"))
	return respond(c, http.StatusOK, res, err)
}

// bindBody decodes the request body into v. Bind failures keep their status
// (400, 415) but lose echo's message so the decoder's detail is not sent back.
func bindBody(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return echo.NewHTTPError(he.Code).SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}
	return nil
}
