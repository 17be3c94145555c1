package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/padraicbc/trainerapi/models"
	"github.com/padraicbc/trainerapi/result"
)

// TrainerService performs the storage work behind the /trainer routes.
// A NotFound result means the thing asked for does not exist; an error
// means the lookup itself failed.
type TrainerService interface {
	GetAllTrainers(ctx context.Context) ([]models.Trainer, error)
	GetTrainerByID(ctx context.Context, id string) (result.Result[models.Trainer], error)
	GetBatchesByTrainerID(ctx context.Context, id string) (result.Result[[]models.Batch], error)
	GetProjectsByTrainerID(ctx context.Context, id string) (result.Result[[]models.Project], error)
	GetAssociatesByTrainerID(ctx context.Context, id string) (result.Result[[]models.Associate], error)
	GetTeamsByTrainerID(ctx context.Context, id, projectID string) (result.Result[[]models.Team], error)
	SaveTrainer(ctx context.Context, trainer models.Trainer) (models.Trainer, error)
	PatchTrainer(ctx context.Context, patch models.TrainerPatch) (result.Result[models.Trainer], error)
	DeleteTrainer(ctx context.Context, id string) (result.Result[models.Trainer], error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	trainers TrainerService
	db       Pinger
	log      *zap.Logger
}

// New creates a Handler backed by the given service and database.
func New(trainers TrainerService, db Pinger, log *zap.Logger) *Handler {
	return &Handler{trainers: trainers, db: db, log: log}
}
