// Package service implements the trainer operations on top of bun.
//
// Lookups that can legitimately find nothing return a result.Result; only
// storage failures are returned as errors.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/uptrace/bun"

	"github.com/padraicbc/trainerapi/models"
	"github.com/padraicbc/trainerapi/result"
)

// Trainers is the database backed trainer service.
type Trainers struct {
	db *bun.DB
}

func New(db *bun.DB) *Trainers {
	return &Trainers{db: db}
}

// batchRow is a flat scan target for batches left joined with their skill.
type batchRow struct {
	ID         int         `bun:"id"`
	TrainerID  *int        `bun:"trainer_id"`
	Name       string      `bun:"name"`
	StartDate  models.Date `bun:"start_date"`
	EndDate    models.Date `bun:"end_date"`
	SkillID    *int        `bun:"skill_id"`
	SkillLevel *string     `bun:"skill_level"`
	Technology *string     `bun:"technology"`
}

func (r batchRow) batch() models.Batch {
	b := models.Batch{
		ID:        r.ID,
		TrainerID: r.TrainerID,
		SkillID:   r.SkillID,
		Name:      r.Name,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
	if r.SkillID != nil {
		row := models.SkillRow{ID: *r.SkillID}
		if r.SkillLevel != nil {
			row.SkillLevel = *r.SkillLevel
		}
		if r.Technology != nil {
			row.Technology = *r.Technology
		}
		skill := models.SkillFromRow(row)
		b.Skill = &skill
	}
	return b
}

// GetAllTrainers returns every trainer ordered by id. The slice is never nil.
func (s *Trainers) GetAllTrainers(ctx context.Context) ([]models.Trainer, error) {
	trainers := make([]models.Trainer, 0)
	err := s.db.NewSelect().Model(&trainers).OrderExpr("t.id ASC").Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing trainers: %w", err)
	}
	if trainers == nil {
		trainers = []models.Trainer{}
	}
	return trainers, nil
}

func (s *Trainers) GetTrainerByID(ctx context.Context, id string) (result.Result[models.Trainer], error) {
	trainerID, ok := parseID(id)
	if !ok {
		return result.NotFound[models.Trainer](), nil
	}

	trainer, err := findTrainer(ctx, s.db, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result.NotFound[models.Trainer](), nil
		}
		return result.NotFound[models.Trainer](), fmt.Errorf("loading trainer %d: %w", trainerID, err)
	}
	return result.Found(*trainer), nil
}

// GetBatchesByTrainerID returns the trainer's batches with their skill.
func (s *Trainers) GetBatchesByTrainerID(ctx context.Context, id string) (result.Result[[]models.Batch], error) {
	trainerID, found, err := s.existingTrainer(ctx, id)
	if err != nil || !found {
		return result.NotFound[[]models.Batch](), err
	}

	var rows []batchRow
	err = s.db.NewSelect().
		TableExpr("batches AS b").
		ColumnExpr("b.id, b.trainer_id, b.name, b.start_date, b.end_date").
		ColumnExpr("s.id AS skill_id, s.skill_level, s.technology").
		Join("LEFT JOIN skills AS s ON s.id = b.skill_id").
		Where("b.trainer_id = ?", trainerID).
		OrderExpr("b.id ASC").
		Scan(ctx, &rows)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return result.NotFound[[]models.Batch](), fmt.Errorf("listing batches of trainer %d: %w", trainerID, err)
	}

	batches := make([]models.Batch, len(rows))
	for i, r := range rows {
		batches[i] = r.batch()
	}
	return result.Found(batches), nil
}

// GetProjectsByTrainerID returns the projects of all the trainer's batches.
func (s *Trainers) GetProjectsByTrainerID(ctx context.Context, id string) (result.Result[[]models.Project], error) {
	trainerID, found, err := s.existingTrainer(ctx, id)
	if err != nil || !found {
		return result.NotFound[[]models.Project](), err
	}

	projects := make([]models.Project, 0)
	err = s.db.NewSelect().Model(&projects).
		Join("JOIN batches AS b ON b.id = p.batch_id").
		Where("b.trainer_id = ?", trainerID).
		OrderExpr("p.id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return result.NotFound[[]models.Project](), fmt.Errorf("listing projects of trainer %d: %w", trainerID, err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return result.Found(projects), nil
}

// GetAssociatesByTrainerID returns the associates enrolled in the trainer's batches.
func (s *Trainers) GetAssociatesByTrainerID(ctx context.Context, id string) (result.Result[[]models.Associate], error) {
	trainerID, found, err := s.existingTrainer(ctx, id)
	if err != nil || !found {
		return result.NotFound[[]models.Associate](), err
	}

	associates := make([]models.Associate, 0)
	err = s.db.NewSelect().Model(&associates).
		Join("JOIN batches AS b ON b.id = a.batch_id").
		Where("b.trainer_id = ?", trainerID).
		OrderExpr("a.id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return result.NotFound[[]models.Associate](), fmt.Errorf("listing associates of trainer %d: %w", trainerID, err)
	}
	if associates == nil {
		associates = []models.Associate{}
	}
	return result.Found(associates), nil
}

// GetTeamsByTrainerID returns the teams of one project. The project must
// belong to one of the trainer's batches.
func (s *Trainers) GetTeamsByTrainerID(ctx context.Context, id, projectID string) (result.Result[[]models.Team], error) {
	trainerID, ok := parseID(id)
	if !ok {
		return result.NotFound[[]models.Team](), nil
	}
	pid, ok := parseID(projectID)
	if !ok {
		return result.NotFound[[]models.Team](), nil
	}

	owned, err := s.db.NewSelect().
		TableExpr("projects AS p").
		Join("JOIN batches AS b ON b.id = p.batch_id").
		Where("p.id = ?", pid).
		Where("b.trainer_id = ?", trainerID).
		Exists(ctx)
	if err != nil {
		return result.NotFound[[]models.Team](), fmt.Errorf("checking project %d of trainer %d: %w", pid, trainerID, err)
	}
	if !owned {
		return result.NotFound[[]models.Team](), nil
	}

	teams := make([]models.Team, 0)
	err = s.db.NewSelect().Model(&teams).
		Where("tm.project_id = ?", pid).
		OrderExpr("tm.id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return result.NotFound[[]models.Team](), fmt.Errorf("listing teams of project %d: %w", pid, err)
	}
	if teams == nil {
		teams = []models.Team{}
	}
	return result.Found(teams), nil
}

// SaveTrainer inserts a new trainer. Any client supplied id is ignored.
func (s *Trainers) SaveTrainer(ctx context.Context, trainer models.Trainer) (models.Trainer, error) {
	trainer.ID = 0
	trainer.FirstName = strings.TrimSpace(trainer.FirstName)
	trainer.LastName = strings.TrimSpace(trainer.LastName)

	if _, err := s.db.NewInsert().Model(&trainer).Exec(ctx); err != nil {
		return models.Trainer{}, fmt.Errorf("inserting trainer: %w", err)
	}
	return trainer, nil
}

// PatchTrainer applies a partial update and returns the updated trainer.
func (s *Trainers) PatchTrainer(ctx context.Context, patch models.TrainerPatch) (result.Result[models.Trainer], error) {
	if patch.ID <= 0 {
		return result.NotFound[models.Trainer](), nil
	}

	out := result.NotFound[models.Trainer]()
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		trainer, err := findTrainer(ctx, tx, patch.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}

		patch.Apply(trainer)
		if _, err := tx.NewUpdate().Model(trainer).WherePK().Exec(ctx); err != nil {
			return err
		}
		out = result.Found(*trainer)
		return nil
	})
	if err != nil {
		return result.NotFound[models.Trainer](), fmt.Errorf("patching trainer %d: %w", patch.ID, err)
	}
	return out, nil
}

// DeleteTrainer removes a trainer and returns what was deleted. The
// trainer's batches are kept but detached.
func (s *Trainers) DeleteTrainer(ctx context.Context, id string) (result.Result[models.Trainer], error) {
	trainerID, ok := parseID(id)
	if !ok {
		return result.NotFound[models.Trainer](), nil
	}

	out := result.NotFound[models.Trainer]()
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		trainer, err := findTrainer(ctx, tx, trainerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}

		_, err = tx.NewUpdate().
			Model((*models.Batch)(nil)).
			Set("trainer_id = NULL").
			Where("trainer_id = ?", trainerID).
			Exec(ctx)
		if err != nil {
			return err
		}

		if _, err := tx.NewDelete().Model(trainer).WherePK().Exec(ctx); err != nil {
			return err
		}
		out = result.Found(*trainer)
		return nil
	})
	if err != nil {
		return result.NotFound[models.Trainer](), fmt.Errorf("deleting trainer %d: %w", trainerID, err)
	}
	return out, nil
}

func (s *Trainers) existingTrainer(ctx context.Context, id string) (int, bool, error) {
	trainerID, ok := parseID(id)
	if !ok {
		return 0, false, nil
	}
	exists, err := s.db.NewSelect().
		Model((*models.Trainer)(nil)).
		Where("t.id = ?", trainerID).
		Exists(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("checking trainer %d: %w", trainerID, err)
	}
	return trainerID, exists, nil
}

func findTrainer(ctx context.Context, db bun.IDB, id int) (*models.Trainer, error) {
	trainer := new(models.Trainer)
	err := db.NewSelect().Model(trainer).Where("t.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return trainer, nil
}

// parseID accepts positive decimal ids only.
func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
