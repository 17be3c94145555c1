package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/trainerapi/config"
	"github.com/padraicbc/trainerapi/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return db, nil
}

// CreateTables creates all tables in dependency order, plus the lookup
// indexes on the foreign key columns.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.SkillRow)(nil),
		(*models.Trainer)(nil),
		(*models.Batch)(nil),
		(*models.Project)(nil),
		(*models.Associate)(nil),
		(*models.Team)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []struct {
		model  interface{}
		name   string
		column string
	}{
		{(*models.Batch)(nil), "batches_trainer_id_idx", "trainer_id"},
		{(*models.Project)(nil), "projects_batch_id_idx", "batch_id"},
		{(*models.Associate)(nil), "associates_batch_id_idx", "batch_id"},
		{(*models.Team)(nil), "teams_project_id_idx", "project_id"},
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.column).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
