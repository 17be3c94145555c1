// cmd/migrate/main.go
// Migrates trainer data from a legacy MySQL database into the PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/caliber?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/trainerapi/config"
	bundb "github.com/padraicbc/trainerapi/db"
	"github.com/padraicbc/trainerapi/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/caliber?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"skills", func() (int, error) { return migrateSkills(ctx, myDB, pgDB) }},
		{"trainers", func() (int, error) { return migrateTrainers(ctx, myDB, pgDB) }},
		{"batches", func() (int, error) { return migrateBatches(ctx, myDB, pgDB) }},
		{"projects", func() (int, error) { return migrateProjects(ctx, myDB, pgDB) }},
		{"associates", func() (int, error) { return migrateAssociates(ctx, myDB, pgDB) }},
		{"teams", func() (int, error) { return migrateTeams(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-12s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func nullDate(n sql.NullTime) models.Date {
	if !n.Valid {
		return models.Date{}
	}
	return models.NewDate(n.Time.Year(), n.Time.Month(), n.Time.Day())
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	return err
}

// copyRows runs query against MySQL and writes the scanned rows to PostgreSQL
// in batches of batchSize.
func copyRows[T any](ctx context.Context, myDB *sql.DB, pgDB *bun.DB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := myDB.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []T
	total := 0
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), nil
}

// scanRecord reads the current row into a map keyed by column name.
func scanRecord(rows *sql.Rows) (map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	rec := make(map[string]any, len(cols))
	for i, c := range cols {
		rec[c] = vals[i]
	}
	return rec, nil
}

// --- per-table migrations ---

// Legacy skill tables drifted between deployments, so skills are read
// untyped and a missing column stops the run.
func migrateSkills(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB, "SELECT * FROM skills", func(rows *sql.Rows) (models.SkillRow, error) {
		rec, err := scanRecord(rows)
		if err != nil {
			return models.SkillRow{}, err
		}
		skill, err := models.SkillFromRecord(rec)
		if err != nil {
			return models.SkillRow{}, err
		}
		return skill.Row(), nil
	})
}

func migrateTrainers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, first_name, last_name, birthdate FROM trainers",
		func(rows *sql.Rows) (models.Trainer, error) {
			var (
				r         models.Trainer
				birthdate sql.NullTime
			)
			if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &birthdate); err != nil {
				return r, err
			}
			r.Birthdate = nullDate(birthdate)
			return r, nil
		})
}

func migrateBatches(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, trainer_id, skill_id, name, start_date, end_date FROM batches",
		func(rows *sql.Rows) (models.Batch, error) {
			var (
				r                  models.Batch
				trainerID, skillID sql.NullInt64
				start, end         sql.NullTime
			)
			if err := rows.Scan(&r.ID, &trainerID, &skillID, &r.Name, &start, &end); err != nil {
				return r, err
			}
			r.TrainerID = nullInt(trainerID)
			r.SkillID = nullInt(skillID)
			r.StartDate = nullDate(start)
			r.EndDate = nullDate(end)
			return r, nil
		})
}

func migrateProjects(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, batch_id, name, description FROM projects",
		func(rows *sql.Rows) (models.Project, error) {
			var (
				r    models.Project
				desc sql.NullString
			)
			if err := rows.Scan(&r.ID, &r.BatchID, &r.Name, &desc); err != nil {
				return r, err
			}
			r.Description = nullStr(desc)
			return r, nil
		})
}

func migrateAssociates(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, batch_id, first_name, last_name, email FROM associates",
		func(rows *sql.Rows) (models.Associate, error) {
			var r models.Associate
			err := rows.Scan(&r.ID, &r.BatchID, &r.FirstName, &r.LastName, &r.Email)
			return r, err
		})
}

func migrateTeams(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, project_id, name FROM teams",
		func(rows *sql.Rows) (models.Team, error) {
			var r models.Team
			err := rows.Scan(&r.ID, &r.ProjectID, &r.Name)
			return r, err
		})
}

func resetSequences(ctx context.Context, pgDB *bun.DB) {
	for _, table := range []string{"skills", "trainers", "batches", "projects", "associates", "teams"} {
		q := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", table, err)
		}
	}
	log.Println("sequences reset")
}
