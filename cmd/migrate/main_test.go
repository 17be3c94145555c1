package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	bundb "github.com/padraicbc/trainerapi/db"
	"github.com/padraicbc/trainerapi/models"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func newTarget(t *testing.T) *bun.DB {
	t.Helper()
	db := bun.NewDB(openSQLite(t), sqlitedialect.New())
	require.NoError(t, bundb.CreateTables(context.Background(), db))
	return db
}

func TestMigrateSkills(t *testing.T) {
	ctx := context.Background()
	src := openSQLite(t)
	_, err := src.Exec(`CREATE TABLE skills (id INTEGER PRIMARY KEY, skill_level TEXT, technology TEXT, retired INTEGER)`)
	require.NoError(t, err)
	_, err = src.Exec(`INSERT INTO skills (id, skill_level, technology, retired) VALUES (1, 'expert', 'Go', 0), (4, 'novice', 'Java', 1)`)
	require.NoError(t, err)

	dst := newTarget(t)

	n, err := migrateSkills(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// a second run must not duplicate anything
	_, err = migrateSkills(ctx, src, dst)
	require.NoError(t, err)

	var rows []models.SkillRow
	require.NoError(t, dst.NewSelect().Model(&rows).OrderExpr("s.id ASC").Scan(ctx))
	require.Len(t, rows, 2)
	assert.Equal(t, models.Skill{ID: 4, SkillLevel: "novice", Technology: "Java"}, models.SkillFromRow(rows[1]))
}

func TestMigrateSkillsMissingColumn(t *testing.T) {
	src := openSQLite(t)
	_, err := src.Exec(`CREATE TABLE skills (id INTEGER PRIMARY KEY, level TEXT, technology TEXT)`)
	require.NoError(t, err)
	_, err = src.Exec(`INSERT INTO skills (id, level, technology) VALUES (1, 'expert', 'Go')`)
	require.NoError(t, err)

	_, err = migrateSkills(context.Background(), src, newTarget(t))

	var missing *models.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "skill_level", missing.Field)
}

func TestMigrateTeams(t *testing.T) {
	ctx := context.Background()
	src := openSQLite(t)
	_, err := src.Exec(`CREATE TABLE teams (id INTEGER PRIMARY KEY, project_id INTEGER, name TEXT)`)
	require.NoError(t, err)
	for i := 1; i <= batchSize+3; i++ {
		_, err = src.Exec(`INSERT INTO teams (id, project_id, name) VALUES (?, 1, ?)`, i, fmt.Sprintf("team-%d", i))
		require.NoError(t, err)
	}

	dst := newTarget(t)
	n, err := migrateTeams(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, batchSize+3, n)

	count, err := dst.NewSelect().Model((*models.Team)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, batchSize+3, count)
}
