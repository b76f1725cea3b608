package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/utils"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpen_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "error", ""} {
		db, err := Open(&config.Config{DBDriver: "sqlite", DBPath: "file:open_" + level + "?mode=memory", LogLevel: level})
		require.NoError(t, err, level)
		require.NoError(t, db.Exec("SELECT 1").Error, level)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	}
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	prev := DB
	t.Cleanup(func() { DB = prev })

	cfg := &config.Config{DBDriver: "sqlite", DBPath: "file:migrate_test?mode=memory&cache=shared"}
	require.NoError(t, Connect(cfg))
	require.NoError(t, Migrate())

	migrator := GetDB().Migrator()
	for _, table := range []string{"users", "boards", "columns", "labels", "cards", "comments",
		"card_assignees", "card_labels", "teams", "team_projects", "memberships"} {
		assert.True(t, migrator.HasTable(table), table)
	}
	assert.True(t, migrator.HasIndex("card_labels", "idx_card_labels_label_id"))

	// Running twice is a no-op
	require.NoError(t, Migrate())
}

func TestScopes(t *testing.T) {
	prev := DB
	t.Cleanup(func() { DB = prev })

	cfg := &config.Config{DBDriver: "sqlite", DBPath: "file:scopes_test?mode=memory&cache=shared"}
	require.NoError(t, Connect(cfg))
	require.NoError(t, Migrate())

	for _, title := range []string{"Alpha", "alphabet", "Beta", "Gamma"} {
		require.NoError(t, DB.Create(&models.Board{Title: title, CreatedByID: 1}).Error)
	}

	var boards []models.Board
	require.NoError(t, DB.Scopes(TitleSearch("title", "ALPHA")).Order("id").Find(&boards).Error)
	assert.Len(t, boards, 2)

	boards = nil
	params := utils.PaginationParams{Page: 2, Limit: 3, Offset: 3}
	require.NoError(t, DB.Scopes(Paginate(params)).Order("id").Find(&boards).Error)
	require.Len(t, boards, 1)
	assert.Equal(t, "Gamma", boards[0].Title)
}
