package database

import (
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/logging"
	"gorm.io/gorm"
)

// AddIndexes adds indexes that struct tags cannot express, such as those on
// the implicit many-to-many join tables.
func AddIndexes(db *gorm.DB) error {
	log := logging.Component("database")

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Reverse lookups on join tables
		{"card_assignees", "idx_card_assignees_user_id", "user_id"},
		{"card_labels", "idx_card_labels_label_id", "label_id"},
		{"team_projects", "idx_team_projects_project_id", "project_id"},

		// Admin list ordering
		{"cards", "idx_cards_created_at", "created_at"},
		{"comments", "idx_comments_created_at", "created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("Created index")
	}

	return nil
}
