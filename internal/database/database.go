package database

import (
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/logging"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Open returns a gorm handle for the configured driver without touching the global
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.GormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Connect(cfg *config.Config) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}
	DB = db

	log := logging.Component("database")
	log.Info().Str("driver", cfg.DBDriver).Msg("Database connection established")
	return nil
}

func Migrate() error {
	log := logging.Component("database")
	log.Info().Msg("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Column{},
		&models.Label{},
		&models.Card{},
		&models.Comment{},
		&models.Project{},
		&models.Role{},
		&models.Team{},
		&models.Membership{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(DB); err != nil {
		return err
	}
	log.Info().Msg("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
