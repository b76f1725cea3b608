package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// SearchTeams lists teams whose name contains the query
func (r *GormTeamRepository) SearchTeams(filter ListFilter) ([]models.Team, int64, error) {
	teams := []models.Team{}
	query := r.db.Model(&models.Team{}).Scopes(database.TitleSearch("name", filter.Query))
	total, err := findPage(query, filter, &teams, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Memberships.User").Preload("Memberships.Role").Preload("Projects").Order("id")
	})
	return teams, total, err
}

// SearchProjects lists projects whose title contains the query
func (r *GormTeamRepository) SearchProjects(filter ListFilter) ([]models.Project, int64, error) {
	projects := []models.Project{}
	query := r.db.Model(&models.Project{}).Scopes(database.TitleSearch("title", filter.Query))
	total, err := findPage(query, filter, &projects, orderByID)
	return projects, total, err
}

// CountTeams counts all teams
func (r *GormTeamRepository) CountTeams() (int64, error) {
	var count int64
	err := r.db.Model(&models.Team{}).Count(&count).Error
	return count, err
}

// CountProjects counts all projects
func (r *GormTeamRepository) CountProjects() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}
