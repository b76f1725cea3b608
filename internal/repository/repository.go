package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/utils"
)

// ListFilter holds the admin console search and paging options
type ListFilter struct {
	Query      string
	Pagination utils.PaginationParams
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByToken finds a user by API token
	FindByToken(token string) (*models.User, error)

	// FindByIDs returns the users among ids that exist, ordered by ID
	FindByIDs(ids []uint64) ([]models.User, error)

	// Count counts all users
	Count() (int64, error)
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// Create creates a new board
	Create(board *models.Board) error

	// FindByID finds a board without relations
	FindByID(id uint64) (*models.Board, error)

	// FindWithColumns finds a board with its columns, cards and their relations
	FindWithColumns(id uint64) (*models.Board, error)

	// ListWithColumns lists all boards with nested columns and cards
	ListWithColumns() ([]models.Board, error)

	// Search lists boards for the admin console
	Search(filter ListFilter) ([]models.Board, int64, error)

	// Update saves a board's own fields
	Update(board *models.Board) error

	// Delete deletes a board and everything under it
	Delete(id uint64) error

	// Count counts all boards
	Count() (int64, error)
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	// Create creates a new column
	Create(column *models.Column) error

	// FindByID finds a column with its cards
	FindByID(id uint64) (*models.Column, error)

	// FindByBoardAndPosition finds the first column at position on a board
	FindByBoardAndPosition(boardID uint64, position int) (*models.Column, error)

	// FindInBoard finds a column by ID on a board, without relations
	FindInBoard(boardID, id uint64) (*models.Column, error)

	// ListByBoard lists the columns of a board with nested cards
	ListByBoard(boardID uint64) ([]models.Column, error)

	// Search lists columns for the admin console
	Search(filter ListFilter) ([]models.Column, int64, error)

	// Update saves a column's own fields
	Update(column *models.Column) error

	// Delete deletes a column and its cards
	Delete(id uint64) error

	// Count counts all columns
	Count() (int64, error)
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label by ID
	FindByID(id uint64) (*models.Label, error)

	// FindInBoard finds a label by ID on a board
	FindInBoard(boardID, id uint64) (*models.Label, error)

	// FindByIDsInBoard returns the labels among ids that belong to a board
	FindByIDsInBoard(boardID uint64, ids []uint64) ([]models.Label, error)

	// ListByBoard lists the labels of a board
	ListByBoard(boardID uint64) ([]models.Label, error)

	// Search lists labels for the admin console
	Search(filter ListFilter) ([]models.Label, int64, error)

	// Update saves a label
	Update(label *models.Label) error

	// Delete deletes a label and detaches it from cards
	Delete(id uint64) error

	// Count counts all labels
	Count() (int64, error)
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	// Create creates a card and its label and assignee links
	Create(card *models.Card, labelIDs, assigneeIDs []uint64) error

	// FindByID finds a card with its relations
	FindByID(id uint64) (*models.Card, error)

	// FindInBoard finds a card by ID on a board with its relations
	FindInBoard(boardID, id uint64) (*models.Card, error)

	// ListByBoard lists the cards of a board with their relations
	ListByBoard(boardID uint64) ([]models.Card, error)

	// Search lists cards for the admin console
	Search(filter ListFilter) ([]models.Card, int64, error)

	// Update saves a card and replaces its label and assignee links
	Update(card *models.Card, labelIDs, assigneeIDs []uint64) error

	// Delete deletes a card, its comments and links
	Delete(id uint64) error

	// Count counts all cards
	Count() (int64, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// FindInCard finds a comment by ID on a card
	FindInCard(cardID, id uint64) (*models.Comment, error)

	// ListByCard lists the comments of a card
	ListByCard(cardID uint64) ([]models.Comment, error)

	// Search lists comments for the admin console
	Search(filter ListFilter) ([]models.Comment, int64, error)

	// Update saves a comment
	Update(comment *models.Comment) error

	// Delete deletes a comment
	Delete(id uint64) error

	// Count counts all comments
	Count() (int64, error)
}

// TeamRepository defines read access to teams and projects
type TeamRepository interface {
	// SearchTeams lists teams with memberships
	SearchTeams(filter ListFilter) ([]models.Team, int64, error)

	// SearchProjects lists projects
	SearchProjects(filter ListFilter) ([]models.Project, int64, error)

	// CountTeams counts all teams
	CountTeams() (int64, error)

	// CountProjects counts all projects
	CountProjects() (int64, error)
}
