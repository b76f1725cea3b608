package dto

import "github.com/yukikurage/kanban-board-api/internal/models"

// BoardDTO represents a board with its columns in API responses
type BoardDTO struct {
	ID        uint64      `json:"id"`
	Title     string      `json:"title"`
	CreatedBy uint64      `json:"created_by"`
	ColumnSet []ColumnDTO `json:"column_set"`
}

// ColumnDTO represents a column with its cards in API responses
type ColumnDTO struct {
	ID          uint64    `json:"id"`
	Board       uint64    `json:"board"`
	Title       string    `json:"title"`
	Position    int       `json:"position"`
	HeaderColor string    `json:"header_color"`
	CardSet     []CardDTO `json:"card_set"`
}

// ToBoardDTO converts a Board model, nested columns included when preloaded
func ToBoardDTO(board models.Board) BoardDTO {
	columns := make([]ColumnDTO, len(board.Columns))
	for i, column := range board.Columns {
		columns[i] = ToColumnDTO(column)
	}
	return BoardDTO{
		ID:        board.ID,
		Title:     board.Title,
		CreatedBy: board.CreatedByID,
		ColumnSet: columns,
	}
}

// ToBoardDTOs converts a slice of boards
func ToBoardDTOs(boards []models.Board) []BoardDTO {
	out := make([]BoardDTO, len(boards))
	for i, board := range boards {
		out[i] = ToBoardDTO(board)
	}
	return out
}

// ToColumnDTO converts a Column model, nested cards included when preloaded
func ToColumnDTO(column models.Column) ColumnDTO {
	return ColumnDTO{
		ID:          column.ID,
		Board:       column.BoardID,
		Title:       column.Title,
		Position:    column.Position,
		HeaderColor: column.HeaderColor,
		CardSet:     ToCardDTOs(column.Cards),
	}
}

// ToColumnDTOs converts a slice of columns
func ToColumnDTOs(columns []models.Column) []ColumnDTO {
	out := make([]ColumnDTO, len(columns))
	for i, column := range columns {
		out[i] = ToColumnDTO(column)
	}
	return out
}
