package dto

import "github.com/yukikurage/kanban-board-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID    uint64 `json:"id"`
	Board uint64 `json:"board"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64     `json:"id"`
	Card      uint64     `json:"card"`
	Message   string     `json:"message"`
	CreatedAt Timestamp  `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
	CreatedBy uint64     `json:"created_by"`
	UpdatedBy *uint64    `json:"updated_by"`
}

// CardDTO is the read representation of a card. Assignees and labels are
// nested objects.
type CardDTO struct {
	ID          uint64       `json:"id"`
	Board       uint64       `json:"board"`
	Column      *uint64      `json:"column"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CreatedAt   Timestamp    `json:"created_at"`
	UpdatedAt   *Timestamp   `json:"updated_at"`
	CreatedBy   uint64       `json:"created_by"`
	Assignees   []UserDTO    `json:"assignees"`
	Labels      []LabelDTO   `json:"labels"`
	CommentSet  []CommentDTO `json:"comment_set"`
}

// CardWriteDTO is returned from create and replace. Labels are given as ids,
// mirroring the request body; assignees stay nested.
type CardWriteDTO struct {
	ID          uint64       `json:"id"`
	Board       uint64       `json:"board"`
	Column      *uint64      `json:"column"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CreatedAt   Timestamp    `json:"created_at"`
	UpdatedAt   *Timestamp   `json:"updated_at"`
	CreatedBy   uint64       `json:"created_by"`
	Assignees   []UserDTO    `json:"assignees"`
	Labels      []uint64     `json:"labels"`
	CommentSet  []CommentDTO `json:"comment_set"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:    label.ID,
		Board: label.BoardID,
		Title: label.Title,
		Color: label.Color,
	}
}

// ToLabelDTOs converts a slice of labels
func ToLabelDTOs(labels []models.Label) []LabelDTO {
	out := make([]LabelDTO, len(labels))
	for i, label := range labels {
		out[i] = ToLabelDTO(label)
	}
	return out
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Card:      comment.CardID,
		Message:   comment.Message,
		CreatedAt: NewTimestamp(comment.CreatedAt),
		UpdatedAt: TimestampPtr(comment.UpdatedAt),
		CreatedBy: comment.CreatedByID,
		UpdatedBy: comment.UpdatedByID,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		out[i] = ToCommentDTO(comment)
	}
	return out
}

// ToCardDTO converts a Card model with preloaded relations to CardDTO
func ToCardDTO(card models.Card) CardDTO {
	assignees := make([]UserDTO, len(card.Assignees))
	for i, user := range card.Assignees {
		assignees[i] = ToUserDTO(user)
	}
	return CardDTO{
		ID:          card.ID,
		Board:       card.BoardID,
		Column:      card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		CreatedAt:   NewTimestamp(card.CreatedAt),
		UpdatedAt:   TimestampPtr(card.UpdatedAt),
		CreatedBy:   card.CreatedByID,
		Assignees:   assignees,
		Labels:      ToLabelDTOs(card.Labels),
		CommentSet:  ToCommentDTOs(card.Comments),
	}
}

// ToCardDTOs converts a slice of cards
func ToCardDTOs(cards []models.Card) []CardDTO {
	out := make([]CardDTO, len(cards))
	for i, card := range cards {
		out[i] = ToCardDTO(card)
	}
	return out
}

// ToCardWriteDTO converts a Card model to CardWriteDTO
func ToCardWriteDTO(card models.Card) CardWriteDTO {
	assignees := make([]UserDTO, len(card.Assignees))
	for i, user := range card.Assignees {
		assignees[i] = ToUserDTO(user)
	}
	labels := make([]uint64, len(card.Labels))
	for i, label := range card.Labels {
		labels[i] = label.ID
	}
	return CardWriteDTO{
		ID:          card.ID,
		Board:       card.BoardID,
		Column:      card.ColumnID,
		Title:       card.Title,
		Description: card.Description,
		CreatedAt:   NewTimestamp(card.CreatedAt),
		UpdatedAt:   TimestampPtr(card.UpdatedAt),
		CreatedBy:   card.CreatedByID,
		Assignees:   assignees,
		Labels:      labels,
		CommentSet:  ToCommentDTOs(card.Comments),
	}
}
