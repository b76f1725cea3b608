package dto

import "encoding/json"

// Request bodies. Required fields are pointers so that binding can tell a
// missing field from a zero value; optional fields left nil keep the stored
// value on replace.

type BoardRequest struct {
	Title     *string `json:"title" binding:"required,max=255"`
	CreatedBy *uint64 `json:"created_by" binding:"required"`
}

type ColumnRequest struct {
	Title       *string `json:"title" binding:"required,max=32"`
	Position    *int    `json:"position"`
	HeaderColor *string `json:"header_color" binding:"omitnil,max=18,color"`
}

type LabelRequest struct {
	Title *string `json:"title" binding:"required,max=32"`
	Color *string `json:"color" binding:"omitnil,max=18,color"`
}

type CardRequest struct {
	Title       *string          `json:"title" binding:"required,max=255"`
	Description *string          `json:"description" binding:"required"`
	CreatedBy   *uint64          `json:"created_by" binding:"required"`
	Column      Nullable[uint64] `json:"column"`
	Labels      *[]uint64        `json:"labels" binding:"required"`
	Assignees   []uint64         `json:"assignees"`
}

type CommentRequest struct {
	Message   *string          `json:"message" binding:"required"`
	UpdatedAt Nullable[string] `json:"updated_at"`
	CreatedBy *uint64          `json:"created_by" binding:"required"`
	UpdatedBy Nullable[uint64] `json:"updated_by"`
}

// SuggestCardsRequest carries free text to turn into card drafts
type SuggestCardsRequest struct {
	Text string `json:"text" binding:"required,max=8000"`
}

// SuggestedCardDTO is a card draft proposed by the assistant. Nothing is stored.
type SuggestedCardDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
}

// Nullable records whether a field was present in the body, and its value
// when it was not null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf returns a present, non-null value
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
