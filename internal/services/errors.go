package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/validation"
)

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrLabelNotFound   = errors.New("label not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ValidationError carries per-field messages for a rejected input
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Has reports whether field already has a message
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// OrNil returns e when it holds messages and nil otherwise
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func invalidPK(id uint64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// cleanText trims value and checks it is non-blank and at most max characters
// (no limit when max is 0).
func cleanText(errs *ValidationError, field, value string, max int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, "This field may not be blank.")
		return value
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		errs.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
	return value
}

func checkColor(errs *ValidationError, field, value string) {
	if !validation.IsColor(value) {
		errs.Add(field, "Enter a valid color.")
	}
}

// checkUsers records a field error for the first id that is not a user
func checkUsers(errs *ValidationError, users repository.UserRepository, field string, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := users.FindByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to look up users: %w", err)
	}
	exists := make(map[uint64]bool, len(found))
	for _, u := range found {
		exists[u.ID] = true
	}
	for _, id := range ids {
		if !exists[id] {
			errs.Add(field, invalidPK(id))
			break
		}
	}
	return nil
}

// uniqueIDs drops duplicates, keeping first occurrences. nil stays nil.
func uniqueIDs(ids []uint64) []uint64 {
	if ids == nil {
		return nil
	}
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
