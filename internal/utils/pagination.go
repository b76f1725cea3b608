package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata shown by list pages
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// NewPaginationResponse builds the metadata for a page of total rows
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	pages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		pages++
	}
	return PaginationResponse{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: pages,
	}
}

// HasNext reports whether a page follows the current one
func (p PaginationResponse) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether a page precedes the current one
func (p PaginationResponse) HasPrev() bool {
	return p.Page > 1
}
