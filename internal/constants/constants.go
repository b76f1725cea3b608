package constants

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "user"
	ContextKeyBoard     = "board"
	ContextKeyCard      = "card"
	ContextKeyRequestID = "request_id"

	SessionCookieName     = "kanban_admin_session"
	SessionKeyAdminUserID = "admin_user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Field limits and defaults mirrored by the models and request bindings
const (
	MaxBoardTitleLength  = 255
	MaxColumnTitleLength = 32
	MaxLabelTitleLength  = 32
	MaxCardTitleLength   = 255
	MaxColorLength       = 18

	DefaultColumnPosition    = 1
	DefaultColumnHeaderColor = "#00FF00"
	DefaultLabelColor        = "#FF0000"
)

const (
	MinPasswordLength   = 8
	APITokenBytes       = 20
	MaxAISuggestedCards = 20
)
