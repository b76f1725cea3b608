// Package router assembles the gin engine: REST routes under the API
// prefix, the health check and the admin console.
package router

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/admin"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/handlers"
	"github.com/yukikurage/kanban-board-api/internal/logging"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/validation"
	"gorm.io/gorm"
)

// Options carries the dependencies built outside the router. AI and
// SessionStore may be nil; a nil store is built from Config.
type Options struct {
	Config       *config.Config
	DB           *gorm.DB
	AI           *services.AIService
	SessionStore sessions.Store
}

// New builds the engine with every route registered
func New(opts Options) (*gin.Engine, error) {
	cfg := opts.Config
	validation.Register()

	// Initialize repositories
	repos := admin.Repositories{
		Users:    repository.NewUserRepository(opts.DB),
		Boards:   repository.NewBoardRepository(opts.DB),
		Columns:  repository.NewColumnRepository(opts.DB),
		Labels:   repository.NewLabelRepository(opts.DB),
		Cards:    repository.NewCardRepository(opts.DB),
		Comments: repository.NewCommentRepository(opts.DB),
		Teams:    repository.NewTeamRepository(opts.DB),
	}

	// Initialize services
	svc := admin.Services{
		Users:    services.NewUserService(repos.Users),
		Boards:   services.NewBoardService(repos.Boards, repos.Users),
		Columns:  services.NewColumnService(repos.Columns),
		Labels:   services.NewLabelService(repos.Labels),
		Cards:    services.NewCardService(repos.Cards, repos.Columns, repos.Labels, repos.Users, opts.AI),
		Comments: services.NewCommentService(repos.Comments, repos.Users),
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Users)
	boardHandler := handlers.NewBoardHandler(svc.Boards)
	columnHandler := handlers.NewColumnHandler(svc.Columns)
	labelHandler := handlers.NewLabelHandler(svc.Labels)
	cardHandler := handlers.NewCardHandler(svc.Cards)
	commentHandler := handlers.NewCommentHandler(svc.Comments)

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger())

	// Health check endpoint
	r.GET("/health", handlers.Health)

	api := r.Group(cfg.APIPrefix)
	api.POST("/api-token-auth/", authHandler.ObtainToken)

	authed := api.Group("", middleware.TokenAuth(svc.Users, cfg.RequireAuth))
	{
		authed.GET("/me/", authHandler.GetCurrentUser)

		authed.GET("/boards/", boardHandler.ListBoards)
		authed.POST("/boards/", boardHandler.CreateBoard)

		board := authed.Group("/boards/:board_id", middleware.RequireBoard(svc.Boards))
		{
			board.GET("/", boardHandler.GetBoard)
			board.PUT("/", boardHandler.UpdateBoard)
			board.DELETE("/", boardHandler.DeleteBoard)

			board.GET("/columns/", columnHandler.ListColumns)
			board.POST("/columns/", columnHandler.CreateColumn)
			board.GET("/columns/:position/", columnHandler.GetColumn)
			board.PUT("/columns/:position/", columnHandler.UpdateColumn)
			board.DELETE("/columns/:position/", columnHandler.DeleteColumn)

			board.GET("/labels/", labelHandler.ListLabels)
			board.POST("/labels/", labelHandler.CreateLabel)
			board.GET("/labels/:label_id/", labelHandler.GetLabel)
			board.PUT("/labels/:label_id/", labelHandler.UpdateLabel)
			board.DELETE("/labels/:label_id/", labelHandler.DeleteLabel)

			board.GET("/cards/", cardHandler.ListCards)
			board.POST("/cards/", cardHandler.CreateCard)
			board.POST("/card-suggestions/", cardHandler.SuggestCards)

			card := board.Group("/cards/:card_id", middleware.RequireCard(svc.Cards))
			{
				card.GET("/", cardHandler.GetCard)
				card.PUT("/", cardHandler.UpdateCard)
				card.DELETE("/", cardHandler.DeleteCard)

				card.GET("/comments/", commentHandler.ListComments)
				card.POST("/comments/", commentHandler.CreateComment)
				card.GET("/comments/:comment_id/", commentHandler.GetComment)
				card.PUT("/comments/:comment_id/", commentHandler.UpdateComment)
				card.DELETE("/comments/:comment_id/", commentHandler.DeleteComment)
			}
		}
	}

	console, err := admin.New(repos, svc)
	if err != nil {
		return nil, err
	}
	store := opts.SessionStore
	if store == nil {
		store, err = admin.NewSessionStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up admin sessions: %w", err)
		}
	}
	console.Register(r, store)

	return r, nil
}
