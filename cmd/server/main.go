// Command server runs the kanban board API and its admin console.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-board-api/internal/config"
	"github.com/yukikurage/kanban-board-api/internal/database"
	"github.com/yukikurage/kanban-board-api/internal/logging"
	"github.com/yukikurage/kanban-board-api/internal/router"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Kanban board REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createUserCmd)
}

// setup loads configuration, configures logging and connects to the database
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := database.Connect(cfg); err != nil {
		log.Error().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		return err
	}

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Info().Msg("OPENAI_API_KEY not set, card suggestions disabled")
	}

	engine, err := router.New(router.Options{
		Config: cfg,
		DB:     database.GetDB(),
		AI:     aiService,
	})
	if err != nil {
		return err
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("prefix", cfg.APIPrefix).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
