package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/kanban-board-api/internal/database"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
)

// Health reports ok when the database answers a ping
func Health(c *gin.Context) {
	db := database.GetDB()
	if db == nil {
		apierrors.ServiceUnavailable(c, "Database not connected")
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		log.Warn().Err(err).Msg("health check failed")
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
