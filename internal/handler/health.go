package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Check GET /health — degraded dependencies report as such but the endpoint
// still answers 200 while the process itself is alive.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	dbStatus := "ok"
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "down"
		}
	}
	status["database"] = dbStatus

	redisStatus := "ok"
	if h.rdb != nil {
		if h.rdb.Ping(ctx).Err() != nil {
			redisStatus = "down"
		}
	} else {
		redisStatus = "disabled"
	}
	status["redis"] = redisStatus

	if dbStatus == "down" {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}
