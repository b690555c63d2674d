package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/sleepdiary/internal"
	"github.com/yourname/sleepdiary/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Users() storage.UserRepository
	SleepLogs() storage.SleepLogRepository
}

// NewRouter wires the full HTTP surface onto a fresh engine.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.POST("/users", PostUser(app))
	r.GET("/users/:id", GetUser(app))
	r.GET("/users", GetUsers(app))

	r.POST("/sleep-logs", PostSleepLog(app))
	r.GET("/sleep-logs/users/:userId", GetSleepLogs(app))
	r.GET("/sleep-logs/users/:userId/last-night", GetLastNightSleep(app))
	r.GET("/sleep-logs/users/:userId/averages/30-day", GetLast30DayAverages(app))

	return r
}
