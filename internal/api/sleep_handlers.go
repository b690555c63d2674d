package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/sleepdiary/internal/service"
)

func PostSleepLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateSleepLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBadRequest(c, app.Logger(), err, "Invalid JSON")
			return
		}

		if err := service.ValidateCreateSleepLogRequest(&req); err != nil {
			HandleBadRequest(c, app.Logger(), err, "Validation failed")
			return
		}

		log, err := service.CreateSleepLog(c.Request.Context(), app.SleepLogs(), app.Users(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to save sleep log")
			return
		}

		c.JSON(http.StatusCreated, log)
	}
}

func GetSleepLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		logs, err := service.GetAllSleepLogsByUserID(c.Request.Context(), app.SleepLogs(), c.Param("userId"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch sleep logs")
			return
		}

		c.JSON(http.StatusOK, logs)
	}
}

func GetLastNightSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		log, err := service.GetLastNightSleepByUserID(c.Request.Context(), app.SleepLogs(), c.Param("userId"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch last night sleep")
			return
		}
		if log == nil {
			HandleNotFound(c, app.Logger(), "last night sleep log")
			return
		}

		c.JSON(http.StatusOK, log)
	}
}

// GetLast30DayAverages always answers 200; an empty window produces the
// zero-value summary, not an error.
func GetLast30DayAverages(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		averages, err := service.GetLast30DayAverages(c.Request.Context(), app.SleepLogs(), c.Param("userId"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to compute averages")
			return
		}

		c.JSON(http.StatusOK, averages)
	}
}
