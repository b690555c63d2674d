package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/sleepdiary/internal"
	"github.com/yourname/sleepdiary/internal/response"
)

// HandleError translates a service error into the error body. AppErrors
// carry their own status; anything else is a 500 with the fallback
// message prefixed.
func HandleError(c *gin.Context, logger internal.Logger, err error, fallback string) {
	requestID := c.GetString("request_id")

	status := http.StatusInternalServerError
	msg := fallback + ": " + err.Error()
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		status = appErr.Code
		msg = appErr.Message
	}

	logger.Errorf("[request_id=%s] %s", requestID, msg)
	c.JSON(status, response.New(status, msg, c.Request.URL.Path))
}

// HandleBadRequest wraps binding and validation failures so they carry
// a 400 with the offending detail.
func HandleBadRequest(c *gin.Context, logger internal.Logger, err error, msg string) {
	HandleError(c, logger, internal.NewInvalidArgument(msg+": "+err.Error()), msg)
}

// HandleNotFound emits a bodyless 404 for direct-lookup misses.
func HandleNotFound(c *gin.Context, logger internal.Logger, what string) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] %s not found", requestID, what)
	c.Status(http.StatusNotFound)
}
