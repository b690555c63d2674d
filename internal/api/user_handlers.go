package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/sleepdiary/internal/service"
)

func PostUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBadRequest(c, app.Logger(), err, "Invalid JSON")
			return
		}

		if err := service.ValidateCreateUserRequest(&req); err != nil {
			HandleBadRequest(c, app.Logger(), err, "Validation failed")
			return
		}

		user, err := service.CreateUser(c.Request.Context(), app.Users(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to create user")
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

func GetUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := service.GetUserByID(c.Request.Context(), app.Users(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch user")
			return
		}
		if user == nil {
			HandleNotFound(c, app.Logger(), "user")
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func GetUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := service.GetAllUsers(c.Request.Context(), app.Users())
		if err != nil {
			HandleError(c, app.Logger(), err, "Failed to fetch users")
			return
		}

		c.JSON(http.StatusOK, users)
	}
}
