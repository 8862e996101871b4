package handler

import (
	"github.com/abidalfrz/expense-tracker-webapp/internal/middleware"
	"github.com/abidalfrz/expense-tracker-webapp/internal/models"
	"github.com/abidalfrz/expense-tracker-webapp/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser returns the authenticated user placed in the context by
// middleware.RequireAuth, or nil on public routes.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(middleware.CurrentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// page builds the common template context: drained flash messages plus the
// current user, merged with handler-specific data.
func page(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = util.TakeFlashes(c)
	if user := currentUser(c); user != nil {
		data["user"] = user
	}
	return data
}
