package middleware

import (
	"strings"

	"github.com/abidalfrz/expense-tracker-webapp/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxActionLen = 1024

// Audit records every authenticated request after it has been handled.
// Anonymous requests are skipped.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		v, ok := c.Get(CurrentUserKey)
		if !ok {
			return
		}
		user, ok := v.(*models.User)
		if !ok || user == nil {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if summary := formSummary(c); summary != "" {
			action += " " + summary
		}
		if len(action) > maxActionLen {
			action = action[:maxActionLen]
		}

		entry := models.AuditLog{
			UserID:    &user.ID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}

// formSummary renders submitted form fields, leaving credentials out.
func formSummary(c *gin.Context) string {
	if c.Request.PostForm == nil {
		_ = c.Request.ParseForm()
	}
	var parts []string
	for key, vals := range c.Request.PostForm {
		if key == "password" || len(vals) == 0 {
			continue
		}
		parts = append(parts, key+"="+vals[0])
	}
	return strings.Join(parts, " ")
}
