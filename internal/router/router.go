package router

import (
	"github.com/abidalfrz/expense-tracker-webapp/internal/config"
	"github.com/abidalfrz/expense-tracker-webapp/internal/handler"
	"github.com/abidalfrz/expense-tracker-webapp/internal/middleware"
	"github.com/abidalfrz/expense-tracker-webapp/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine, templates, middleware and all routes.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// cookie session carrying flash messages across redirects
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Auth.SecureCookie,
	})
	r.Use(sessions.Sessions(cfg.Session.CookieName, store))

	r.LoadHTMLGlob(cfg.Server.TemplateGlob)

	// services
	users := service.NewUserService(db, cfg.Auth.BcryptCost)
	sessionsSvc := service.NewSessionService(db, cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.ExpireHours)
	categories := service.NewCategoryService(db)
	expenses := service.NewExpenseService(db)
	reports := service.NewReportService(expenses, categories)

	cookieMaxAge := int(sessionsSvc.TTL.Seconds())

	authHandler := handler.NewAuthHandler(users, sessionsSvc, cfg.Auth.CookieName, cookieMaxAge, cfg.Auth.SecureCookie)
	expenseHandler := handler.NewExpenseHandler(expenses, categories, reports)
	categoryHandler := handler.NewCategoryHandler(categories)
	exportHandler := handler.NewExportHandler(expenses, categories)

	// public routes
	r.GET("/", authHandler.Landing)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)

	// routes behind the session guard
	protected := r.Group("")
	protected.Use(
		middleware.RequireAuth(sessionsSvc, cfg.Auth.CookieName, cfg.Auth.SecureCookie),
		middleware.Audit(db),
	)

	protected.GET("/logout", authHandler.Logout)
	protected.GET("/dashboard", expenseHandler.Dashboard)

	protected.GET("/add_expense", expenseHandler.AddExpenseForm)
	protected.POST("/add_expense", expenseHandler.AddExpense)
	protected.GET("/edit_expense/:id", expenseHandler.EditExpenseForm)
	protected.POST("/edit_expense/:id", expenseHandler.EditExpense)
	protected.GET("/delete_expense/:id", expenseHandler.DeleteExpense)

	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/add", categoryHandler.AddForm)
	protected.POST("/categories/add", categoryHandler.Add)
	protected.GET("/categories/edit/:id", categoryHandler.EditForm)
	protected.POST("/categories/edit/:id", categoryHandler.Edit)
	protected.GET("/categories/delete/:id", categoryHandler.Delete)

	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
