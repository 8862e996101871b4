package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/abidalfrz/expense-tracker-webapp/internal/service"
	"github.com/abidalfrz/expense-tracker-webapp/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Users        *service.UserService
	Sessions     *service.SessionService
	CookieName   string
	CookieMaxAge int
	SecureCookie bool
}

func NewAuthHandler(users *service.UserService, sessions *service.SessionService, cookieName string, cookieMaxAge int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		Users:        users,
		Sessions:     sessions,
		CookieName:   cookieName,
		CookieMaxAge: cookieMaxAge,
		SecureCookie: secureCookie,
	}
}

// Landing renders the login view at /.
func (h *AuthHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page(c, gin.H{"title": "Expense Tracker - Login"}))
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", page(c, gin.H{"title": "Expense Tracker - Register"}))
}

// Register creates an account and seeds the default categories.
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if _, err := h.Users.Register(username, password); err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			util.Flash(c, util.FlashError, "Username already exists!")
		case errors.Is(err, service.ErrValidation):
			util.Flash(c, util.FlashError, "Username and password are required!")
		default:
			log.Printf("register: %v", err)
			util.Flash(c, util.FlashError, "Registration failed. Please try again.")
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	util.Flash(c, util.FlashSuccess, "Registration successful. Please log in!")
	c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page(c, gin.H{"title": "Expense Tracker - Login"}))
}

// Login authenticates the user and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.Users.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("login: %v", err)
		}
		util.Flash(c, util.FlashError, "Invalid username or password!")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := h.Sessions.Create(user.ID)
	if err != nil {
		log.Printf("create session: %v", err)
		util.Flash(c, util.FlashError, "Login failed. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.SetCookie(h.CookieName, token, h.CookieMaxAge, "/", "", h.SecureCookie, true)
	util.Flash(c, util.FlashSuccess, "Login successful!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout revokes the session and clears the cookie. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.CookieName); err == nil && token != "" {
		if err := h.Sessions.Revoke(token); err != nil {
			log.Printf("revoke session: %v", err)
		}
	}
	c.SetCookie(h.CookieName, "", -1, "/", "", h.SecureCookie, true)
	util.Flash(c, util.FlashSuccess, "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}
