package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fencyatf/Products-Backend/internal/account"
	"github.com/fencyatf/Products-Backend/internal/database"
	"github.com/fencyatf/Products-Backend/internal/middleware"
	"github.com/fencyatf/Products-Backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves signup, login and the current-user lookup.
type AuthHandler struct {
	Creds    *account.CredentialStore
	Sessions *account.SessionIssuer
	Log      *slog.Logger
}

// NewAuthHandler builds the signup and login handlers.
func NewAuthHandler(creds *account.CredentialStore, sessions *account.SessionIssuer, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Creds:    creds,
		Sessions: sessions,
		Log:      log,
	}
}

// ---------- signup ----------

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.KindBadRequest, "email and password are required")
		return
	}

	user, err := h.Creds.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidPassword):
			util.Error(c, http.StatusBadRequest, util.KindBadRequest, "password must be at most 72 bytes")
		case errors.Is(err, account.ErrHashing):
			h.Log.ErrorContext(c.Request.Context(), "hash password", "error", err)
			util.Error(c, http.StatusInternalServerError, util.KindHashing, "Internal server error")
		case errors.Is(err, database.ErrDuplicate):
			util.Error(c, http.StatusBadRequest, util.KindPersistence, "email already registered")
		default:
			h.Log.ErrorContext(c.Request.Context(), "create user", "error", err)
			util.Error(c, http.StatusBadRequest, util.KindPersistence, "could not create user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login answers bad credentials with 500, which existing clients rely on.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.KindBadRequest, "email and password are required")
		return
	}

	token, err := h.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrAuth) {
			h.Log.InfoContext(c.Request.Context(), "login rejected", "email", req.Email, "reason", err.Error())
			util.Error(c, http.StatusInternalServerError, util.KindAuth, err.Error())
			return
		}
		h.Log.ErrorContext(c.Request.Context(), "login", "error", err)
		util.Error(c, http.StatusBadRequest, util.KindPersistence, "login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// ---------- current user ----------

// Me returns the account behind the presented token (requires AuthMiddleware).
func (h *AuthHandler) Me(c *gin.Context) {
	email, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.KindToken, "Token not provided")
		return
	}

	user, err := h.Creds.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.KindNotFound, "user not found")
			return
		}
		h.Log.ErrorContext(c.Request.Context(), "find user", "error", err)
		util.Error(c, http.StatusBadRequest, util.KindPersistence, "could not load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
