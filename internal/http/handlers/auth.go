package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/domain/user"
	"github.com/prestigebuild/siteapi/internal/http/middlewares"
	"github.com/prestigebuild/siteapi/internal/security"
)

type UsersRepo interface {
	Create(ctx context.Context, username, email, passwordHash, role string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

type TokenIssuer interface {
	GenerateToken(userID, username, role string) (string, error)
}

type AuthHandler struct {
	repo   UsersRepo
	tokens TokenIssuer
	logger *slog.Logger
}

func NewAuthHandler(repo UsersRepo, tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=60,alphanum"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=128"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.repo.GetByUsername(cctx, req.Username)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Invalid username or password")
			return
		}
		RespondInternal(ctx, "Could not sign in")
		return
	}

	if !u.IsActive {
		RespondUnAuthorized(ctx, "account_disabled", "This account has been deactivated")
		return
	}

	if err := security.CheckPassword(u.PasswordHash, req.Password); err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid username or password")
		return
	}

	token, err := h.tokens.GenerateToken(u.ID.Hex(), u.Username, u.Role)

	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "token generation failed", "error", err)
		RespondInternal(ctx, "Could not sign in")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  u,
	})
}

// Register creates an admin account. Deployments that don't want open
// registration bootstrap with the create-admin command and block the route
// at the edge.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not register user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.repo.Create(cctx, req.Username, req.Email, hash, "admin")

	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			RespondConflict(ctx, "username_taken", "Username already in use")
			return
		}
		if errors.Is(err, user.ErrEmailTaken) {
			RespondConflict(ctx, "email_taken", "Email already in use")
			return
		}
		RespondInternal(ctx, "Could not register user")
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.repo.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnAuthorized(ctx, "unauthorized", "Account no longer exists")
			return
		}
		RespondInternal(ctx, "Could not load profile")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// Logout is a formality: tokens are stateless so the client just drops its
// copy. The endpoint exists so the frontend has something to call.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) ChangePassword(ctx *gin.Context) {
	var req ChangePasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.repo.GetByID(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not change password")
		return
	}

	if err := security.CheckPassword(u.PasswordHash, req.CurrentPassword); err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Current password is incorrect")
		return
	}

	hash, err := security.HashPassword(req.NewPassword)

	if err != nil {
		RespondInternal(ctx, "Could not change password")
		return
	}

	err = h.repo.UpdatePassword(cctx, userID, hash)

	if err != nil {
		RespondInternal(ctx, "Could not change password")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
