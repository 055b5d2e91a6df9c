package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/geocoder89/hallulies/internal/auth"
	"github.com/geocoder89/hallulies/internal/domain/user"
	"github.com/geocoder89/hallulies/internal/http/middlewares"
	"github.com/geocoder89/hallulies/internal/security"
	"github.com/gin-gonic/gin"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	Create(ctx context.Context, username, email, hash, role string) (user.User, error)
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

type AuthHandler struct {
	users  UserStore
	tokens TokenIssuer
	log    *slog.Logger
}

func NewAuthHandler(users UserStore, tokens TokenIssuer, log *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log}
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSONRequired(ctx, &req, "Email and password required") {
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	found, err := h.users.GetByEmail(cctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnauthorized(ctx, CodeInvalidCredentials, "Invalid credentials")
			return
		}
		RespondInternal(ctx, h.log, "auth.login", err)
		return
	}

	if err := security.CheckPassword(found.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, CodeInvalidCredentials, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(auth.Identity{
		UserID:   found.ID,
		Username: found.Username,
		Email:    found.Email,
		Role:     found.Role,
	})
	if err != nil {
		RespondInternal(ctx, h.log, "auth.issue_token", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  found.Public(),
	})
}

// Register creates a guest account. Admins are only ever seeded.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondInternal(ctx, h.log, "auth.hash_password", err)
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	u, err := h.users.Create(cctx, strings.TrimSpace(req.Username), user.NormalizeEmail(req.Email), hash, auth.RoleUser)
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			RespondConflict(ctx, "Username or email already registered")
			return
		}
		RespondInternal(ctx, h.log, "auth.register", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": u.ID,
	})
}

func (h *AuthHandler) Profile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "missing_auth", "Authorization header required")
		return
	}

	cctx, cancel := requestContext(ctx)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, h.log, "auth.profile", err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}
