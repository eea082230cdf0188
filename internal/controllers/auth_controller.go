package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthController обрабатывает регистрацию и вход.
type AuthController struct {
	auth Authenticator
}

func NewAuthController(auth Authenticator) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// Register обрабатывает POST /auth/register.
//
// Возвращает:
//   - HTTP 201 Created с {"message": ...}
//   - HTTP 400 Bad Request если email занят или данные некорректны
func (a *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, "register", fmt.Errorf("%w: %s", services.ErrInvalidInput, err.Error()))
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	_, err := a.auth.Register(reqCtx, services.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		respondError(ctx, "register", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login обрабатывает POST /auth/login.
//
// Возвращает:
//   - HTTP 200 OK с токеном и данными пользователя
//   - HTTP 400 Bad Request при неверной паре email/пароль
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, "login", fmt.Errorf("%w: %s", services.ErrInvalidInput, err.Error()))
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	token, user, err := a.auth.Login(reqCtx, req.Email, req.Password)
	if err != nil {
		respondError(ctx, "login", err)
		return
	}
	ctx.JSON(http.StatusOK, loginResponse{Token: token, User: user.Summary()})
}

// Me обрабатывает GET /auth/me.
func (a *AuthController) Me(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	user, err := a.auth.Me(reqCtx, identity)
	if err != nil {
		respondError(ctx, "me", err)
		return
	}
	ctx.JSON(http.StatusOK, user.Summary())
}
