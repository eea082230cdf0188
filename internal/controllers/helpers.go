package controllers

import (
	"net/url"
	"strings"
	"time"

	"github.com/fsdevblog/linkly/internal/controllers/middlewares"
	"github.com/fsdevblog/linkly/internal/models"
	"github.com/fsdevblog/linkly/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// isJSONRequest Определяет тип запроса (json или нет) по заголовку Content-Type.
func isJSONRequest(ctx *gin.Context) bool {
	ct := ctx.Request.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/json")
}

// baseURLFor возвращает базовый адрес коротких ссылок: из конфига, либо Scheme://Host текущего запроса.
func baseURLFor(ctx *gin.Context, configured *url.URL) *url.URL {
	if configured != nil {
		return configured
	}
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := ctx.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return &url.URL{Scheme: scheme, Host: ctx.Request.Host}
}

// mustIdentity достает личность, положенную RequireIdentity. Без нее обработчик не вызывается.
func mustIdentity(ctx *gin.Context) (*models.Identity, bool) {
	identity, ok := middlewares.GetIdentity(ctx)
	if !ok {
		respondError(ctx, "identity", services.ErrMissingToken)
		return nil, false
	}
	return identity, true
}
