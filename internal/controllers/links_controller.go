package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fsdevblog/linkly/internal/services"
	"github.com/gin-gonic/gin"
)

const maxShortenBodyBytes = 1 << 16

// LinksController создание, список и редирект коротких ссылок.
type LinksController struct {
	links   LinkShortener
	baseURL *url.URL
}

func NewLinksController(links LinkShortener, baseURL *url.URL) *LinksController {
	return &LinksController{
		links:   links,
		baseURL: baseURL,
	}
}

type shortenRequest struct {
	OrigURL string `json:"origUrl"`
	URL     string `json:"url"`
}

// Shorten обрабатывает POST /shorten. Принимает json {"origUrl": "..."} либо ссылку телом запроса.
//
// Возвращает:
//   - HTTP 201 Created для новой ссылки
//   - HTTP 200 OK если у пользователя уже есть ссылка на этот url
//   - HTTP 400 Bad Request для некорректного url
func (l *LinksController) Shorten(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	rawURL, err := readShortenURL(ctx)
	if err != nil {
		respondError(ctx, "shorten", fmt.Errorf("%w: %s", services.ErrInvalidInput, err.Error()))
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, created, err := l.links.Shorten(reqCtx, identity, rawURL, baseURLFor(ctx, l.baseURL))
	if err != nil {
		respondError(ctx, "shorten", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, link)
}

func readShortenURL(ctx *gin.Context) (string, error) {
	if isJSONRequest(ctx) {
		var req shortenRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			return "", fmt.Errorf("bind json: %w", err)
		}
		if req.OrigURL != "" {
			return req.OrigURL, nil
		}
		return req.URL, nil
	}

	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxShortenBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// ListOwn обрабатывает GET /my.
func (l *LinksController) ListOwn(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	links, err := l.links.ListOwn(reqCtx, identity)
	if err != nil {
		respondError(ctx, "list own", err)
		return
	}
	ctx.JSON(http.StatusOK, links)
}

// ListAll обрабатывает GET /all. Только для администратора.
func (l *LinksController) ListAll(ctx *gin.Context) {
	identity, ok := mustIdentity(ctx)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	links, err := l.links.ListAll(reqCtx, identity)
	if err != nil {
		respondError(ctx, "list all", err)
		return
	}
	ctx.JSON(http.StatusOK, links)
}

// Redirect обрабатывает GET /:code и засчитывает переход.
//
// Возвращает:
//   - HTTP 302 Found с Location исходной ссылки
//   - HTTP 404 Not Found для неизвестного кода
func (l *LinksController) Redirect(ctx *gin.Context) {
	code := ctx.Param("code")

	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	link, err := l.links.Resolve(reqCtx, code)
	if err != nil {
		respondError(ctx, "redirect", err)
		return
	}
	ctx.Redirect(http.StatusFound, link.TargetURL)
}
