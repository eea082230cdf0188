package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/linkly/internal/services"
	"github.com/gin-gonic/gin"
)

// Ошибки.
var (
	ErrRecordNotFound = errors.New("record not found") // Запись не найдена
	ErrInternal       = errors.New("internal error")   // Прочая ошибка
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError пишет ответ с кодом, соответствующим ошибке сервиса. Текст внутренних ошибок
// наружу не попадает, он уходит в лог через ctx.Error.
func respondError(ctx *gin.Context, op string, err error) {
	_ = ctx.Error(fmt.Errorf("%s: %w", op, err))

	status, message := http.StatusInternalServerError, ErrInternal.Error()
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, message = http.StatusBadRequest, "invalid input"
	case errors.Is(err, services.ErrDuplicateIdentity):
		status, message = http.StatusBadRequest, "user already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, message = http.StatusBadRequest, "invalid credentials"
	case errors.Is(err, services.ErrTokenExpired):
		status, message = http.StatusUnauthorized, "token has expired"
	case errors.Is(err, services.ErrMissingToken),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrIdentityNotFound):
		status, message = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, services.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, services.ErrRecordNotFound):
		status, message = http.StatusNotFound, ErrRecordNotFound.Error()
	case errors.Is(err, services.ErrAllocationExhausted):
		status, message = http.StatusServiceUnavailable, "could not allocate short code, try again"
	}
	ctx.AbortWithStatusJSON(status, errorResponse{Error: message})
}
