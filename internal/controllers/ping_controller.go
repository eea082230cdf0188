package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingController проверка работоспособности сервиса и его хранилища.
type PingController struct {
	conn ConnectionChecker
}

func NewPingController(conn ConnectionChecker) *PingController {
	return &PingController{conn: conn}
}

// Ping обрабатывает GET /ping: 200 "pong" если хранилище доступно, иначе 500.
func (c *PingController) Ping(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), DefaultRequestTimeout)
	defer cancel()

	if err := c.conn.CheckConnection(pingCtx); err != nil {
		respondError(ctx, "ping", err)
		return
	}
	ctx.String(http.StatusOK, "pong")
}
