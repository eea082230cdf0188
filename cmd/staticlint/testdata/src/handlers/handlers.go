package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type response struct {
	Error string
}

type counter struct{}

func (counter) Error() int { return 0 }

func leaky(ctx *gin.Context) {
	err := errors.New("pq: connection refused")
	ctx.JSON(500, gin.H{"error": err.Error()})                  // want "error text must not be written into JSON response"
	ctx.AbortWithStatusJSON(500, response{Error: err.Error()}) // want "error text must not be written into AbortWithStatusJSON response"
	ctx.String(500, "failed: %s", err.Error())                 // want "error text must not be written into String response"
}

func safe(ctx *gin.Context) {
	ctx.JSON(500, gin.H{"error": "internal error"})
	ctx.JSON(200, gin.H{"errors": counter{}.Error()})
}
