package middlewares

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// gzipWriter обертка над gin.ResponseWriter для сжатия ответов в формате gzip.
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	return g.writer.Write(data) //nolint:wrapcheck
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.writer.Write([]byte(s)) //nolint:wrapcheck
}

// GzipMiddleware распаковывает gzip тела запросов и сжимает ответы для клиентов,
// приславших Accept-Encoding: gzip.
func GzipMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !decompressRequest(ctx) {
			return
		}
		if !strings.Contains(ctx.Request.Header.Get("Accept-Encoding"), "gzip") {
			ctx.Next()
			return
		}

		ctx.Header("Content-Encoding", "gzip")
		ctx.Header("Vary", "Accept-Encoding")

		gzw := gzip.NewWriter(ctx.Writer)
		ctx.Writer = &gzipWriter{ResponseWriter: ctx.Writer, writer: gzw}
		defer func() {
			if closeErr := gzw.Close(); closeErr != nil {
				_ = ctx.Error(fmt.Errorf("close gzip writer: %w", closeErr))
			}
		}()

		ctx.Next()
	}
}

// decompressRequest подменяет сжатое тело POST|PUT|PATCH запроса распакованным.
// Возвращает false, если запрос уже прерван ответом 400.
func decompressRequest(ctx *gin.Context) bool {
	if !slices.Contains([]string{http.MethodPost, http.MethodPut, http.MethodPatch}, ctx.Request.Method) {
		return true
	}
	if !strings.Contains(ctx.Request.Header.Get("Content-Encoding"), "gzip") {
		return true
	}

	gzReader, gzErr := gzip.NewReader(ctx.Request.Body)
	if gzErr != nil {
		_ = ctx.Error(fmt.Errorf("read gzip: %w", gzErr))
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed gzip body"})
		return false
	}
	defer gzReader.Close()

	bodyBytes, err := io.ReadAll(gzReader)
	if err != nil {
		_ = ctx.Error(fmt.Errorf("read gzip: %w", err))
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed gzip body"})
		return false
	}

	ctx.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
	ctx.Request.Header.Del("Content-Encoding")
	return true
}
