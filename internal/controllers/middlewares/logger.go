package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LoggerMiddleware должен быть первый в стеке миддлваре. Заголовки запроса снимаются до c.Next,
// так как GzipMiddleware удаляет Content-Encoding после распаковки.
func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger == nil {
			c.Next()
			return
		}

		fields := logrus.Fields{
			"URI":              c.Request.URL.Path,
			"method":           c.Request.Method,
			"content-type":     c.Request.Header.Get("Content-Type"),
			"content-encoding": c.Request.Header.Get("Content-Encoding"),
		}

		start := time.Now()
		c.Next()

		statusCode := c.Writer.Status()
		fields["status"] = statusCode
		fields["latency"] = fmt.Sprintf("%d ms", time.Since(start).Milliseconds())
		fields["size"] = c.Writer.Size()
		if identity, ok := GetIdentity(c); ok {
			fields["user"] = identity.UserID
		}
		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			fields["error"] = errorMessage
		}

		l := logger.WithFields(fields)
		switch {
		case statusCode >= http.StatusInternalServerError:
			l.Error("Server error")
		case statusCode >= http.StatusBadRequest:
			l.Warn("Client error")
		default:
			l.Info("Request processed")
		}
	}
}
