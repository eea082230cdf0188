package controllers

import (
	"net/url"

	"github.com/fsdevblog/linkly/internal/controllers/middlewares"
	"github.com/fsdevblog/linkly/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterParams struct {
	AuthService      Authenticator
	LinkService      LinkShortener
	AnalyticsService Analyzer
	PingService      ConnectionChecker
	BaseURL          *url.URL
	Logger           *logrus.Logger
}

func SetupRouter(params RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(gin.Recovery())
	r.Use(middlewares.GzipMiddleware())

	authController := NewAuthController(params.AuthService)
	linksController := NewLinksController(params.LinkService, params.BaseURL)
	analyticsController := NewAnalyticsController(params.AnalyticsService)
	pingController := NewPingController(params.PingService)

	r.GET("/ping", pingController.Ping)
	r.GET("/info", Info)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)

	requireIdentity := middlewares.RequireIdentity(params.AuthService)
	requireAdmin := middlewares.RequireRole(models.RoleAdmin)

	authGroup.GET("/me", requireIdentity, authController.Me)

	r.POST("/shorten", requireIdentity, linksController.Shorten)
	r.GET("/my", requireIdentity, linksController.ListOwn)
	r.GET("/all", requireIdentity, requireAdmin, linksController.ListAll)
	r.GET("/summary", requireIdentity, analyticsController.Summary)
	r.GET("/clicks-over-time", requireIdentity, analyticsController.ClicksOverTime)

	admin := r.Group("/admin", requireIdentity, requireAdmin)
	admin.GET("/analytics", analyticsController.AdminOverview)
	admin.GET("/clicks-over-time", analyticsController.AdminClicksOverTime)

	r.GET("/:code", linksController.Redirect)
	return r
}
