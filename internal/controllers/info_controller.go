package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type endpointInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Auth        string `json:"auth"`
	Description string `json:"description"`
}

var endpoints = []endpointInfo{
	{http.MethodPost, "/auth/register", "none", "register a user"},
	{http.MethodPost, "/auth/login", "none", "obtain a bearer token"},
	{http.MethodGet, "/auth/me", "bearer", "current user"},
	{http.MethodPost, "/shorten", "bearer", "shorten a URL"},
	{http.MethodGet, "/my", "bearer", "own short links"},
	{http.MethodGet, "/all", "admin", "all short links with owners"},
	{http.MethodGet, "/summary", "bearer", "own link count and total clicks"},
	{http.MethodGet, "/clicks-over-time", "bearer", "estimated daily clicks, ?days=N"},
	{http.MethodGet, "/admin/analytics", "admin", "service-wide totals"},
	{http.MethodGet, "/admin/clicks-over-time", "admin", "clicks grouped by link creation day"},
	{http.MethodGet, "/ping", "none", "storage health check"},
	{http.MethodGet, "/:code", "none", "redirect to the original URL"},
}

// Info обрабатывает GET /info: список доступных эндпоинтов.
func Info(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"name":      "linkly",
		"endpoints": endpoints,
	})
}
