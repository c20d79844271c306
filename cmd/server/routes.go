package main

import (
	"github.com/gin-gonic/gin"

	"github.com/sushrutsadana/SalesChatAgent/api/rest/chat"
	"github.com/sushrutsadana/SalesChatAgent/api/rest/health"
	"github.com/sushrutsadana/SalesChatAgent/api/rest/index"
)

// sets up all API routes
func RegisterRoutes(router *gin.Engine, server *Server, chatMiddleware ...gin.HandlerFunc) {
	router.GET("/health", health.Handler(server.services.Chat))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		chat.RegisterRoutes(router, v1, server.services.Chat, chatMiddleware...)

		if server.config.AdminToken != "" {
			index.RegisterRoutes(v1, server.services.Chat, server.config.AdminToken)
		}
	}
}
