package index

import (
	"github.com/gin-gonic/gin"

	"github.com/sushrutsadana/SalesChatAgent/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, svc Reloader, adminToken string) {
	indexGroup := router.Group("/index")
	indexGroup.Use(auth.AdminTokenMiddleware(adminToken))

	indexGroup.POST("/reload", ReloadHandler(svc))
}
