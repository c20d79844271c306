package chat

import "github.com/gin-gonic/gin"

// registers POST /chat and POST /api/v1/chat on the same handler.
// middleware applies to the chat routes only.
func RegisterRoutes(router *gin.Engine, v1 *gin.RouterGroup, svc Chatter, middleware ...gin.HandlerFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(middleware)+1)
	handlers = append(handlers, middleware...)
	handlers = append(handlers, Handler(svc))

	router.POST("/chat", handlers...)
	v1.POST("/chat", handlers...)
}
