package routes

import (
	"github.com/gin-gonic/gin"

	"supportchat/internal/interfaces/httpserver/handlers"
)

// Register attaches the chat routes under the /chat prefix.
func Register(engine *gin.Engine, chatHandler *handlers.ChatHandler) {
	group := engine.Group("/chat")
	group.POST("/message", chatHandler.SendMessage)
	group.GET("/history/:sessionId", chatHandler.GetHistory)
	group.GET("/conversations", chatHandler.ListConversations)
}
