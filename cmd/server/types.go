package main

import (
	"github.com/gin-gonic/gin"

	"github.com/sushrutsadana/SalesChatAgent/internal/chat"
	"github.com/sushrutsadana/SalesChatAgent/internal/config"
	"github.com/sushrutsadana/SalesChatAgent/internal/index"
	"github.com/sushrutsadana/SalesChatAgent/internal/llm"
	"github.com/sushrutsadana/SalesChatAgent/internal/retriever"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	router   *gin.Engine
}

// holds the service clients behind the chat endpoint
type Services struct {
	LLM       *llm.CompositeLLM
	Store     index.Store
	Retriever *retriever.Client
	Chat      *chat.Service
}
