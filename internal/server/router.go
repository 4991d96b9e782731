package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/parley-ai/parley-backend/internal/handlers"
  "github.com/parley-ai/parley-backend/internal/middleware"
)

type RouterConfig struct {
  ChatHandler       *handlers.ChatHandler
  UploadHandler     *handlers.UploadHandler
  AuthMiddleware    *middleware.AuthMiddleware
  AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  corsConfig := cors.Config{
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
  }
  if len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*" {
    corsConfig.AllowAllOrigins = true
  } else {
    corsConfig.AllowOrigins = cfg.AllowOrigins
    corsConfig.AllowCredentials = true
  }
  router.Use(cors.New(corsConfig))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/", handlers.Greeting)
  router.GET("/healthz", handlers.Healthz)

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  api := router.Group("/api")
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())

  //Upload credentials
  protected.GET("/upload", cfg.UploadHandler.GetUploadAuth)

  //Chats
  protected.POST("/chats", cfg.ChatHandler.CreateChat)
  protected.GET("/userchats", cfg.ChatHandler.GetUserChats)
  protected.GET("/chats/:id", cfg.ChatHandler.GetChat)
  protected.PUT("/chats/:id", cfg.ChatHandler.AppendToChat)

  return router
}
