package main

import (
  "fmt"
  "os"
  "strings"

  "github.com/parley-ai/parley-backend/internal/db"
  "github.com/parley-ai/parley-backend/internal/handlers"
  "github.com/parley-ai/parley-backend/internal/logger"
  "github.com/parley-ai/parley-backend/internal/middleware"
  "github.com/parley-ai/parley-backend/internal/repos"
  "github.com/parley-ai/parley-backend/internal/server"
  "github.com/parley-ai/parley-backend/internal/services"
  "github.com/parley-ai/parley-backend/internal/utils"
)

func main() {
  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  clientOrigins := utils.GetEnv("CLIENT_ORIGINS", "*", log)
  port := utils.GetEnv("PORT", "3001", log)

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("DB init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  log.Info("Postgres Setup From Main Successful :)")

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  convoRepo := repos.NewConversationRepo(thePG, log)
  indexRepo := repos.NewUserChatIndexRepo(thePG, log)
  log.Info("Repositories Set Up From Main Successful :)")

  // Services Setup
  log.Info("Setting up Services from Main now...")
  authService := services.NewAuthService(log, jwtSecretKey)
  conversationService := services.NewConversationService(thePG, log, convoRepo, indexRepo)
  uploadService, err := services.NewUploadService(log)
  if err != nil {
    log.Error("Fatal error: Cannot init UploadService", "error", err)
    os.Exit(1)
  }
  log.Info("Services Set Up From Main Successful :)")

  // Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  chatHandler := handlers.NewChatHandler(conversationService)
  uploadHandler := handlers.NewUploadHandler(uploadService)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    ChatHandler:    chatHandler,
    UploadHandler:  uploadHandler,
    AuthMiddleware: authMiddleware,
    AllowOrigins:   strings.Split(clientOrigins, ","),
  })
  log.Info("Router Set Up From Main Successful :)")

  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
