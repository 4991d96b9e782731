package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
)

func Healthz(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Greeting(c *gin.Context) {
  c.String(http.StatusOK, "Hello")
}
