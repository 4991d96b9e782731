package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/parley-ai/parley-backend/internal/apperr"
  "github.com/parley-ai/parley-backend/internal/services"
)

type ChatHandler struct {
  conversationService services.ConversationService
}

func NewChatHandler(conversationService services.ConversationService) *ChatHandler {
  return &ChatHandler{conversationService: conversationService}
}

type createChatRequest struct {
  Text string `json:"text"`
}

type appendTurnRequest struct {
  Question string `json:"question"`
  Answer   string `json:"answer"`
  Img      string `json:"img"`
}

func (ch *ChatHandler) CreateChat(c *gin.Context) {
  var req createChatRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  id, err := ch.conversationService.CreateConversation(c.Request.Context(), nil, req.Text)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, id)
}

func (ch *ChatHandler) GetUserChats(c *gin.Context) {
  chats, err := ch.conversationService.ListConversations(c.Request.Context(), nil)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, chats)
}

func (ch *ChatHandler) GetChat(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
    return
  }
  convo, err := ch.conversationService.GetConversation(c.Request.Context(), nil, id)
  if err != nil {
    respondError(c, err)
    return
  }
  // A miss renders as null, never another owner's conversation.
  c.JSON(http.StatusOK, convo)
}

func (ch *ChatHandler) AppendToChat(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
    return
  }
  var req appendTurnRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  result, err := ch.conversationService.AppendTurn(c.Request.Context(), nil, id, req.Question, req.Answer, req.Img)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, result)
}

func respondError(c *gin.Context, err error) {
  c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}
