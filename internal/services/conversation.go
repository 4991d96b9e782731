package services

import (
  "context"
  "time"

  "github.com/google/uuid"
  "github.com/m-mizutani/goerr/v2"
  "gorm.io/gorm"

  "github.com/parley-ai/parley-backend/internal/apperr"
  "github.com/parley-ai/parley-backend/internal/logger"
  "github.com/parley-ai/parley-backend/internal/repos"
  "github.com/parley-ai/parley-backend/internal/requestdata"
  "github.com/parley-ai/parley-backend/internal/types"
)

// AppendResult mirrors the store acknowledgement for a turn append.
type AppendResult struct {
  MatchedCount    int64   `json:"matchedCount"`
  ModifiedCount   int64   `json:"modifiedCount"`
}

type ConversationService interface {
  CreateConversation(ctx context.Context, tx *gorm.DB, initialText string) (uuid.UUID, error)
  ListConversations(ctx context.Context, tx *gorm.DB) ([]types.ChatSummary, error)
  GetConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (*types.Conversation, error)
  AppendTurn(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, question, answer, img string) (AppendResult, error)
}

type conversationService struct {
  db        *gorm.DB
  log       *logger.Logger
  convoRepo repos.ConversationRepo
  indexRepo repos.UserChatIndexRepo
}

func NewConversationService(
  db *gorm.DB,
  log *logger.Logger,
  convoRepo repos.ConversationRepo,
  indexRepo repos.UserChatIndexRepo,
) ConversationService {
  serviceLog := log.With("service", "ConversationService")
  return &conversationService{
    db:        db,
    log:       serviceLog,
    convoRepo: convoRepo,
    indexRepo: indexRepo,
  }
}

func (cs *conversationService) callerID(ctx context.Context) (string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    cs.log.Warn("Request Data is not set in context.")
    return "", apperr.Unauthenticated("no verified identity in request context")
  }
  return rd.UserID, nil
}

// CreateConversation inserts a new conversation holding the opening
// user turn and records its summary in the owner's chat index. The
// index write is one atomic upsert, so first-time and repeat creators
// share a single code path and a single response.
func (cs *conversationService) CreateConversation(ctx context.Context, tx *gorm.DB, initialText string) (uuid.UUID, error) {
  userID, err := cs.callerID(ctx)
  if err != nil {
    return uuid.Nil, err
  }
  if initialText == "" {
    return uuid.Nil, apperr.Validation("missing text")
  }

  now := time.Now().UTC()
  history, err := types.MarshalTurns([]types.Turn{
    {
      Role:      types.TurnRoleUser,
      Parts:     []types.TurnPart{{Text: initialText}},
      CreatedAt: now,
    },
  })
  if err != nil {
    return uuid.Nil, apperr.Persistence(err, "failed to encode opening turn")
  }
  convo := &types.Conversation{
    ID:      uuid.New(),
    UserID:  userID,
    History: history,
  }

  writes := func(tx *gorm.DB) error {
    if _, err := cs.convoRepo.Create(ctx, tx, convo); err != nil {
      return apperr.Persistence(err, "error creating conversation")
    }
    summary := types.ChatSummary{
      ConversationID: convo.ID,
      Title:          types.SummaryTitle(initialText),
      CreatedAt:      now,
    }
    if err := cs.indexRepo.AppendSummary(ctx, tx, userID, summary); err != nil {
      return apperr.Persistence(err, "error updating chat index", goerr.V("conversationID", convo.ID))
    }
    return nil
  }

  if tx == nil && cs.db != nil {
    err = cs.db.WithContext(ctx).Transaction(writes)
  } else {
    err = writes(tx)
  }
  if err != nil {
    return uuid.Nil, err
  }
  cs.log.Debug("conversation created", "conversationID", convo.ID, "userID", userID)
  return convo.ID, nil
}

// ListConversations returns the caller's chat summaries in creation
// order. A user with no index record at all gets a not-found error; a
// record with no entries gets an empty list.
func (cs *conversationService) ListConversations(ctx context.Context, tx *gorm.DB) ([]types.ChatSummary, error) {
  userID, err := cs.callerID(ctx)
  if err != nil {
    return nil, err
  }
  idx, err := cs.indexRepo.GetByUserID(ctx, tx, userID)
  if err != nil {
    return nil, apperr.Persistence(err, "error fetching chats")
  }
  if idx == nil {
    return nil, apperr.NotFound("no chats for user")
  }
  summaries, err := idx.Summaries()
  if err != nil {
    return nil, apperr.Persistence(err, "failed to decode chat index")
  }
  if summaries == nil {
    summaries = []types.ChatSummary{}
  }
  return summaries, nil
}

// GetConversation reads one conversation scoped to the caller. A miss,
// including an id owned by someone else, is (nil, nil).
func (cs *conversationService) GetConversation(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID) (*types.Conversation, error) {
  userID, err := cs.callerID(ctx)
  if err != nil {
    return nil, err
  }
  convo, err := cs.convoRepo.GetByIDAndUser(ctx, tx, conversationID, userID)
  if err != nil {
    return nil, apperr.Persistence(err, "error fetching conversation")
  }
  return convo, nil
}

// AppendTurn appends zero-or-one user turn (when a question is
// supplied, optionally carrying an image reference) followed by one
// model turn, as a single array-append scoped to id and owner. Retries
// are not deduplicated: calling twice appends twice.
func (cs *conversationService) AppendTurn(ctx context.Context, tx *gorm.DB, conversationID uuid.UUID, question, answer, img string) (AppendResult, error) {
  userID, err := cs.callerID(ctx)
  if err != nil {
    return AppendResult{}, err
  }

  now := time.Now().UTC()
  var turns []types.Turn
  if question != "" {
    turns = append(turns, types.Turn{
      Role:      types.TurnRoleUser,
      Parts:     []types.TurnPart{{Text: question, Img: img}},
      CreatedAt: now,
    })
  }
  turns = append(turns, types.Turn{
    Role:      types.TurnRoleModel,
    Parts:     []types.TurnPart{{Text: answer}},
    CreatedAt: now,
  })

  matched, err := cs.convoRepo.AppendTurns(ctx, tx, conversationID, userID, turns)
  if err != nil {
    return AppendResult{}, apperr.Persistence(err, "error appending to conversation", goerr.V("conversationID", conversationID))
  }
  return AppendResult{MatchedCount: matched, ModifiedCount: matched}, nil
}
