package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/parley-ai/parley-backend/internal/logger"
  "github.com/parley-ai/parley-backend/internal/types"
)

type ConversationRepo interface {
  Create(ctx context.Context, tx *gorm.DB, convo *types.Conversation) (*types.Conversation, error)
  GetByIDAndUser(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID string) (*types.Conversation, error)
  AppendTurns(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID string, turns []types.Turn) (int64, error)
}

type conversationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
  return &conversationRepo{
    db:  db,
    log: baseLog.With("repo", "ConversationRepo"),
  }
}

func (cr *conversationRepo) Create(ctx context.Context, tx *gorm.DB, convo *types.Conversation) (*types.Conversation, error) {
  if tx == nil {
    tx = cr.db
  }
  if convo.ID == uuid.Nil {
    convo.ID = uuid.New()
  }
  if err := tx.WithContext(ctx).Create(convo).Error; err != nil {
    cr.log.Error("failed to create conversation", "error", err)
    return nil, err
  }
  return convo, nil
}

// GetByIDAndUser filters on both id and owner so one user can never
// read another user's conversation. A miss is (nil, nil), not an error.
func (cr *conversationRepo) GetByIDAndUser(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID string) (*types.Conversation, error) {
  if tx == nil {
    tx = cr.db
  }
  var c types.Conversation
  if err := tx.WithContext(ctx).
    Where("id = ? AND user_id = ?", id, userID).
    First(&c).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &c, nil
}

// AppendTurns pushes the given turns onto the history of the one row
// matching both id and owner, as a single jsonb array-append. Returns
// how many rows matched (0 when the id is missing or owned by someone
// else).
func (cr *conversationRepo) AppendTurns(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID string, turns []types.Turn) (int64, error) {
  if tx == nil {
    tx = cr.db
  }
  payload, err := types.MarshalTurns(turns)
  if err != nil {
    return 0, err
  }
  res := tx.WithContext(ctx).Exec(`
    UPDATE conversation
    SET history = history || ?::jsonb, updated_at = now()
    WHERE id = ? AND user_id = ?
  `, payload, id, userID)
  if res.Error != nil {
    cr.log.Error("failed to append turns", "error", res.Error, "conversationID", id)
    return 0, res.Error
  }
  return res.RowsAffected, nil
}
