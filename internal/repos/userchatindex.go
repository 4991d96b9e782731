package repos

import (
  "context"
  "encoding/json"
  "errors"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/parley-ai/parley-backend/internal/logger"
  "github.com/parley-ai/parley-backend/internal/types"
)

type UserChatIndexRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.UserChatIndex, error)
  AppendSummary(ctx context.Context, tx *gorm.DB, userID string, summary types.ChatSummary) error
}

type userChatIndexRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserChatIndexRepo(db *gorm.DB, baseLog *logger.Logger) UserChatIndexRepo {
  return &userChatIndexRepo{
    db:  db,
    log: baseLog.With("repo", "UserChatIndexRepo"),
  }
}

// GetByUserID returns the user's index record, or (nil, nil) when the
// user has never created a conversation.
func (ur *userChatIndexRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.UserChatIndex, error) {
  if tx == nil {
    tx = ur.db
  }
  var idx types.UserChatIndex
  if err := tx.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&idx).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &idx, nil
}

// AppendSummary creates the user's index record with the summary as
// its first entry, or appends to the existing record, in one
// conditional statement. The unique index on user_id makes the upsert
// race-safe: two concurrent first-time creates cannot both insert, and
// the loser's summary lands via the conflict branch instead of being
// dropped.
func (ur *userChatIndexRepo) AppendSummary(ctx context.Context, tx *gorm.DB, userID string, summary types.ChatSummary) error {
  if tx == nil {
    tx = ur.db
  }
  raw, err := json.Marshal(summary)
  if err != nil {
    return err
  }
  res := tx.WithContext(ctx).Exec(`
    INSERT INTO user_chat_index (id, user_id, chats, created_at, updated_at)
    VALUES (?, ?, jsonb_build_array(?::jsonb), now(), now())
    ON CONFLICT (user_id)
    DO UPDATE SET chats = user_chat_index.chats || EXCLUDED.chats, updated_at = now()
  `, uuid.New(), userID, datatypes.JSON(raw))
  if res.Error != nil {
    ur.log.Error("failed to upsert chat summary", "error", res.Error, "userID", userID)
    return res.Error
  }
  return nil
}
