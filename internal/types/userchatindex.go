package types

import (
  "encoding/json"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const summaryTitleLen = 20

// ChatSummary is one entry of a user's denormalized conversation list.
type ChatSummary struct {
  ConversationID  uuid.UUID   `json:"_id"`
  Title           string      `json:"title"`
  CreatedAt       time.Time   `json:"createdAt"`
}

// UserChatIndex is the per-user shadow of the conversations that user
// owns, kept in sync whenever a conversation is created. The unique
// index on user_id guarantees at most one record per user even when
// two first-time creates race.
type UserChatIndex struct {
  ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID      string            `gorm:"type:text;not null;uniqueIndex" json:"userId"`
  Chats       datatypes.JSON    `gorm:"type:jsonb;not null;default:'[]'" json:"chats"`
  CreatedAt   time.Time         `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt   time.Time         `gorm:"not null;default:now()" json:"updatedAt"`
}

func (UserChatIndex) TableName() string {
  return "user_chat_index"
}

// Summaries decodes the chats column back into the summary sequence.
func (u *UserChatIndex) Summaries() ([]ChatSummary, error) {
  var chats []ChatSummary
  if len(u.Chats) == 0 {
    return chats, nil
  }
  if err := json.Unmarshal(u.Chats, &chats); err != nil {
    return nil, err
  }
  return chats, nil
}

// SummaryTitle derives a list title from the opening message: the
// first 20 characters, or the whole text when shorter.
func SummaryTitle(text string) string {
  runes := []rune(text)
  if len(runes) <= summaryTitleLen {
    return text
  }
  return string(runes[:summaryTitleLen])
}
