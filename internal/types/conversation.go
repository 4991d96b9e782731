package types

import (
  "encoding/json"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  TurnRoleUser  = "user"
  TurnRoleModel = "model"
)

// TurnPart is one content fragment of a turn. Img carries the media
// CDN file reference when the client attached an upload.
type TurnPart struct {
  Text string `json:"text"`
  Img  string `json:"img,omitempty"`
}

// Turn is a single message in a conversation, tagged with its speaker role.
type Turn struct {
  Role      string      `json:"role"`
  Parts     []TurnPart  `json:"parts"`
  CreatedAt time.Time   `json:"createdAt"`
}

// Conversation owns an ordered, append-only history of turns. The
// history lives in a single jsonb document column so turn appends are
// one array-append statement against one row.
type Conversation struct {
  ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"_id"`
  UserID      string            `gorm:"type:text;not null;index" json:"userId"`
  History     datatypes.JSON    `gorm:"type:jsonb;not null;default:'[]'" json:"history"`
  CreatedAt   time.Time         `gorm:"not null;default:now()" json:"createdAt"`
  UpdatedAt   time.Time         `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Conversation) TableName() string {
  return "conversation"
}

func MarshalTurns(turns []Turn) (datatypes.JSON, error) {
  raw, err := json.Marshal(turns)
  if err != nil {
    return nil, err
  }
  return datatypes.JSON(raw), nil
}

// Turns decodes the history column back into its turn sequence.
func (c *Conversation) Turns() ([]Turn, error) {
  var turns []Turn
  if len(c.History) == 0 {
    return turns, nil
  }
  if err := json.Unmarshal(c.History, &turns); err != nil {
    return nil, err
  }
  return turns, nil
}
