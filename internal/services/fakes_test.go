package services

import (
  "context"
  "encoding/json"
  "sync"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/parley-ai/parley-backend/internal/types"
)

// In-memory repo doubles. They mimic the storage semantics the real
// repos get from Postgres: owner-scoped filters, one index record per
// user, array-append on the jsonb payloads.

type memStore struct {
  mu            sync.Mutex
  conversations map[uuid.UUID]*types.Conversation
  indexes       map[string]*types.UserChatIndex
}

func newMemStore() *memStore {
  return &memStore{
    conversations: make(map[uuid.UUID]*types.Conversation),
    indexes:       make(map[string]*types.UserChatIndex),
  }
}

type memConversationRepo struct {
  store *memStore
}

func (m *memConversationRepo) Create(ctx context.Context, tx *gorm.DB, convo *types.Conversation) (*types.Conversation, error) {
  m.store.mu.Lock()
  defer m.store.mu.Unlock()
  if convo.ID == uuid.Nil {
    convo.ID = uuid.New()
  }
  stored := *convo
  m.store.conversations[convo.ID] = &stored
  return convo, nil
}

func (m *memConversationRepo) GetByIDAndUser(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID string) (*types.Conversation, error) {
  m.store.mu.Lock()
  defer m.store.mu.Unlock()
  c, ok := m.store.conversations[id]
  if !ok || c.UserID != userID {
    return nil, nil
  }
  found := *c
  return &found, nil
}

func (m *memConversationRepo) AppendTurns(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID string, turns []types.Turn) (int64, error) {
  m.store.mu.Lock()
  defer m.store.mu.Unlock()
  c, ok := m.store.conversations[id]
  if !ok || c.UserID != userID {
    return 0, nil
  }
  existing, err := c.Turns()
  if err != nil {
    return 0, err
  }
  history, err := types.MarshalTurns(append(existing, turns...))
  if err != nil {
    return 0, err
  }
  c.History = history
  return 1, nil
}

type memUserChatIndexRepo struct {
  store *memStore
}

func (m *memUserChatIndexRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.UserChatIndex, error) {
  m.store.mu.Lock()
  defer m.store.mu.Unlock()
  idx, ok := m.store.indexes[userID]
  if !ok {
    return nil, nil
  }
  found := *idx
  return &found, nil
}

func (m *memUserChatIndexRepo) AppendSummary(ctx context.Context, tx *gorm.DB, userID string, summary types.ChatSummary) error {
  m.store.mu.Lock()
  defer m.store.mu.Unlock()
  idx, ok := m.store.indexes[userID]
  if !ok {
    idx = &types.UserChatIndex{ID: uuid.New(), UserID: userID}
    m.store.indexes[userID] = idx
  }
  summaries, err := idx.Summaries()
  if err != nil {
    return err
  }
  raw, err := json.Marshal(append(summaries, summary))
  if err != nil {
    return err
  }
  idx.Chats = raw
  return nil
}
