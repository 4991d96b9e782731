package services

import (
  "crypto/hmac"
  "crypto/sha1"
  "encoding/hex"
  "strconv"
  "testing"
  "time"

  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/parley-ai/parley-backend/internal/logger"
)

func newTestUploadService(t *testing.T, privateKey string) *uploadService {
  t.Helper()
  log, err := logger.New("development")
  require.NoError(t, err)
  return &uploadService{
    log:        log.With("service", "UploadService"),
    privateKey: privateKey,
  }
}

func TestGetAuthenticationParameters(t *testing.T) {
  us := newTestUploadService(t, "private_test_key")

  cred := us.GetAuthenticationParameters()

  _, err := uuid.Parse(cred.Token)
  assert.NoError(t, err, "token should be a fresh uuid")

  now := time.Now().Unix()
  assert.Greater(t, cred.Expire, now)
  assert.LessOrEqual(t, cred.Expire, now+int64(uploadCredentialTTL.Seconds())+1)

  mac := hmac.New(sha1.New, []byte("private_test_key"))
  mac.Write([]byte(cred.Token + strconv.FormatInt(cred.Expire, 10)))
  assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), cred.Signature)
}

func TestGetAuthenticationParametersFreshPerCall(t *testing.T) {
  us := newTestUploadService(t, "private_test_key")

  a := us.GetAuthenticationParameters()
  b := us.GetAuthenticationParameters()
  assert.NotEqual(t, a.Token, b.Token)
  assert.NotEqual(t, a.Signature, b.Signature)
}

func TestSignDependsOnKey(t *testing.T) {
  a := newTestUploadService(t, "key_a")
  b := newTestUploadService(t, "key_b")

  assert.NotEqual(t, a.sign("tok", 1700000000), b.sign("tok", 1700000000))
  assert.Equal(t, a.sign("tok", 1700000000), a.sign("tok", 1700000000))
}

func TestNewUploadServiceRequiresPrivateKey(t *testing.T) {
  log, err := logger.New("development")
  require.NoError(t, err)

  t.Setenv("MEDIA_PRIVATE_KEY", "")
  _, err = NewUploadService(log)
  assert.Error(t, err)

  t.Setenv("MEDIA_PRIVATE_KEY", "private_test_key")
  svc, err := NewUploadService(log)
  require.NoError(t, err)
  assert.NotNil(t, svc)
}
