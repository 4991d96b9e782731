package services

import (
  "crypto/hmac"
  "crypto/sha1"
  "encoding/hex"
  "fmt"
  "strconv"
  "time"

  "github.com/google/uuid"

  "github.com/parley-ai/parley-backend/internal/logger"
  "github.com/parley-ai/parley-backend/internal/utils"
)

const uploadCredentialTTL = 30 * time.Minute

// UploadCredential authorizes one direct client-to-CDN file upload.
// The media service accepts the triple verbatim.
type UploadCredential struct {
  Signature   string    `json:"signature"`
  Token       string    `json:"token"`
  Expire      int64     `json:"expire"`
}

// UploadService issues short-lived upload credentials signed with the
// media service's private key. Stateless: every call mints a fresh
// token/expiry pair.
type UploadService interface {
  GetAuthenticationParameters() UploadCredential
}

type uploadService struct {
  log         *logger.Logger
  urlEndpoint string
  publicKey   string
  privateKey  string
}

func NewUploadService(log *logger.Logger) (UploadService, error) {
  serviceLog := log.With("service", "UploadService")
  urlEndpoint := utils.GetEnv("MEDIA_URL_ENDPOINT", "", log)
  publicKey := utils.GetEnv("MEDIA_PUBLIC_KEY", "", log)
  privateKey := utils.GetEnv("MEDIA_PRIVATE_KEY", "", log)
  if privateKey == "" {
    return nil, fmt.Errorf("MEDIA_PRIVATE_KEY is not set")
  }
  return &uploadService{
    log:         serviceLog,
    urlEndpoint: urlEndpoint,
    publicKey:   publicKey,
    privateKey:  privateKey,
  }, nil
}

func (us *uploadService) GetAuthenticationParameters() UploadCredential {
  token := uuid.New().String()
  expire := time.Now().Add(uploadCredentialTTL).Unix()
  return UploadCredential{
    Signature: us.sign(token, expire),
    Token:     token,
    Expire:    expire,
  }
}

// sign implements the media service's client-auth scheme: HMAC-SHA1
// over token+expire with the account's private key, hex encoded.
func (us *uploadService) sign(token string, expire int64) string {
  mac := hmac.New(sha1.New, []byte(us.privateKey))
  mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
  return hex.EncodeToString(mac.Sum(nil))
}
