package services

import (
  "context"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/m-mizutani/goerr/v2"

  "github.com/parley-ai/parley-backend/internal/apperr"
  "github.com/parley-ai/parley-backend/internal/logger"
  "github.com/parley-ai/parley-backend/internal/requestdata"
)

// SessionClaims is the shape of the identity provider's session token.
// The subject is the provider's opaque user id.
type SessionClaims struct {
  jwt.RegisteredClaims
  SessionID   string      `json:"sid,omitempty"`
}

// AuthService is the authentication gate: it verifies a bearer
// credential and injects the verified identity into the request
// context before any handler logic runs. Token issuance belongs to
// the identity provider; IssueToken exists for tests and local dev
// against the provider's shared dev secret.
type AuthService interface {
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  IssueToken(userID, sessionID string, ttl time.Duration) (string, error)
}

type authService struct {
  log          *logger.Logger
  jwtSecretKey string
}

func NewAuthService(log *logger.Logger, jwtSecretKey string) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    log:          serviceLog,
    jwtSecretKey: jwtSecretKey,
  }
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, apperr.Unauthenticated("missing token")
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
  if err != nil {
    return ctx, goerr.Wrap(err, "failed to parse token", goerr.T(apperr.TagUnauthenticated))
  }
  claims, ok := parsedToken.Claims.(*SessionClaims)
  if !ok || !parsedToken.Valid {
    return ctx, apperr.Unauthenticated("invalid or expired token")
  }
  if claims.Subject == "" {
    return ctx, apperr.Unauthenticated("token has no subject")
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      claims.Subject,
    SessionID:   claims.SessionID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) IssueToken(userID, sessionID string, ttl time.Duration) (string, error) {
  now := time.Now()
  claims := SessionClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   userID,
      IssuedAt:  jwt.NewNumericDate(now),
      ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
    },
    SessionID: sessionID,
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    as.log.Error("failed to sign token", "error", err)
    return "", err
  }
  return signed, nil
}
