package requestdata

import (
  "context"
)

type key struct{}

var requestDataKey key

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// RequestData carries the identity the auth gate verified for this
// request. UserID is the identity provider's opaque subject, not a
// key into any local user table.
type RequestData struct {
  TokenString     string
  UserID          string
  SessionID       string
}
