package apperr

import (
  "net/http"

  "github.com/m-mizutani/goerr/v2"
)

// Error kinds are goerr tags. Handlers translate whatever bubbles up
// into a status code with HTTPStatus instead of collapsing everything
// into one catch-all response.
var (
  TagValidation      = goerr.NewTag("validation")
  TagUnauthenticated = goerr.NewTag("unauthenticated")
  TagNotFound        = goerr.NewTag("not_found")
  TagPersistence     = goerr.NewTag("persistence")
)

func Validation(msg string, options ...goerr.Option) error {
  return goerr.New(msg, append(options, goerr.T(TagValidation))...)
}

func Unauthenticated(msg string, options ...goerr.Option) error {
  return goerr.New(msg, append(options, goerr.T(TagUnauthenticated))...)
}

func NotFound(msg string, options ...goerr.Option) error {
  return goerr.New(msg, append(options, goerr.T(TagNotFound))...)
}

func Persistence(err error, msg string, options ...goerr.Option) error {
  return goerr.Wrap(err, msg, append(options, goerr.T(TagPersistence))...)
}

// HTTPStatus maps an error to the response status for its kind.
// Untagged errors are treated as internal failures.
func HTTPStatus(err error) int {
  switch {
  case err == nil:
    return http.StatusOK
  case goerr.HasTag(err, TagValidation):
    return http.StatusBadRequest
  case goerr.HasTag(err, TagUnauthenticated):
    return http.StatusUnauthorized
  case goerr.HasTag(err, TagNotFound):
    return http.StatusNotFound
  default:
    return http.StatusInternalServerError
  }
}
