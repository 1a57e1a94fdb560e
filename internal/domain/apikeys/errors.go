package apikeys

import "errors"

// ErrAPIKeyNotFound indicates the key does not exist or belongs to another
// user.
var ErrAPIKeyNotFound = errors.New("api key not found or not owned by user")

// ErrAPIKeyNotExpired indicates a rollover was attempted on a key that is
// still live.
var ErrAPIKeyNotExpired = errors.New("api key is not expired yet")

// ErrTooManyActiveKeys indicates the per-user active key ceiling was reached.
var ErrTooManyActiveKeys = errors.New("maximum active api keys reached")

// ErrAPIKeyInvalid indicates the presented key matches no active record.
var ErrAPIKeyInvalid = errors.New("invalid or expired api key")
