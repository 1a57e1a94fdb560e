package users

import "errors"

// ErrUserNotFound indicates the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrRefreshTokenInvalid indicates an unknown, expired or revoked refresh token.
var ErrRefreshTokenInvalid = errors.New("invalid refresh token")

// ErrOAuthStateMismatch indicates the callback state was missing or unknown.
var ErrOAuthStateMismatch = errors.New("oauth state mismatch")

// ErrOAuthExchangeFailed indicates Google rejected the code exchange or
// returned an unusable profile.
var ErrOAuthExchangeFailed = errors.New("oauth exchange failed")
