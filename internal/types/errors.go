package types

import "errors"

var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrInvalidValidity   = errors.New("invalid validity")
	ErrInvalidShortcode  = errors.New("invalid shortcode")
	ErrShortcodeConflict = errors.New("shortcode already in use")
	ErrNotFound          = errors.New("shortcode not found")
	ErrLinkExpired       = errors.New("link expired")
)
