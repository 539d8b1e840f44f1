// Package session encodes the {userId, role} pair carried by the session
// cookie and manages the cookie itself.
package session

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidToken is returned when a token is malformed, tampered or expired.
var ErrInvalidToken = errors.New("invalid session token")

// Payload is the signed content of a session.
type Payload struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (p Payload) validate() error {
	if p.UserID == "" || p.Role == "" {
		return fmt.Errorf("%w: userId and role required", ErrInvalidToken)
	}
	return nil
}

// Codec turns payloads into opaque cookie values and back.
type Codec interface {
	Encode(p Payload) (string, error)
	Decode(token string) (Payload, error)
}

// Options configures codec construction.
type Options struct {
	Secret   string
	BlockKey string
	Issuer   string
	MaxAge   time.Duration
}

// NewCodec builds the codec named by kind ("jwt" or "securecookie").
func NewCodec(kind string, opts Options) (Codec, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret required")
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7 * 24 * time.Hour
	}
	switch kind {
	case "", "jwt":
		return NewJWTCodec(opts.Secret, opts.Issuer, opts.MaxAge), nil
	case "securecookie":
		return NewSecureCookieCodec(opts.Secret, opts.BlockKey, opts.MaxAge), nil
	default:
		return nil, fmt.Errorf("unknown session codec %q", kind)
	}
}
