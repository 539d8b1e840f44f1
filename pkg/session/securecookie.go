package session

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
)

const secureCookieName = "session"

// SecureCookieCodec authenticates (and, with a block key, encrypts) the
// JSON payload using gorilla/securecookie.
type SecureCookieCodec struct {
	sc *securecookie.SecureCookie
}

// NewSecureCookieCodec derives fixed-size keys from the configured secrets.
func NewSecureCookieCodec(secret, blockKey string, maxAge time.Duration) *SecureCookieCodec {
	hashKey := sha256.Sum256([]byte(secret))
	var block []byte
	if blockKey != "" {
		sum := sha256.Sum256([]byte(blockKey))
		block = sum[:]
	}
	sc := securecookie.New(hashKey[:], block)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxAge.Seconds()))
	return &SecureCookieCodec{sc: sc}
}

// Encode serialises and signs the payload.
func (c *SecureCookieCodec) Encode(p Payload) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	value, err := c.sc.Encode(secureCookieName, p)
	if err != nil {
		return "", fmt.Errorf("encode session cookie: %w", err)
	}
	return value, nil
}

// Decode verifies the MAC and timestamp and returns the payload.
func (c *SecureCookieCodec) Decode(token string) (Payload, error) {
	var p Payload
	if err := c.sc.Decode(secureCookieName, token, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if err := p.validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}
