package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type jwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec signs payloads as HS256 JSON web tokens.
type JWTCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTCodec constructs a JWT codec.
func NewJWTCodec(secret, issuer string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Encode signs the payload with exp/iat/nbf claims.
func (c *JWTCodec) Encode(p Payload) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}
	now := c.now().UTC()
	claims := jwtClaims{
		UserID: p.UserID,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, algorithm, issuer and expiry.
func (c *JWTCodec) Decode(token string) (Payload, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	p := Payload{UserID: claims.UserID, Role: claims.Role}
	if err := p.validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}
