package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike; the
// caller never learns which, only that the credential is unusable.
var ErrInvalidToken = errors.New("invalid token")

const DefaultTTL = time.Hour

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec mints and verifies signed identity tokens. The secret is injected at
// construction; nothing here reads the environment.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue returns a fresh HS256 token encoding the user id, expiring after the
// codec's TTL.
func (c *Codec) Issue(userID int) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("signing secret is not set")
	}

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Parse verifies the signature and expiry and returns the embedded user id.
func (c *Codec) Parse(tokenStr string) (int, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return c.secret, nil
		},
	)
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// ExtractBearer pulls the token out of the Authorization header.
func ExtractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
