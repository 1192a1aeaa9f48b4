package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Manager struct {
	Secret   []byte
	TokenTTL time.Duration
	Issuer   string
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity is the decoded payload of a verified token. Everything past the
// middleware works with an Identity, never with the raw token string.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

func (m *Manager) NewToken(userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// Parse verifies signature and expiry. Any failure (malformed, expired, wrong
// signature, wrong method) comes back as an error; it never panics.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (m *Manager) Verify(tokenStr string) (Identity, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.Subject, Username: claims.Username}, nil
}
