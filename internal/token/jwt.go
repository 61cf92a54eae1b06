package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the claims of a locally issued identity token.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email,omitempty"`
	TokenType string `json:"typ"`
}

// JWT issues and verifies identity tokens signed with a shared HMAC secret.
// It stands in for the external identity provider in local development.
type JWT struct {
	secretKey string
	now       func() time.Time
}

// NewJWT creates a new JWT token issuer with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey, now: time.Now}
}

const (
	idTTL  = time.Hour
	typeID = "id"
	issuer = "usuario-server"
)

// Subject is the verified content of an identity token.
type Subject struct {
	UID      string
	Email    string
	IssuedAt time.Time
}

// GenerateIDToken creates a short-lived identity token for uid.
func (j *JWT) GenerateIDToken(uid, email string) (string, time.Duration, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(idTTL)),
		},
		Email:     email,
		TokenType: typeID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign id token: %w", err)
	}

	return tokenString, idTTL, nil
}

// ParseIDToken validates an identity token and returns its subject.
func (j *JWT) ParseIDToken(tokenString string) (Subject, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(j.now), jwt.WithIssuedAt())
	if err != nil {
		return Subject{}, fmt.Errorf("failed to parse id token: %w", err)
	}
	if !token.Valid {
		return Subject{}, fmt.Errorf("id token is invalid")
	}
	if claims.TokenType != typeID {
		return Subject{}, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.Subject == "" {
		return Subject{}, fmt.Errorf("id token has no subject")
	}

	subject := Subject{UID: claims.Subject, Email: claims.Email}
	if claims.IssuedAt != nil {
		subject.IssuedAt = claims.IssuedAt.Time
	}
	return subject, nil
}
