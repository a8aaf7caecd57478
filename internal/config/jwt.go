package config

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
	now           func() time.Time
}

type SessionClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// NewJWT signs with the configured secret. Without one, a random secret is
// generated and tokens do not survive a restart.
func NewJWT(c JwtConfig) (*JWT, error) {
	secret := []byte(c.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate JWT secret: %w", err)
		}
	}

	j := &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: c.TokenLifetime.Duration,
		now:           time.Now,
	}

	return j, nil
}

func (j *JWT) TokenLifetime() time.Duration {
	return j.tokenLifetime
}

func (j *JWT) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

// Issue returns a token granting access to the game gameID.
func (j *JWT) Issue(gameID string) (string, error) {
	now := j.now()
	return j.Sign(&SessionClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenLifetime)),
		},
	})
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
}

func (j *JWT) ParseSessionClaims(tokenString string) (*SessionClaims, error) {
	token, err := j.ParseWithClaims(tokenString, &SessionClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.GameID == "" {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
