package jwtauth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cattle-scoring/internal/ports/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Issuer emite y verifica pares access/refresh firmados con HS256.
// Reemplaza la verificación delegada a un servicio externo: aquí el
// backend es su propia autoridad de tokens.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssuePair emite un access token y un refresh token para el usuario.
func (i *Issuer) IssuePair(userID, username string) (access string, refresh string, err error) {
	access, err = i.sign(userID, username, tokenTypeAccess, i.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = i.sign(userID, username, tokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Refresh valida un refresh token y emite un nuevo access token.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	claims, err := i.parse(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", ErrInvalidToken
	}
	return i.sign(claims.Subject, claims.Username, tokenTypeAccess, i.accessTTL)
}

// Verify implementa auth.AuthVerifier. Solo acepta access tokens:
// un refresh token no sirve para autorizar requests.
func (i *Issuer) Verify(_ context.Context, token string) (auth.Claims, error) {
	claims, err := i.parse(token)
	if err != nil {
		return auth.Claims{}, err
	}
	if claims.TokenType != tokenTypeAccess {
		return auth.Claims{}, ErrInvalidToken
	}
	return auth.Claims{
		UserID:   claims.Subject,
		Username: claims.Username,
	}, nil
}

func (i *Issuer) sign(userID, username, typ string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := tokenClaims{
		Username:  username,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *Issuer) parse(token string) (*tokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
