package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blogfolio/blogfolio/config"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims embeds the user identity directly in the token so clients can render
// the author without an extra lookup.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is the access/refresh pair issued on authentication.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// GenerateTokenPair issues an access and a refresh token for the user.
func GenerateTokenPair(userID uint, username, email, fullName string) (TokenPair, error) {
	cfg := config.Get()

	access, err := signToken(userID, username, email, fullName, TokenTypeAccess,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, cfg.JWTSecret)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := signToken(userID, username, email, fullName, TokenTypeRefresh,
		time.Duration(cfg.RefreshTokenTTLHours)*time.Hour, cfg.JWTSecret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func signToken(userID uint, username, email, fullName, tokenType string, ttl time.Duration, secret string) (string, error) {
	claims := Claims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		FullName:  fullName,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ParseRefreshToken validates a JWT and additionally requires it to be a
// refresh token.
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	claims, err := ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, errors.New("token is not a refresh token")
	}
	return claims, nil
}
