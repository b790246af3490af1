package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pradiptha/lokapasar/internal/pkg/models"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("token not valid for this use")
)

// TokenPair carries the freshly minted access and refresh tokens
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  int64
	RefreshExpiresAt int64
}

// GenerateToken creates a single HS256 token for the given user
func GenerateToken(userID uuid.UUID, email, use string, ttl time.Duration, cfg *models.Config) (string, int64, error) {
	expiresAt := time.Now().Add(ttl).Unix()

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"use":     use,
		"exp":     expiresAt,
		"iss":     cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// GenerateTokenPair creates the access/refresh token pair for a login
func GenerateTokenPair(userID uuid.UUID, email string, cfg *models.Config) (*TokenPair, error) {
	access, accessExp, err := GenerateToken(userID, email, "access",
		time.Duration(cfg.JWT.AccessExpiration)*time.Minute, cfg)
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := GenerateToken(userID, email, "refresh",
		time.Duration(cfg.JWT.RefreshExpiration)*time.Minute, cfg)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ValidateToken validates a token and returns its claims. The use argument
// pins which kind of token is acceptable, so an access token cannot be
// replayed as a refresh token.
func ValidateToken(tokenString, use, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if tokenUse, _ := claims["use"].(string); tokenUse != use {
		return nil, ErrWrongTokenUse
	}

	return claims, nil
}
