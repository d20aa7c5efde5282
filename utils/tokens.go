package utils

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func signToken(userID uint, email, secret string, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateAccessToken(userID uint, email string) (string, error) {
	return signToken(userID, email, os.Getenv("JWT_ACCESS_SECRET"), AccessTokenTTL)
}

func GenerateRefreshToken(userID uint, email string) (string, error) {
	return signToken(userID, email, os.Getenv("JWT_REFRESH_SECRET"), RefreshTokenTTL)
}

func parseToken(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return parseToken(tokenString, os.Getenv("JWT_ACCESS_SECRET"))
}

func VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return parseToken(tokenString, os.Getenv("JWT_REFRESH_SECRET"))
}

// GenerateTokenPair issues a fresh access/refresh pair. Attaching the pair
// as cookies is a separate step so callers can persist the refresh token
// before the client ever sees it.
func GenerateTokenPair(userID uint, email string) (string, string, error) {
	accessToken, err := GenerateAccessToken(userID, email)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := GenerateRefreshToken(userID, email)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// AttachTokenCookies attaches an issued pair as httpOnly SameSite=Strict
// cookies. Secure is only set in production so local clients over plain HTTP
// still work.
func AttachTokenCookies(ctx *gin.Context, accessToken, refreshToken string) {
	secure := os.Getenv("APP_ENV") == "production"
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(accessCookie, accessToken, int(AccessTokenTTL.Seconds()), "/", "", secure, true)
	ctx.SetCookie(refreshCookie, refreshToken, int(RefreshTokenTTL.Seconds()), "/", "", secure, true)
}

func ClearTokenCookies(ctx *gin.Context) {
	secure := os.Getenv("APP_ENV") == "production"
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(accessCookie, "", -1, "/", "", secure, true)
	ctx.SetCookie(refreshCookie, "", -1, "/", "", secure, true)
}
