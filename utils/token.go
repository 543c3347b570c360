package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"organicroots/config"
)

const (
	AuthCookieName = "auth_token"
	tokenLifetime  = 7 * 24 * time.Hour
)

type SessionClaims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// IssueToken signs a 7-day session credential for the given identity.
func IssueToken(userID, email, role, fullName string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email:    email,
		Role:     role,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.AuthSecret))
}

// VerifyToken validates signature and expiry. Every failure mode collapses
// to an error; callers treat any error as "no session".
func VerifyToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.AuthSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// SetAuthCookie places the token in the session cookie: httpOnly,
// SameSite=Lax, Secure outside development, site-wide, 7-day max-age.
func SetAuthCookie(c *gin.Context, token string) {
	secure := config.AppConfig.AppEnv == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, token, int(tokenLifetime.Seconds()), "/", "", secure, true)
}

func ClearAuthCookie(c *gin.Context) {
	secure := config.AppConfig.AppEnv == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", secure, true)
}
