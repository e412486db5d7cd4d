package middleware

import (
	"errors"
	"net/http"
	"strings"

	"loan-tracker/pkg/id"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// JWTAuth verifies an HS256 bearer token and stores its subject as the
// caller's user id. Tokens are issued elsewhere.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			sub, err := subject(raw, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			SetUserID(c, sub)
			return next(c)
		}
	}
}

func SetUserID(c echo.Context, userID string) { c.Set(userIDKey, userID) }

// UserID returns the authenticated caller, or "" outside JWTAuth.
func UserID(c echo.Context) string {
	s, _ := c.Get(userIDKey).(string)
	return s
}

func bearerToken(h string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(h), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

func subject(raw string, secret []byte) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	sub = strings.ToLower(sub)
	if !id.Valid(sub) {
		return "", errors.New("subject is not a user id")
	}
	return sub, nil
}
