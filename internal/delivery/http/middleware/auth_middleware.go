package middleware

import (
	"context"
	"errors"
	"strings"

	"hr-recruitment/internal/domain/hruser"
	"hr-recruitment/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxUserKey = "hr_user"

// Authenticator resolves a session token to the acting staff member.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (hruser.User, error)
}

type AuthMiddleware struct {
	auth       Authenticator
	cookieName string
}

func NewAuthMiddleware(auth Authenticator, cookieName string) *AuthMiddleware {
	if cookieName == "" {
		cookieName = "authToken"
	}
	return &AuthMiddleware{auth: auth, cookieName: cookieName}
}

// Middleware accepts the session cookie first and falls back to a bearer header.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimSpace(c.Cookies(m.cookieName))
		if token == "" {
			var ok bool
			token, ok = bearerTokenFromHeader(c.Get("Authorization"))
			if !ok {
				return NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
			}
		}

		usr, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrTokenExpired):
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			case errors.Is(err, usecase.ErrUnauthorized):
				return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}

		c.Locals(CtxUserKey, usr)
		return c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not listed.
func RequireRole(roles ...hruser.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		usr, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Authentication required", nil, nil)
		}
		for _, r := range roles {
			if usr.Role == r {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Insufficient permissions", nil, nil)
	}
}

func CurrentUser(c fiber.Ctx) (hruser.User, bool) {
	usr, ok := c.Locals(CtxUserKey).(hruser.User)
	return usr, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
