package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Principal is the authenticated caller taken from a Supabase access token
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	// Role is the Supabase token role ("authenticated", "service_role"), not a marketplace role.
	Role string `json:"role"`
}

type contextKey string

const principalContextKey contextKey = "authenticated_principal"

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string
}

// JWTMiddleware validates HS256 Supabase access tokens and stores the principal
// (the sub claim) in the request context.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Debug("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			claims := jwt.MapClaims{}
			_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(config.Secret), nil
			})
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			sub, _ := claims.GetSubject()
			if strings.TrimSpace(sub) == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token claims",
					"code":  "INVALID_CLAIMS",
				})
			}

			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			principal := &Principal{ID: sub, Email: email, Role: role}

			ctx := context.WithValue(c.Request().Context(), principalContextKey, principal)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("principal_id", sub)

			return next(c)
		}
	}
}

// GetPrincipalFromContext extracts the authenticated principal from the request context
func GetPrincipalFromContext(c echo.Context) (*Principal, error) {
	p, ok := c.Request().Context().Value(principalContextKey).(*Principal)
	if !ok || p == nil {
		return nil, fmt.Errorf("no authenticated principal found in context")
	}
	return p, nil
}

// RoleChecker answers marketplace role lookups
type RoleChecker interface {
	HasAnyRole(ctx context.Context, principalID string, roles ...model.Role) (bool, error)
}

// RequireRole allows the request through only when the authenticated principal
// holds at least one of roles. It must run after JWTMiddleware.
func RequireRole(checker RoleChecker, logger *zap.Logger, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := GetPrincipalFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authentication required",
					"code":  "AUTH_REQUIRED",
				})
			}

			ok, err := checker.HasAnyRole(c.Request().Context(), principal.ID, roles...)
			if err != nil {
				logger.Error("Role lookup failed",
					zap.String("principal_id", principal.ID),
					zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"error": "Role lookup unavailable",
					"code":  "STORAGE_UNAVAILABLE",
				})
			}
			if !ok {
				logger.Info("Principal lacks required role",
					zap.String("principal_id", principal.ID),
					zap.String("path", c.Request().URL.Path))
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "Insufficient role",
					"code":  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
