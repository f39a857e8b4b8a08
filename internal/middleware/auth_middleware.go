package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/utils"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks the session store for a live token.
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
}

// AuthMiddleware basic JWT authentication without the Redis session check.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errRes := parseAuthHeader(c)
			if errRes != nil {
				return errRes
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis additionally requires the token to be present in
// the Redis session store, so logout takes effect immediately.
func AuthMiddlewareWithRedis(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, tokenString, errRes := parseAuthHeader(c)
			if errRes != nil {
				return errRes
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			userID, err := tokenValidator.ValidateTokenFromRedis(ctx, tokenString)
			if err != nil {
				logger.Error("Token not found in Redis", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Token expired or invalid", nil,
				))
			}

			if userID != claims.UserID {
				logger.Error("UserID mismatch between JWT and Redis")
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil {
				logger.Error("Invalid user ID in token", err)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set("user_id", uint(userIDUint))
			c.Set("role", claims.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

// parseAuthHeader validates the bearer token and returns its claims. The
// returned error is an echo.HTTPError rendered by the global error handler.
func parseAuthHeader(c echo.Context) (*utils.JWTClaims, string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
	}

	tokenString := tokenParts[1]

	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusForbidden, "Status Forbidden")
	}

	if time.Now().After(expAt.Time) {
		return nil, "", echo.NewHTTPError(http.StatusForbidden, "Token expired")
	}

	return claims, tokenString, nil
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

// VendorOrAdmin allows approved vendors and admins through; plain customers
// are rejected.
func VendorOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || (role != domain.RoleVendor && role != domain.RoleAdmin) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Vendor access required", nil,
				))
			}

			return next(c)
		}
	}
}

func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			loggedInUserID, ok := c.Get("user_id").(uint)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "User not authenticated", nil,
				))
			}

			role, ok := c.Get("role").(string)
			if !ok {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid role", nil,
				))
			}

			if role == domain.RoleAdmin {
				return next(c)
			}

			requestedID := c.Param("id")
			requestedIDUint, err := strconv.ParseUint(requestedID, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, jsonres.Error(
					"BAD_REQUEST", "Invalid user ID", nil,
				))
			}

			if uint(requestedIDUint) != loggedInUserID {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "You can only access your own data", nil,
				))
			}

			return next(c)
		}
	}
}
