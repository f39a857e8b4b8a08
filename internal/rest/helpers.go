package rest

import (
	"net/http"
	"strings"

	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"

	"github.com/labstack/echo/v4"
)

// actorFromContext pulls the authenticated identity the auth middleware
// stored on the request. The returned error is an echo.HTTPError so the
// global error handler renders the envelope.
func actorFromContext(c echo.Context) (uint, string, error) {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	role, ok := c.Get("role").(string)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusForbidden, "Invalid role")
	}

	return userID, role, nil
}

// serviceErrorJSON maps service layer errors onto HTTP status codes by
// message convention: "forbidden" prefixed errors become 403, "not found"
// becomes 404, recognized validation messages become 400. Anything else is
// treated as an infrastructure failure: logged server-side and surfaced as
// an opaque 500 so driver or backend details never reach the client.
func serviceErrorJSON(c echo.Context, err error) error {
	msg := err.Error()

	switch {
	case strings.HasPrefix(msg, "forbidden"):
		return c.JSON(http.StatusForbidden, jsonres.Error("FORBIDDEN", msg, nil))
	case strings.Contains(msg, "not found"):
		return c.JSON(http.StatusNotFound, jsonres.Error("NOT_FOUND", msg, nil))
	case isClientFault(msg):
		return c.JSON(http.StatusBadRequest, jsonres.Error("BAD_REQUEST", msg, nil))
	default:
		logger.Error("Unhandled service error", err)
		return c.JSON(http.StatusInternalServerError, jsonres.Error(
			"INTERNAL_SERVER_ERROR", "Something went wrong", nil,
		))
	}
}

// isClientFault recognizes the lowercase validation messages the business
// layer produces for rejected input. Repository failures are wrapped with a
// "failed to" prefix and never qualify.
func isClientFault(msg string) bool {
	if strings.HasPrefix(msg, "failed to") {
		return false
	}

	for _, marker := range []string{
		"invalid", "required", "must", "cannot",
		"already", "insufficient", "not available", "expired", "missing",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
