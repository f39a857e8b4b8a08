package middleware

import (
	"net/http"

	"github.com/Motasaith/Abdul-Shop-sub001/pkg/logger"
	jsonres "github.com/Motasaith/Abdul-Shop-sub001/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders unhandled errors and panics caught by the Recover
// middleware as a uniform JSON envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
