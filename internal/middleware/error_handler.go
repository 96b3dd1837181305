package middleware

import (
	"net/http"

	"commCoach/pkg/logger"

	jsonres "commCoach/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler converts unhandled errors into the standard response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	body := jsonres.Error(http.StatusText(code), message, nil)
	if err := c.JSON(code, body); err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
