package middleware

import (
	"commCoach/business/engine"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceID assigns every request a trace id, honoring one supplied by the
// caller via X-Request-ID. The id is stored on the request context for the
// engine's trace logging and echoed back in the response header.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(echo.HeaderXRequestID)
			if tid == "" {
				tid = uuid.New().String()
			}

			ctx := engine.ContextWithTraceID(c.Request().Context(), tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, tid)

			return next(c)
		}
	}
}
