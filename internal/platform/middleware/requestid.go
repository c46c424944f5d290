package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RequestIDHeader = "X-Request-ID"

const requestIDContextKey = "request_id"

// RequestID returns Echo middleware that assigns a request ID to every
// request. An ID supplied by the client in X-Request-ID is preserved so that
// the web frontend can correlate its own traces with server logs; otherwise a
// new UUID is generated. The ID is echoed back in the response header and
// exposed to the other middleware through ContextRequestID.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set(requestIDContextKey, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}

// ContextRequestID returns the ID assigned by RequestID, or "" when that
// middleware did not run for this request.
func ContextRequestID(c echo.Context) string {
	rid, _ := c.Get(requestIDContextKey).(string)
	return rid
}
