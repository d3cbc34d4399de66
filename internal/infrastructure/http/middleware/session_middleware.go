package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/voxly/errors"
)

// SessionIDKey is the echo context key holding the validated session id
const SessionIDKey = "session_id"

// ErrorResponder writes an error through the caller's response envelope
type ErrorResponder func(c echo.Context, err error) error

// RequireSessionID rejects requests whose :id path parameter is not a UUID
// and stores the canonical id under SessionIDKey
func RequireSessionID(respond ErrorResponder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return respond(c, errors.ErrInvalidArgument("session id must be a valid UUID"))
			}
			c.Set(SessionIDKey, id.String())
			return next(c)
		}
	}
}

// SessionID returns the id stored by RequireSessionID, falling back to the raw path parameter
func SessionID(c echo.Context) string {
	if id, ok := c.Get(SessionIDKey).(string); ok {
		return id
	}
	return c.Param("id")
}
