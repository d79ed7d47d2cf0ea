package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlearn/course-platform/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth middleware.
// Presence proves the middleware ran; routes that reach a handler without it
// are misconfigured and fail with 401 rather than proceed anonymously.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
