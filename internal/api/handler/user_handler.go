package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlearn/course-platform/internal/core/ports"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	userService       ports.UserService
	enrollmentService ports.EnrollmentService
}

func NewUserHandler(userService ports.UserService, enrollmentService ports.EnrollmentService) *UserHandler {
	return &UserHandler{userService: userService, enrollmentService: enrollmentService}
}

type updateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /v1/users/:id. Users may only update themselves.
//
// @Summary      Update a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Profile patch"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	if actor.ID != c.Param("id") {
		return echo.NewHTTPError(http.StatusForbidden, "users may only update their own profile")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id. Users may only delete themselves.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	if actor.ID != c.Param("id") {
		return echo.NewHTTPError(http.StatusForbidden, "users may only delete their own account")
	}

	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEnrollments handles GET /v1/users/:id/enrollments.
//
// @Summary      List a user's enrollments
// @Tags         users
// @Produce      json
// @Param        id   path     string  true  "User ID"
// @Success      200  {array}  domain.Enrollment
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id}/enrollments [get]
func (h *UserHandler) ListEnrollments(c echo.Context) error {
	enrollments, err := h.enrollmentService.ListByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollments)
}
