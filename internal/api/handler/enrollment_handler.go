package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlearn/course-platform/internal/api/metrics"
	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// EnrollmentHandler handles HTTP requests for course membership.
type EnrollmentHandler struct {
	enrollmentService ports.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

type enrollRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=STUDENT PROFESSOR"`
}

type unenrollRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=STUDENT PROFESSOR"`
}

// List handles GET /v1/enrollments.
//
// @Summary      List enrollments
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Enrollment
// @Router       /v1/enrollments [get]
func (h *EnrollmentHandler) List(c echo.Context) error {
	enrollments, err := h.enrollmentService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollments)
}

// Get handles GET /v1/enrollments/:id.
//
// @Summary      Get an enrollment
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Enrollment ID"
// @Success      200  {object}  domain.Enrollment
// @Failure      404  {object}  map[string]string
// @Router       /v1/enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c echo.Context) error {
	enrollment, err := h.enrollmentService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}

// Enroll handles POST /v1/enrollments.
//
// @Summary      Enroll a user in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      enrollRequest  true  "Enrollment details"
// @Success      201   {object}  domain.Enrollment
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/enrollments [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request().Context(), ports.EnrollmentInput{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			metrics.EnrollmentConflictsTotal.Inc()
		}
		return err
	}

	metrics.EnrollmentsCreatedTotal.WithLabelValues(string(enrollment.Role)).Inc()
	return c.JSON(http.StatusCreated, enrollment)
}

// Unenroll handles DELETE /v1/enrollments.
//
// @Summary      Remove a user from a course
// @Tags         enrollments
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  unenrollRequest  true  "Enrollment pair"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/enrollments [delete]
func (h *EnrollmentHandler) Unenroll(c echo.Context) error {
	var req unenrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.enrollmentService.Unenroll(c.Request().Context(), req.UserID, req.CourseID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRole handles PATCH /v1/enrollments/:id/role — the only way to switch
// between STUDENT and PROFESSOR.
//
// @Summary      Change an enrollment's role
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Enrollment ID"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  domain.Enrollment
// @Failure      404   {object}  map[string]string
// @Router       /v1/enrollments/{id}/role [patch]
func (h *EnrollmentHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollmentService.UpdateRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollment)
}
