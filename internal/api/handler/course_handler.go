package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openlearn/course-platform/internal/api/metrics"
	"github.com/openlearn/course-platform/internal/core/domain"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// CourseHandler handles HTTP requests for the course catalog.
type CourseHandler struct {
	courseService     ports.CourseService
	enrollmentService ports.EnrollmentService
}

func NewCourseHandler(courseService ports.CourseService, enrollmentService ports.EnrollmentService) *CourseHandler {
	return &CourseHandler{courseService: courseService, enrollmentService: enrollmentService}
}

type createCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Level       string `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
}

type updateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Level       *string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
}

type courseCountResponse struct {
	Count int64 `json:"count"`
}

// List handles GET /v1/courses with optional level/has_enrollments filters.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Param        level            query    string  false  "Course level"  Enums(BEGINNER, INTERMEDIATE, ADVANCED)
// @Param        has_enrollments  query    bool    false  "Only courses with (or without) enrollments"
// @Success      200  {array}  domain.Course
// @Router       /v1/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	filter := ports.CourseFilter{Level: c.QueryParam("level")}
	if raw := c.QueryParam("has_enrollments"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "has_enrollments must be a boolean")
		}
		filter.HasEnrollments = &v
	}

	courses, err := h.courseService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Get handles GET /v1/courses/:id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  domain.Course
// @Failure      404  {object}  map[string]string
// @Router       /v1/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courseService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /v1/courses.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Router       /v1/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.Create(c.Request().Context(), ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Level:       domain.CourseLevel(req.Level),
	})
	if err != nil {
		return err
	}

	metrics.CoursesCreatedTotal.WithLabelValues(string(course.Level)).Inc()
	return c.JSON(http.StatusCreated, course)
}

// Update handles PUT /v1/courses/:id. The acting user comes from the token
// and must be an enrolled professor of the course.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Course ID"
// @Param        body  body      updateCourseRequest  true  "Course patch"
// @Success      200   {object}  domain.Course
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateCourseInput{Title: req.Title, Description: req.Description}
	if req.Level != nil {
		level := domain.CourseLevel(*req.Level)
		input.Level = &level
	}

	course, err := h.courseService.Update(c.Request().Context(), c.Param("id"), input, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.CourseMutationsDeniedTotal.Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Delete handles DELETE /v1/courses/:id under the same professor guard as
// Update.
//
// @Summary      Delete a course
// @Tags         courses
// @Security     BearerAuth
// @Param        id  path  string  true  "Course ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.courseService.Delete(c.Request().Context(), c.Param("id"), actor.ID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.CourseMutationsDeniedTotal.Inc()
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/courses/:id/stats. Counts are computed fresh from
// enrollment rows on every request.
//
// @Summary      Course enrollment statistics
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course ID"
// @Success      200  {object}  domain.CourseStats
// @Failure      404  {object}  map[string]string
// @Router       /v1/courses/{id}/stats [get]
func (h *CourseHandler) Stats(c echo.Context) error {
	stats, err := h.courseService.GetStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Count handles GET /v1/courses/count.
//
// @Summary      Count courses
// @Tags         courses
// @Produce      json
// @Success      200  {object}  courseCountResponse
// @Router       /v1/courses/count [get]
func (h *CourseHandler) Count(c echo.Context) error {
	count, err := h.courseService.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courseCountResponse{Count: count})
}

// ListEnrollments handles GET /v1/courses/:id/enrollments.
//
// @Summary      List a course's enrollments
// @Tags         courses
// @Produce      json
// @Param        id   path     string  true  "Course ID"
// @Success      200  {array}  domain.Enrollment
// @Failure      404  {object}  map[string]string
// @Router       /v1/courses/{id}/enrollments [get]
func (h *CourseHandler) ListEnrollments(c echo.Context) error {
	enrollments, err := h.enrollmentService.ListByCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollments)
}
