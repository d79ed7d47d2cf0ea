package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlearn/course-platform/internal/core/access"
	"github.com/openlearn/course-platform/internal/core/ports"
)

// AccessHandler exposes the advisory gate hints so UIs can mirror the server
// policy without re-deriving it. Nothing here grants permissions: the service
// layer re-checks roles on every mutation.
type AccessHandler struct {
	enrollmentService ports.EnrollmentService
}

func NewAccessHandler(enrollmentService ports.EnrollmentService) *AccessHandler {
	return &AccessHandler{enrollmentService: enrollmentService}
}

type accessResponse struct {
	CourseID         string `json:"course_id"`
	Role             string `json:"role,omitempty"`
	Enrolled         bool   `json:"enrolled"`
	CanEdit          bool   `json:"can_edit"`
	CanDelete        bool   `json:"can_delete"`
	CanEnroll        bool   `json:"can_enroll"`
	CanUnenroll      bool   `json:"can_unenroll"`
	CanViewDetails   bool   `json:"can_view_details"`
	IsProfessorOfAny bool   `json:"is_professor_of_any"`
	IsStudentOfAny   bool   `json:"is_student_of_any"`
}

// Me handles GET /v1/me/access?course_id=... and returns the current user's
// gate hints for that course.
//
// @Summary      UI gate hints for the current user
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        course_id  query     string  true  "Course ID"
// @Success      200        {object}  accessResponse
// @Failure      401        {object}  map[string]string
// @Router       /v1/me/access [get]
func (h *AccessHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	courseID := c.QueryParam("course_id")
	if courseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "course_id is required")
	}

	enrollments, err := h.enrollmentService.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	profile := access.Profile{UserID: user.ID}
	for _, e := range enrollments {
		profile.Enrollments = append(profile.Enrollments, *e)
	}

	resp := accessResponse{
		CourseID:         courseID,
		Enrolled:         profile.IsEnrolledIn(courseID),
		CanEdit:          profile.CanEditCourse(courseID),
		CanDelete:        profile.CanDeleteCourse(courseID),
		CanEnroll:        profile.CanEnrollIn(courseID),
		CanUnenroll:      profile.CanUnenrollFrom(courseID),
		CanViewDetails:   profile.CanViewCourseDetails(courseID),
		IsProfessorOfAny: profile.IsProfessor(),
		IsStudentOfAny:   profile.IsStudent(),
	}
	if role, ok := profile.RoleIn(courseID); ok {
		resp.Role = string(role)
	}

	return c.JSON(http.StatusOK, resp)
}
