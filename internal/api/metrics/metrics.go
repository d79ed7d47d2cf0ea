// Package metrics defines the custom Prometheus metrics for the course
// platform API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "courseplatform"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successfully created accounts.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsCreatedTotal counts new enrollments.
// Label:
//   - role: "STUDENT" or "PROFESSOR"
var EnrollmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_created_total",
		Help:      "Total number of enrollments created, by role.",
	},
	[]string{"role"},
)

// EnrollmentConflictsTotal counts enroll attempts rejected because the
// (user, course) pair already held a row.
var EnrollmentConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollment_conflicts_total",
		Help:      "Total number of duplicate-enrollment rejections.",
	},
)

// ── Course metrics ────────────────────────────────────────────────────────────

// CoursesCreatedTotal counts new catalog entries.
// Label:
//   - level: "BEGINNER", "INTERMEDIATE", or "ADVANCED"
var CoursesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_created_total",
		Help:      "Total number of courses created, by level.",
	},
	[]string{"level"},
)

// CourseMutationsDeniedTotal counts course update/delete attempts rejected by
// the professor-role gate.
var CourseMutationsDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_mutations_denied_total",
		Help:      "Total number of course mutations denied by the role gate.",
	},
)
