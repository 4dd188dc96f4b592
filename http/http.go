package http

import (
	"net/http"

	"career-guide/http/handlers"
	"career-guide/http/middleware"
	"career-guide/logger"
	"career-guide/models"
)

// SetupRoutes registers every API route on a fresh mux and wraps it in the
// shared middleware: panic recovery, request logging, CORS and preflight.
func SetupRoutes(h *handlers.Handler, guard *middleware.Guard, limiter *middleware.RateLimiter, clientURL string, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", h.Health)

	// Auth & profile
	mux.HandleFunc("/api/auth/register", middleware.Methods(limiter.Limit(h.Register), http.MethodPost))
	mux.HandleFunc("/api/auth/login", middleware.Methods(limiter.Limit(h.Login), http.MethodPost))
	mux.HandleFunc("/api/auth/me", middleware.Methods(guard.RequireAuth(h.Me), http.MethodGet))
	mux.HandleFunc("/api/users/profile", middleware.Methods(guard.RequireAuth(h.Profile), http.MethodGet, http.MethodPut))

	// Assessments
	mux.HandleFunc("/api/assessments", h.ListAssessments)
	mux.HandleFunc("/api/assessments/score", h.ScoreAssessment)
	mux.HandleFunc("/api/assessments/submit", middleware.Methods(guard.RequireAuth(h.SubmitAssessment), http.MethodPost))
	mux.HandleFunc("/api/assessments/results", middleware.Methods(guard.RequireAuth(h.AssessmentResults), http.MethodGet))
	mux.HandleFunc("/api/assessments/report", middleware.Methods(guard.RequireAuth(h.AssessmentReport), http.MethodGet))

	// Appointments & counselors
	mux.HandleFunc("/api/appointments", middleware.Methods(guard.RequireAuth(h.ManageAppointments), http.MethodGet, http.MethodPost))
	mux.HandleFunc("/api/counselors", h.Counselors)

	// Content
	mux.HandleFunc("/api/blog", h.ListBlog)
	mux.HandleFunc("/api/blog/{id}", h.GetBlogPost)
	mux.HandleFunc("/api/contact", middleware.Methods(limiter.Limit(h.Contact), http.MethodPost))

	// Admin
	mux.HandleFunc("/api/admin/appointments/export", middleware.Methods(guard.RequireRole(h.ExportAppointments, models.RoleAdmin), http.MethodGet))
	mux.HandleFunc("/api/admin/contacts", middleware.Methods(guard.RequireRole(h.ListContacts, models.RoleAdmin), http.MethodGet))
	mux.HandleFunc("/api/admin/dead-letters", middleware.Methods(guard.RequireRole(h.ListDeadLetters, models.RoleAdmin), http.MethodGet))

	mux.HandleFunc("/", h.NotFound)

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogger(log),
		middleware.CORS(clientURL),
		middleware.Preflight,
	)
}
