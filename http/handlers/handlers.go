package handlers

import (
	"net/http"

	"career-guide/http/middleware"
	"career-guide/http/response"
	"career-guide/repository"
	"career-guide/services"
	"career-guide/utils"
)

// Handler serves the CareerGuide API routes.
type Handler struct {
	Users        *services.UserService
	Assessments  *services.AssessmentService
	Appointments *services.AppointmentService
	Contacts     *services.ContactService
	Blog         *repository.BlogPosts
	DeadLetters  *repository.DeadLetters
}

// Health reports that the API is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}
	response.Message(w, http.StatusOK, "CareerGuide API is running!")
}

// NotFound answers unmatched paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusNotFound, "Route not found")
}

// decode reads the JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := utils.DecodeJSONRequest(w, r, v); err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// callerID is only called behind RequireAuth.
func callerID(r *http.Request) string {
	id, _ := middleware.IdentityFrom(r.Context())
	return id.UserID
}
