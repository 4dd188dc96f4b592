package handlers

import (
	"net/http"

	"career-guide/http/middleware"
	"career-guide/http/response"
	"career-guide/services"
	"career-guide/utils"
)

// ManageAppointments lists the caller's appointments (GET) or books one (POST).
func (h *Handler) ManageAppointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id, _ := middleware.IdentityFrom(r.Context())
		response.SendJSON(w, http.StatusOK, h.Appointments.ListFor(r.Context(), id))
	case http.MethodPost:
		h.bookAppointment(w, r)
	default:
		response.MethodNotAllowed(w)
	}
}

func (h *Handler) bookAppointment(w http.ResponseWriter, r *http.Request) {
	var req services.BookingRequest
	if !decode(w, r, &req) {
		return
	}

	var v utils.Validator
	v.Required("counselorId", req.CounselorID, "Counselor is required")
	v.Date("date", req.Date, "Valid date is required")
	v.Required("timeSlot.start", req.TimeSlot.Start, "Start time is required")
	v.Required("timeSlot.end", req.TimeSlot.End, "End time is required")
	v.Check(req.Type.Valid(), "type", "Invalid session type")
	if !v.Valid() {
		response.Validation(w, v.Errors())
		return
	}

	a, err := h.Appointments.Book(r.Context(), callerID(r), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SendJSON(w, http.StatusCreated, a)
}
