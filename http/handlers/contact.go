package handlers

import (
	"net/http"

	"career-guide/http/response"
	"career-guide/models"
	"career-guide/utils"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactResponse struct {
	Message     string `json:"message"`
	Success     bool   `json:"success"`
	EmailStatus string `json:"emailStatus,omitempty"`
}

// Contact stores a contact-form message and acknowledges it. Delivery
// problems never fail the request.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w)
		return
	}

	var req contactRequest
	if !decode(w, r, &req) {
		return
	}

	var v utils.Validator
	v.MinLength("name", req.Name, 2, "Name is required")
	v.Email("email", req.Email, "Valid email is required")
	v.MinLength("message", req.Message, 10, "Message must be at least 10 characters")
	if !v.Valid() {
		response.Validation(w, v.Errors())
		return
	}

	m, err := h.Contacts.Submit(r.Context(), models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	res := contactResponse{Success: true}
	switch m.EmailStatus {
	case models.EmailSent:
		res.Message = "Thank you for your message! We have sent you a confirmation email and will get back to you soon."
	case models.EmailFailed:
		res.Message = "Thank you for your message. We will get back to you soon!"
		res.EmailStatus = "Email notification may be delayed"
	default:
		res.Message = "Thank you for your message! We will get back to you soon."
	}
	response.SendJSON(w, http.StatusOK, res)
}
