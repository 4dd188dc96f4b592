package handlers

import (
	"net/http"

	"career-guide/http/response"
	"career-guide/models"
	"career-guide/services"
	"career-guide/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a student or counselor account and returns a token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w)
		return
	}

	var req services.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	var v utils.Validator
	v.MinLength("name", req.Name, 2, "Name is required")
	v.Email("email", req.Email, "Please include a valid email")
	v.Check(len(req.Password) >= 6, "password", "Please enter a password with 6 or more characters")
	v.Check(req.Role == "" || req.Role == models.RoleStudent || req.Role == models.RoleCounselor,
		"role", "Role must be student or counselor")
	if !v.Valid() {
		response.Validation(w, v.Errors())
		return
	}

	res, err := h.Users.Register(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SendJSON(w, http.StatusCreated, res)
}

// Login exchanges credentials for a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w)
		return
	}

	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	var v utils.Validator
	v.Email("email", req.Email, "Please include a valid email")
	v.Check(req.Password != "", "password", "Password is required")
	if !v.Valid() {
		response.Validation(w, v.Errors())
		return
	}

	res, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SendJSON(w, http.StatusOK, res)
}

// Me returns the authenticated user without the password hash.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}
	h.currentUser(w, r)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Get(r.Context(), callerID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SendJSON(w, http.StatusOK, u)
}

// Profile reads (GET) or shallow-merges (PUT) the caller's profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.currentUser(w, r)
	case http.MethodPut:
		var req services.ProfileUpdate
		if !decode(w, r, &req) {
			return
		}
		if req.Name != nil {
			var v utils.Validator
			v.MinLength("name", *req.Name, 2, "Name is required")
			if !v.Valid() {
				response.Validation(w, v.Errors())
				return
			}
		}

		u, err := h.Users.UpdateProfile(r.Context(), callerID(r), req)
		if err != nil {
			response.FromError(w, err)
			return
		}
		response.SendJSON(w, http.StatusOK, u)
	default:
		response.MethodNotAllowed(w)
	}
}

// Counselors lists active counselors.
func (h *Handler) Counselors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}
	response.SendJSON(w, http.StatusOK, h.Users.Counselors(r.Context()))
}
