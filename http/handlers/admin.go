package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"career-guide/http/response"
	"career-guide/logger"
	"career-guide/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportAppointments downloads every appointment as an XLSX workbook.
func (h *Handler) ExportAppointments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}

	var buf bytes.Buffer
	if err := services.ExportAppointments(&buf, h.Appointments.All(r.Context())); err != nil {
		response.FromError(w, err)
		return
	}

	filename := fmt.Sprintf("appointments-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("Error writing appointments export: %v", err)
	}
}

// ListContacts returns stored contact-form messages.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}
	response.SendJSON(w, http.StatusOK, h.Contacts.List(r.Context()))
}

// ListDeadLetters returns messages that exhausted their publish retries.
func (h *Handler) ListDeadLetters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}
	response.SendJSON(w, http.StatusOK, h.DeadLetters.List(r.Context()))
}
