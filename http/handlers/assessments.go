package handlers

import (
	"bytes"
	"net/http"

	"career-guide/http/response"
	"career-guide/logger"
	"career-guide/models"
	"career-guide/services"
)

type scoreRequest struct {
	Answers map[string]models.Option `json:"answers"`
}

type submitResponse struct {
	Message string      `json:"message"`
	Results interface{} `json:"results"`
}

// ListAssessments returns the active assessments.
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}
	response.SendJSON(w, http.StatusOK, h.Assessments.List(r.Context()))
}

// ScoreAssessment runs the scoring engine over the posted answers.
func (h *Handler) ScoreAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w)
		return
	}

	var req scoreRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := services.Score(req.Answers)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SendJSON(w, http.StatusOK, res)
}

// SubmitAssessment stores a result on the caller's history.
func (h *Handler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.MethodNotAllowed(w)
		return
	}

	var req services.SubmitRequest
	if !decode(w, r, &req) {
		return
	}
	results, err := h.Assessments.Submit(r.Context(), callerID(r), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SendJSON(w, http.StatusOK, submitResponse{
		Message: "Assessment results saved successfully",
		Results: results,
	})
}

// AssessmentResults lists the caller's results, oldest first.
func (h *Handler) AssessmentResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}

	results, err := h.Assessments.Results(r.Context(), callerID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.SendJSON(w, http.StatusOK, results)
}

// AssessmentReport renders the caller's latest result as a PDF.
func (h *Handler) AssessmentReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w)
		return
	}

	u, result, err := h.Assessments.Latest(r.Context(), callerID(r))
	if err != nil {
		response.FromError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := services.RenderAssessmentReport(&buf, u, result); err != nil {
		response.FromError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="assessment-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("Error writing assessment report: %v", err)
	}
}
