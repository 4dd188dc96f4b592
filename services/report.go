package services

import (
	"fmt"
	"io"
	"strings"

	"career-guide/models"

	"github.com/jung-kurt/gofpdf"
)

// RenderAssessmentReport writes a one-page PDF summary of result for u.
func RenderAssessmentReport(w io.Writer, u models.PublicUser, result models.AssessmentResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Career Assessment Report")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 8, tr(fmt.Sprintf("Name: %s", u.Name)))
	pdf.Ln(8)
	pdf.Cell(40, 8, tr(fmt.Sprintf("Email: %s", u.Email)))
	pdf.Ln(8)
	pdf.Cell(40, 8, fmt.Sprintf("Completed: %s", result.CompletedAt.Format("January 2, 2006")))
	pdf.Ln(8)
	pdf.Cell(40, 8, fmt.Sprintf("Score: %g", result.Score))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(40, 8, "Recommended careers")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	if len(result.Recommendations) == 0 {
		pdf.Cell(40, 8, "No recommendations recorded.")
		pdf.Ln(8)
	}
	for i, r := range result.Recommendations {
		pdf.Cell(40, 8, tr(fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(r))))
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, "Book a session with one of our counselors to talk through these options.", "", "", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("error generating assessment report PDF: %w", err)
	}
	return nil
}
