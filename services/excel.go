package services

import (
	"fmt"
	"io"

	"career-guide/models"

	"github.com/xuri/excelize/v2"
)

const appointmentsSheet = "Appointments"

var appointmentHeaders = []string{
	"ID", "Date", "Start", "End", "Type", "Status",
	"Student", "Student Email", "Counselor", "Counselor Email",
	"Notes", "Created At",
}

// ExportAppointments writes one row per appointment as an XLSX workbook.
func ExportAppointments(w io.Writer, rows []models.AppointmentResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", appointmentsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(appointmentsSheet, "A1", &appointmentHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, a := range rows {
		student, _ := a.Student.(*models.UserSummary)
		row := []interface{}{
			a.ID, a.Date, a.TimeSlot.Start, a.TimeSlot.End, string(a.Type), string(a.Status),
			nameOf(student), emailOf(student), nameOf(a.Counselor), emailOf(a.Counselor),
			a.Notes["student"], a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(appointmentsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(appointmentsSheet, "A", "L", 18); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func nameOf(u *models.UserSummary) string {
	if u == nil {
		return ""
	}
	return u.Name
}

func emailOf(u *models.UserSummary) string {
	if u == nil {
		return ""
	}
	return u.Email
}
