package services

import (
	"fmt"
	"html"

	"career-guide/models"
)

// BookingStudentEmail confirms a booking request to the student.
func BookingStudentEmail(student, counselor *models.UserSummary, a models.Appointment) Email {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2563eb;">Appointment Requested</h2>
    <p>Dear <strong>%s</strong>,</p>
    <p>Your %s session with <strong>%s</strong> has been requested and is pending confirmation.</p>
    <div style="background-color: #eff6ff; padding: 15px; border-left: 4px solid #2563eb;">
        <p><strong>Date:</strong> %s</p>
        <p><strong>Time:</strong> %s - %s</p>
    </div>
    <p>Best regards,<br/>Career Counseling Team</p>
</div>`,
		html.EscapeString(student.Name),
		html.EscapeString(string(a.Type)),
		html.EscapeString(counselor.Name),
		html.EscapeString(a.Date),
		html.EscapeString(a.TimeSlot.Start),
		html.EscapeString(a.TimeSlot.End))

	return Email{
		To:      student.Email,
		Subject: "Your counseling session request - " + a.Date,
		HTML:    body,
	}
}

// BookingCounselorEmail tells the counselor a student booked them.
func BookingCounselorEmail(student, counselor *models.UserSummary, a models.Appointment) Email {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2563eb;">New Appointment Request</h2>
    <p>Dear <strong>%s</strong>,</p>
    <p><strong>%s</strong> (%s) requested a %s session.</p>
    <div style="background-color: #eff6ff; padding: 15px; border-left: 4px solid #2563eb;">
        <p><strong>Date:</strong> %s</p>
        <p><strong>Time:</strong> %s - %s</p>
        <p><strong>Student notes:</strong> %s</p>
    </div>
</div>`,
		html.EscapeString(counselor.Name),
		html.EscapeString(student.Name),
		html.EscapeString(student.Email),
		html.EscapeString(string(a.Type)),
		html.EscapeString(a.Date),
		html.EscapeString(a.TimeSlot.Start),
		html.EscapeString(a.TimeSlot.End),
		escapeMultiline(a.Notes["student"]))

	return Email{
		To:      counselor.Email,
		Subject: "New appointment request from " + student.Name,
		HTML:    body,
	}
}
