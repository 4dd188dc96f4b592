package services

import (
	"context"

	"career-guide/auth"
	"career-guide/errors"
	"career-guide/logger"
	"career-guide/models"
	"career-guide/repository"
)

type AppointmentService struct {
	appointments *repository.Appointments
	users        *repository.Users
	mailer       Mailer
	events       *Events
}

func NewAppointmentService(appointments *repository.Appointments, users *repository.Users, mailer Mailer, events *Events) *AppointmentService {
	return &AppointmentService{appointments: appointments, users: users, mailer: mailer, events: events}
}

type BookingRequest struct {
	CounselorID string             `json:"counselorId"`
	Date        string             `json:"date"`
	TimeSlot    models.TimeSlot    `json:"timeSlot"`
	Type        models.SessionType `json:"type"`
	Notes       string             `json:"notes"`
}

// Book creates a pending appointment for studentID. The response embeds the
// counselor summary (null when the id is unknown) and keeps the student as
// a bare id. Notification emails are best-effort.
func (s *AppointmentService) Book(ctx context.Context, studentID string, req BookingRequest) (models.AppointmentResponse, error) {
	a, err := s.appointments.Create(ctx, models.Appointment{
		Student:   studentID,
		Counselor: req.CounselorID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Type:      req.Type,
		Notes:     map[string]string{"student": req.Notes},
	})
	if err != nil {
		return models.AppointmentResponse{}, errors.E(errors.Internal, "create appointment", err)
	}
	logger.Info("Appointment %s booked by %s with %s", a.ID, studentID, req.CounselorID)

	people := s.users.Summaries(ctx, studentID, req.CounselorID)
	student, counselor := people[studentID], people[req.CounselorID]

	s.notify(ctx, student, counselor, a)
	s.events.Emit(ctx, EventAppointmentBooked, a.ID, map[string]interface{}{
		"appointmentId": a.ID,
		"student":       studentID,
		"counselor":     req.CounselorID,
		"date":          a.Date,
		"type":          a.Type,
	})

	return a.WithCounselor(counselor), nil
}

func (s *AppointmentService) notify(ctx context.Context, student, counselor *models.UserSummary, a models.Appointment) {
	if student == nil || counselor == nil {
		return
	}
	for _, e := range []Email{
		BookingStudentEmail(student, counselor, a),
		BookingCounselorEmail(student, counselor, a),
	} {
		if err := s.mailer.Send(ctx, e); err != nil && !errors.Is(err, ErrEmailDisabled) {
			logger.Error("Booking email to %s failed: %v", e.To, err)
		}
	}
}

// ListFor returns the appointments visible to id, populated. Students see
// their own bookings, counselors the ones made with them, admins all.
func (s *AppointmentService) ListFor(ctx context.Context, id auth.Identity) []models.AppointmentResponse {
	var list []models.Appointment
	switch id.Role {
	case models.RoleStudent:
		list = s.appointments.ListForStudent(ctx, id.UserID)
	case models.RoleCounselor:
		list = s.appointments.ListForCounselor(ctx, id.UserID)
	case models.RoleAdmin:
		list = s.appointments.List(ctx)
	}
	return s.populate(ctx, list)
}

// All returns every appointment populated, for the admin export.
func (s *AppointmentService) All(ctx context.Context) []models.AppointmentResponse {
	return s.populate(ctx, s.appointments.List(ctx))
}

func (s *AppointmentService) populate(ctx context.Context, list []models.Appointment) []models.AppointmentResponse {
	out := make([]models.AppointmentResponse, 0, len(list))
	if len(list) == 0 {
		return out
	}
	ids := make([]string, 0, 2*len(list))
	for _, a := range list {
		ids = append(ids, a.Student, a.Counselor)
	}
	people := s.users.Summaries(ctx, ids...)
	for i := range list {
		out = append(out, list[i].Populate(people[list[i].Student], people[list[i].Counselor]))
	}
	return out
}
