package repository

import (
	"context"

	"career-guide/models"
)

const appointmentsCollection = "appointments"

type Appointments struct {
	c *Collection[models.Appointment, *models.Appointment]
}

func NewAppointments(store *Store) *Appointments {
	return &Appointments{c: NewCollection[models.Appointment](store, appointmentsCollection)}
}

// Create books a new appointment. Status is always pending.
func (r *Appointments) Create(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	a.Status = models.StatusPending
	if a.Notes == nil {
		a.Notes = map[string]string{}
	}
	return r.c.Create(ctx, a)
}

func (r *Appointments) List(ctx context.Context) []models.Appointment {
	return r.c.Filter(ctx, func(*models.Appointment) bool { return true })
}

func (r *Appointments) ListForStudent(ctx context.Context, studentID string) []models.Appointment {
	return r.c.Filter(ctx, func(a *models.Appointment) bool { return a.Student == studentID })
}

func (r *Appointments) ListForCounselor(ctx context.Context, counselorID string) []models.Appointment {
	return r.c.Filter(ctx, func(a *models.Appointment) bool { return a.Counselor == counselorID })
}
