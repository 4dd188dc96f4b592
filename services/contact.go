package services

import (
	"context"
	"strings"
	"time"

	"career-guide/errors"
	"career-guide/logger"
	"career-guide/models"
	"career-guide/repository"
)

// ContactService stores contact form submissions and notifies both sides.
type ContactService struct {
	contacts *repository.Contacts
	mailer   Mailer
	admin    string
	events   *Events
	now      func() time.Time
}

func NewContactService(contacts *repository.Contacts, mailer Mailer, admin string, events *Events) *ContactService {
	return &ContactService{
		contacts: contacts,
		mailer:   mailer,
		admin:    admin,
		events:   events,
		now:      time.Now,
	}
}

// Submit persists the message, then sends the admin notification and the
// sender confirmation. Only a storage failure is returned; the delivery
// outcome is recorded in the returned message's EmailStatus.
func (s *ContactService) Submit(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.EmailStatus = models.EmailPending

	stored, err := s.contacts.Create(ctx, m)
	if err != nil {
		return models.ContactMessage{}, errors.E(errors.Internal, "save contact message", err)
	}
	logger.Info("Contact form submission from %s", stored.Email)

	status := s.dispatch(ctx, stored)
	updated, found, err := s.contacts.Update(ctx, stored.ID, models.ContactPatch{EmailStatus: &status})
	if err != nil || !found {
		// the message itself is saved; keep going with the in-memory copy
		logger.Error("Failed to record email status for contact %s: %v", stored.ID, err)
		stored.EmailStatus = status
		updated = stored
	}

	s.events.Emit(ctx, EventContactSubmitted, stored.ID, map[string]interface{}{
		"contactId":   stored.ID,
		"email":       stored.Email,
		"emailStatus": status,
	})
	return updated, nil
}

func (s *ContactService) dispatch(ctx context.Context, m models.ContactMessage) string {
	at := s.now()
	for _, e := range []Email{
		ContactNotificationEmail(s.admin, m, at),
		ContactConfirmationEmail(m, at),
	} {
		if err := s.mailer.Send(ctx, e); err != nil {
			if errors.Is(err, ErrEmailDisabled) {
				return models.EmailDisabled
			}
			logger.Error("Email sending error for contact %s: %v", m.ID, err)
			return models.EmailFailed
		}
	}
	return deliveryStatus(s.mailer)
}

// List returns every stored submission.
func (s *ContactService) List(ctx context.Context) []models.ContactMessage {
	return s.contacts.List(ctx)
}
