package repository

import (
	"context"

	"career-guide/models"
)

const (
	contactsCollection    = "contacts"
	deadLettersCollection = "dead_letters"
)

type Contacts struct {
	c *Collection[models.ContactMessage, *models.ContactMessage]
}

func NewContacts(store *Store) *Contacts {
	return &Contacts{c: NewCollection[models.ContactMessage](store, contactsCollection)}
}

func (r *Contacts) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	return r.c.Create(ctx, m)
}

func (r *Contacts) Update(ctx context.Context, id string, patch models.ContactPatch) (models.ContactMessage, bool, error) {
	return r.c.Update(ctx, id, patch.Apply)
}

func (r *Contacts) List(ctx context.Context) []models.ContactMessage {
	return r.c.Filter(ctx, func(*models.ContactMessage) bool { return true })
}

// DeadLetters holds queued messages the email worker gave up on.
type DeadLetters struct {
	c *Collection[models.DeadLetter, *models.DeadLetter]
}

func NewDeadLetters(store *Store) *DeadLetters {
	return &DeadLetters{c: NewCollection[models.DeadLetter](store, deadLettersCollection)}
}

func (r *DeadLetters) Create(ctx context.Context, d models.DeadLetter) (models.DeadLetter, error) {
	return r.c.Create(ctx, d)
}

func (r *DeadLetters) List(ctx context.Context) []models.DeadLetter {
	return r.c.Filter(ctx, func(*models.DeadLetter) bool { return true })
}
