package models

import "time"

// Base carries the identity and timestamps every stored record shares.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta exposes the embedded Base to the generic repository.
func (b *Base) Meta() *Base {
	return b
}
