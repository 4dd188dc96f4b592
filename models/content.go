package models

// BlogPost is read-only seed content.
type BlogPost struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	Category    string `json:"category"`
}

// Email delivery outcomes recorded on a ContactMessage
const (
	EmailPending  = "pending"
	EmailSent     = "sent"
	EmailFailed   = "failed"
	EmailDisabled = "disabled"
	EmailQueued   = "queued"
)

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	Base
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject,omitempty"`
	Message     string `json:"message"`
	EmailStatus string `json:"emailStatus"`
}

// DeadLetter records a queued event that could not be processed.
type DeadLetter struct {
	Base
	Topic   string `json:"topic"`
	Key     string `json:"key"`
	Payload string `json:"payload"`
	Error   string `json:"error"`
}

// ContactPatch is the shallow merge applied to a stored ContactMessage.
type ContactPatch struct {
	EmailStatus *string
}

// Apply merges p into m.
func (p ContactPatch) Apply(m *ContactMessage) {
	if p.EmailStatus != nil {
		m.EmailStatus = *p.EmailStatus
	}
}
