package models

// SessionType is the kind of counseling session booked.
type SessionType string

const (
	SessionCareerGuidance   SessionType = "career-guidance"
	SessionAcademicPlanning SessionType = "academic-planning"
	SessionSkillDevelopment SessionType = "skill-development"
	SessionInterviewPrep    SessionType = "interview-prep"
)

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	switch t {
	case SessionCareerGuidance, SessionAcademicPlanning, SessionSkillDevelopment, SessionInterviewPrep:
		return true
	}
	return false
}

// AppointmentStatus tracks an appointment's lifecycle. Booking only sets pending.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// TimeSlot is a start/end time-of-day pair such as 09:00-10:00.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Appointment is a stored booking. Student and Counselor are User ids.
type Appointment struct {
	Base
	Student   string            `json:"student"`
	Counselor string            `json:"counselor"`
	Date      string            `json:"date"`
	TimeSlot  TimeSlot          `json:"timeSlot"`
	Type      SessionType       `json:"type"`
	Status    AppointmentStatus `json:"status"`
	Notes     map[string]string `json:"notes"`
}

// AppointmentResponse is an Appointment with its user references populated.
// Student is either the raw id (freshly booked) or a *UserSummary.
type AppointmentResponse struct {
	Base
	Student   interface{}       `json:"student"`
	Counselor *UserSummary      `json:"counselor"`
	Date      string            `json:"date"`
	TimeSlot  TimeSlot          `json:"timeSlot"`
	Type      SessionType       `json:"type"`
	Status    AppointmentStatus `json:"status"`
	Notes     map[string]string `json:"notes"`
}

// WithCounselor embeds only the counselor, leaving student as its id.
func (a *Appointment) WithCounselor(counselor *UserSummary) AppointmentResponse {
	return a.response(a.Student, counselor)
}

// Populate embeds both student and counselor summaries. A nil summary
// renders as null.
func (a *Appointment) Populate(student, counselor *UserSummary) AppointmentResponse {
	return a.response(student, counselor)
}

func (a *Appointment) response(student interface{}, counselor *UserSummary) AppointmentResponse {
	return AppointmentResponse{
		Base:      a.Base,
		Student:   student,
		Counselor: counselor,
		Date:      a.Date,
		TimeSlot:  a.TimeSlot,
		Type:      a.Type,
		Status:    a.Status,
		Notes:     a.Notes,
	}
}
