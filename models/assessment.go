package models

import "time"

// Category is a career field the assessment scores against.
type Category string

const (
	CategoryBusiness   Category = "business"
	CategoryCreative   Category = "creative"
	CategoryHealthcare Category = "healthcare"
	CategoryTechnology Category = "technology"
)

// Categories is the canonical enumeration order. Score ties resolve to the
// earliest entry.
var Categories = []Category{
	CategoryBusiness,
	CategoryCreative,
	CategoryHealthcare,
	CategoryTechnology,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Option is one selectable answer. Value is the weight added to Category.
type Option struct {
	Text     string   `json:"text,omitempty"`
	Value    float64  `json:"value"`
	Category Category `json:"category"`
}

type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

type Creator struct {
	Name string `json:"name"`
}

// Assessment is a questionnaire definition.
type Assessment struct {
	Base
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsActive    bool       `json:"isActive"`
	CreatedBy   Creator    `json:"createdBy"`
	Questions   []Question `json:"questions"`
}

// AssessmentResult is appended to a User when an assessment is submitted.
type AssessmentResult struct {
	AssessmentID    string    `json:"assessmentId"`
	Score           float64   `json:"score"`
	Recommendations []string  `json:"recommendations"`
	CompletedAt     time.Time `json:"completedAt"`
}
