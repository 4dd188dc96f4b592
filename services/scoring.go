package services

import (
	"sort"

	"career-guide/errors"
	"career-guide/models"
)

// Recommendations lists the suggested roles for each career category.
var Recommendations = map[models.Category][]string{
	models.CategoryTechnology: {
		"Software Developer",
		"Data Scientist",
		"Cybersecurity Analyst",
		"AI/ML Engineer",
		"Systems Administrator",
	},
	models.CategoryHealthcare: {
		"Clinical Psychologist",
		"Nurse Practitioner",
		"Physical Therapist",
		"Healthcare Administrator",
		"Medical Social Worker",
	},
	models.CategoryCreative: {
		"UX/UI Designer",
		"Graphic Designer",
		"Content Creator",
		"Marketing Specialist",
		"Art Director",
	},
	models.CategoryBusiness: {
		"Business Analyst",
		"Project Manager",
		"Management Consultant",
		"Sales Manager",
		"Operations Manager",
	},
}

// ScoreResult is the outcome of scoring one set of answers.
type ScoreResult struct {
	TopCategory     models.Category             `json:"topCategory"`
	Scores          map[models.Category]float64 `json:"scores"`
	Recommendations []string                    `json:"recommendations"`
	TotalQuestions  int                         `json:"totalQuestions"`
	TotalScore      float64                     `json:"totalScore"`
}

// Score sums option weights per category and picks the highest total.
// answers maps a question index to the chosen option. Categories are
// compared in models.Categories order and a tie keeps the earlier one, so
// an empty answer set resolves to the first category.
func Score(answers map[string]models.Option) (ScoreResult, error) {
	scores := make(map[models.Category]float64, len(models.Categories))
	for _, c := range models.Categories {
		scores[c] = 0
	}

	// fixed summation order keeps float totals reproducible
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var total float64
	for _, k := range keys {
		opt := answers[k]
		if !opt.Category.Valid() {
			return ScoreResult{}, errors.E(errors.Invalid, "unknown category "+string(opt.Category)+" in answer "+k)
		}
		scores[opt.Category] += opt.Value
		total += opt.Value
	}

	top := models.Categories[0]
	for _, c := range models.Categories[1:] {
		if scores[c] > scores[top] {
			top = c
		}
	}

	recs := append([]string(nil), Recommendations[top]...)
	return ScoreResult{
		TopCategory:     top,
		Scores:          scores,
		Recommendations: recs,
		TotalQuestions:  len(answers),
		TotalScore:      total,
	}, nil
}
