package services

import (
	"context"
	"time"

	"career-guide/errors"
	"career-guide/models"
	"career-guide/repository"
)

type AssessmentService struct {
	assessments *repository.Assessments
	users       *repository.Users
	events      *Events
	now         func() time.Time
}

func NewAssessmentService(assessments *repository.Assessments, users *repository.Users, events *Events) *AssessmentService {
	return &AssessmentService{
		assessments: assessments,
		users:       users,
		events:      events,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *AssessmentService) List(ctx context.Context) []models.Assessment {
	return s.assessments.List(ctx)
}

type SubmitRequest struct {
	AssessmentID string                   `json:"assessmentId"`
	Answers      map[string]models.Option `json:"answers"`
	Results      map[string]interface{}   `json:"results"`
}

// Submit appends an AssessmentResult to the user's history. Client-computed
// results are trusted as sent: score is results.totalScore (0 when absent)
// and recommendations is results.recommendations. Without results the
// answers are scored here. It returns the results to echo back.
func (s *AssessmentService) Submit(ctx context.Context, userID string, req SubmitRequest) (interface{}, error) {
	if _, ok := s.users.FindByID(ctx, userID); !ok {
		return nil, errors.E(errors.NotFound, "User not found")
	}

	var (
		echo   interface{}
		result = models.AssessmentResult{AssessmentID: req.AssessmentID, CompletedAt: s.now()}
	)
	if req.Results != nil {
		echo = req.Results
		result.Score = numberOf(req.Results["totalScore"])
		result.Recommendations = stringsOf(req.Results["recommendations"])
	} else {
		scored, err := Score(req.Answers)
		if err != nil {
			return nil, err
		}
		echo = scored
		result.Score = scored.TotalScore
		result.Recommendations = scored.Recommendations
	}

	_, found, err := s.users.AppendAssessmentResult(ctx, userID, result)
	if err != nil {
		return nil, errors.E(errors.Internal, "save assessment result", err)
	}
	if !found {
		return nil, errors.E(errors.NotFound, "User not found")
	}

	s.events.Emit(ctx, EventAssessmentCompleted, userID, map[string]interface{}{
		"userId":       userID,
		"assessmentId": req.AssessmentID,
		"score":        result.Score,
	})
	return echo, nil
}

// Results returns the user's assessment history, oldest first.
func (s *AssessmentService) Results(ctx context.Context, userID string) ([]models.AssessmentResult, error) {
	u, ok := s.users.FindByID(ctx, userID)
	if !ok {
		return nil, errors.E(errors.NotFound, "User not found")
	}
	return u.ToPublic().AssessmentResults, nil
}

// Latest returns the user and their most recent result.
func (s *AssessmentService) Latest(ctx context.Context, userID string) (models.PublicUser, models.AssessmentResult, error) {
	u, ok := s.users.FindByID(ctx, userID)
	if !ok {
		return models.PublicUser{}, models.AssessmentResult{}, errors.E(errors.NotFound, "User not found")
	}
	if len(u.AssessmentResults) == 0 {
		return models.PublicUser{}, models.AssessmentResult{}, errors.E(errors.NotFound, "No assessment results found")
	}
	return u.ToPublic(), u.AssessmentResults[len(u.AssessmentResults)-1], nil
}

func numberOf(v interface{}) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}

func stringsOf(v interface{}) []string {
	out := []string{}
	items, ok := v.([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
