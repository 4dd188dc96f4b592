package repository

import (
	"context"

	"career-guide/models"
)

const assessmentsCollection = "assessments"

type Assessments struct {
	c *Collection[models.Assessment, *models.Assessment]
}

func NewAssessments(store *Store) *Assessments {
	return &Assessments{c: NewCollection[models.Assessment](store, assessmentsCollection)}
}

// List returns the active assessments.
func (r *Assessments) List(ctx context.Context) []models.Assessment {
	return r.c.Filter(ctx, func(a *models.Assessment) bool { return a.IsActive })
}

func (r *Assessments) FindByID(ctx context.Context, id string) (models.Assessment, bool) {
	return r.c.FindByID(ctx, id)
}

func (r *Assessments) Seed(ctx context.Context, assessments []models.Assessment) (bool, error) {
	return r.c.Seed(ctx, assessments)
}
