package repository

import (
	"context"
	"strings"

	"career-guide/models"
)

const usersCollection = "users"

type Users struct {
	c *Collection[models.User, *models.User]
}

func NewUsers(store *Store) *Users {
	return &Users{c: NewCollection[models.User](store, usersCollection)}
}

func (r *Users) FindByID(ctx context.Context, id string) (models.User, bool) {
	return r.c.FindByID(ctx, id)
}

// FindByEmail matches case-insensitively; addresses are stored lowercased.
func (r *Users) FindByEmail(ctx context.Context, email string) (models.User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.c.FindBy(ctx, func(u *models.User) bool {
		return strings.ToLower(u.Email) == email
	})
}

func (r *Users) Create(ctx context.Context, u models.User) (models.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.AssessmentResults == nil {
		u.AssessmentResults = []models.AssessmentResult{}
	}
	return r.c.Create(ctx, u)
}

func (r *Users) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, bool, error) {
	return r.c.Update(ctx, id, patch.Apply)
}

// AppendAssessmentResult adds result to the end of the user's history
// inside a single read-modify-write.
func (r *Users) AppendAssessmentResult(ctx context.Context, id string, result models.AssessmentResult) (models.User, bool, error) {
	return r.c.Update(ctx, id, func(u *models.User) {
		results := make([]models.AssessmentResult, 0, len(u.AssessmentResults)+1)
		results = append(results, u.AssessmentResults...)
		u.AssessmentResults = append(results, result)
	})
}

func (r *Users) ListActiveCounselors(ctx context.Context) []models.User {
	return r.c.Filter(ctx, func(u *models.User) bool {
		return u.Role == models.RoleCounselor && u.IsActive
	})
}

// Summaries resolves ids to populated summaries with a single read. Unknown
// ids map to nil.
func (r *Users) Summaries(ctx context.Context, ids ...string) map[string]*models.UserSummary {
	out := make(map[string]*models.UserSummary, len(ids))
	for _, id := range ids {
		out[id] = nil
	}
	for _, u := range r.c.All(ctx) {
		if _, ok := out[u.ID]; ok {
			out[u.ID] = u.ToSummary()
		}
	}
	return out
}

func (r *Users) Seed(ctx context.Context, users []models.User) (bool, error) {
	return r.c.Seed(ctx, users)
}
