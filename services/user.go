package services

import (
	"context"
	"strings"

	"career-guide/auth"
	"career-guide/errors"
	"career-guide/logger"
	"career-guide/models"
	"career-guide/repository"
)

// TokenIssuer signs the bearer token returned on register and login.
type TokenIssuer interface {
	MakeToken(id auth.Identity) (string, error)
}

type UserService struct {
	users  *repository.Users
	tokens TokenIssuer
	events *Events
}

func NewUserService(users *repository.Users, tokens TokenIssuer, events *Events) *UserService {
	return &UserService{users: users, tokens: tokens, events: events}
}

type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register creates a student or counselor account. Input is expected to be
// validated already.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if req.Role != models.RoleStudent && req.Role != models.RoleCounselor {
		return AuthResult{}, errors.E(errors.Invalid, "Invalid role")
	}
	if _, exists := s.users.FindByEmail(ctx, req.Email); exists {
		return AuthResult{}, errors.E(errors.Invalid, "User already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return AuthResult{}, errors.E(errors.Internal, "hash password", err)
	}

	u, err := s.users.Create(ctx, models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	})
	if err != nil {
		return AuthResult{}, errors.E(errors.Internal, "create user", err)
	}
	logger.Info("User registered: %s (%s)", u.ID, u.Role)

	s.events.Emit(ctx, EventUserRegistered, u.ID, map[string]interface{}{
		"userId": u.ID,
		"role":   u.Role,
	})
	return s.issue(u)
}

// Login checks credentials. Unknown email, wrong password and inactive
// accounts all produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, ok := s.users.FindByEmail(ctx, email)
	if !ok || !u.IsActive || !auth.CheckPassword(u.Password, password) {
		return AuthResult{}, errors.E(errors.Invalid, "Invalid credentials")
	}
	return s.issue(u)
}

func (s *UserService) issue(u models.User) (AuthResult, error) {
	token, err := s.tokens.MakeToken(auth.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return AuthResult{}, errors.E(errors.Internal, "sign token", err)
	}
	return AuthResult{Token: token, User: u.ToPublic()}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.PublicUser, error) {
	u, ok := s.users.FindByID(ctx, id)
	if !ok {
		return models.PublicUser{}, errors.E(errors.NotFound, "User not found")
	}
	return u.ToPublic(), nil
}

type ProfileUpdate struct {
	Name    *string         `json:"name"`
	Profile *models.Profile `json:"profile"`
}

// UpdateProfile shallow-merges the name and profile onto the stored user.
func (s *UserService) UpdateProfile(ctx context.Context, id string, req ProfileUpdate) (models.PublicUser, error) {
	patch := models.UserPatch{Profile: req.Profile}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	u, found, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return models.PublicUser{}, errors.E(errors.Internal, "update user", err)
	}
	if !found {
		return models.PublicUser{}, errors.E(errors.NotFound, "User not found")
	}
	return u.ToPublic(), nil
}

// Counselors lists active counselors without their password hashes.
func (s *UserService) Counselors(ctx context.Context) []models.PublicUser {
	list := s.users.ListActiveCounselors(ctx)
	out := make([]models.PublicUser, 0, len(list))
	for i := range list {
		out = append(out, list[i].ToPublic())
	}
	return out
}
