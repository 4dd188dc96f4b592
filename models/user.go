package models

// Role is the account type of a User.
type Role string

const (
	RoleStudent   Role = "student"
	RoleCounselor Role = "counselor"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCounselor, RoleAdmin:
		return true
	}
	return false
}

// Profile is the optional free-form counselor/student profile.
type Profile struct {
	Specialization string `json:"specialization,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Bio            string `json:"bio,omitempty"`
}

// User is a stored account. Password holds the bcrypt hash.
type User struct {
	Base
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Password          string             `json:"password"`
	Role              Role               `json:"role"`
	Profile           *Profile           `json:"profile,omitempty"`
	IsActive          bool               `json:"isActive"`
	AssessmentResults []AssessmentResult `json:"assessmentResults"`
}

// PublicUser is a User without its password, for API responses.
type PublicUser struct {
	Base
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Role              Role               `json:"role"`
	Profile           *Profile           `json:"profile,omitempty"`
	IsActive          bool               `json:"isActive"`
	AssessmentResults []AssessmentResult `json:"assessmentResults"`
}

// UserSummary is the embedded form of a populated user reference.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToPublic strips the password hash.
func (u *User) ToPublic() PublicUser {
	results := u.AssessmentResults
	if results == nil {
		results = []AssessmentResult{}
	}
	return PublicUser{
		Base:              u.Base,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		Profile:           u.Profile,
		IsActive:          u.IsActive,
		AssessmentResults: results,
	}
}

// ToSummary returns the id/name/email triple used when populating references.
func (u *User) ToSummary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserPatch is an explicit shallow merge over a User: nil fields keep the
// stored value, non-nil fields replace it wholesale.
type UserPatch struct {
	Name              *string
	Email             *string
	Password          *string
	Role              *Role
	Profile           *Profile
	IsActive          *bool
	AssessmentResults *[]AssessmentResult
}

// Apply merges p into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Profile != nil {
		profile := *p.Profile
		u.Profile = &profile
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.AssessmentResults != nil {
		u.AssessmentResults = append([]AssessmentResult(nil), (*p.AssessmentResults)...)
	}
}
