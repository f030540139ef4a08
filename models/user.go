package models

// Role is the account role reported by the backend.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// User is the profile returned by the backend for the signed-in account.
// It is cached in the credential store under the "user" key after login.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     Role   `json:"role"`

	// Level is the current level shown to students.
	Level int `json:"level,omitempty"`
	// ExperienceInLevel is the progress inside the current level.
	ExperienceInLevel int `json:"experience_in_level,omitempty"`
	// XPToNextLevel is the experience required to reach the next level.
	XPToNextLevel int `json:"xp_to_next_level,omitempty"`
}

// IsTeacher reports whether u holds the teacher role. A nil user is not a
// teacher.
func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}

// LoginRequest is the body of POST /auth/login. Email accepts either an
// e-mail address or a username.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email           string  `json:"email"`
	Username        string  `json:"username"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	Captcha         string  `json:"captcha"`
	InviteCode      *string `json:"invite_code,omitempty"`
}

// UpdateProfileRequest is the body of PUT /auth/profile.
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty"`
}

// ChangePasswordRequest is the body of POST /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// DeleteAccountRequest is the body of DELETE /auth/delete-account.
type DeleteAccountRequest struct {
	Password string `json:"password"`
}
