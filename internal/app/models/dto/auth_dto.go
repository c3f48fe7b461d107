package dto

import "github.com/mustso/portal/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration body. Username defaults to the email.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// PasswordResetRequest asks for reset instructions
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfileRequest is a partial profile update; nil fields are left unchanged
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Location   *string `json:"location,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

// Fields returns the non-nil fields as multipart form values
func (r UpdateProfileRequest) Fields() map[string]string {
	fields := make(map[string]string)
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("firstName", r.FirstName)
	set("lastName", r.LastName)
	set("phone", r.Phone)
	set("location", r.Location)
	set("department", r.Department)
	set("position", r.Position)
	set("bio", r.Bio)
	return fields
}

// ActivityRequest records an entry in the user's activity feed
type ActivityRequest struct {
	Type  string `json:"type" binding:"required,oneof=comment like view post"`
	Title string `json:"title" binding:"required"`
}
