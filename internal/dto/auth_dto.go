package dto

import (
	"time"

	"github.com/noah-isme/classscore-api/internal/models"
)

// RegisterRequest is the teacher sign-up payload.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	SchoolName string `json:"schoolName" validate:"omitempty,max=255"`
}

// LoginRequest is the teacher login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ManagerLoginRequest is the student-manager login payload.
type ManagerLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the teacher profile shape returned by auth endpoints.
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	SchoolName string    `json:"schoolName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewUserResponse maps a user model to its API shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		SchoolName: user.SchoolName,
		CreatedAt:  user.CreatedAt,
	}
}

// AuthResponse carries a signed token plus the authenticated teacher.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ManagerAuthResponse carries a signed token plus the authenticated manager.
type ManagerAuthResponse struct {
	Token   string          `json:"token"`
	Manager ManagerResponse `json:"manager"`
}
