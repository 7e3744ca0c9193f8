package dto

import (
	"time"

	"github.com/noah-isme/classscore-api/internal/models"
)

// ManagerCreateRequest provisions a student-manager sub-account for one
// classroom.
type ManagerCreateRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Password       string `json:"password" validate:"required,min=4"`
	DisplayName    string `json:"displayName" validate:"required,max=100"`
	AllowedRuleIDs []uint `json:"allowedRuleIds"`
	ClassroomID    uint   `json:"classroomId" validate:"required"`
}

// ManagerUpdateRequest partially edits a manager; nil fields are untouched.
type ManagerUpdateRequest struct {
	DisplayName    *string `json:"displayName" validate:"omitempty,min=1,max=100"`
	Password       *string `json:"password" validate:"omitempty,min=4"`
	AllowedRuleIDs *[]uint `json:"allowedRuleIds"`
}

// ManagerResponse is the student-manager API shape.
type ManagerResponse struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	AllowedRuleIDs []uint    `json:"allowedRuleIds"`
	ClassroomID    uint      `json:"classroomId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewManagerResponse maps a manager model to its API shape.
func NewManagerResponse(manager models.StudentManager) ManagerResponse {
	allowed := make([]uint, 0, len(manager.AllowedRuleIDs))
	allowed = append(allowed, manager.AllowedRuleIDs...)

	return ManagerResponse{
		ID:             manager.ID,
		Username:       manager.Username,
		DisplayName:    manager.DisplayName,
		AllowedRuleIDs: allowed,
		ClassroomID:    manager.ClassroomID,
		CreatedAt:      manager.CreatedAt,
	}
}

// NewManagerResponseSlice maps manager models to their API shape.
func NewManagerResponseSlice(managers []models.StudentManager) []ManagerResponse {
	responses := make([]ManagerResponse, 0, len(managers))
	for _, manager := range managers {
		responses = append(responses, NewManagerResponse(manager))
	}
	return responses
}
