package dto

import (
	"time"

	"github.com/noah-isme/classscore-api/internal/models"
)

// ClassroomRequest creates or renames a classroom.
type ClassroomRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ClassroomResponse is the classroom API shape.
type ClassroomResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewClassroomResponse maps a classroom model to its API shape.
func NewClassroomResponse(classroom models.Classroom) ClassroomResponse {
	return ClassroomResponse{
		ID:        classroom.ID,
		Name:      classroom.Name,
		IsDefault: classroom.IsDefault,
		CreatedAt: classroom.CreatedAt,
	}
}

// NewClassroomResponseSlice maps classroom models to their API shape.
func NewClassroomResponseSlice(classrooms []models.Classroom) []ClassroomResponse {
	responses := make([]ClassroomResponse, 0, len(classrooms))
	for _, classroom := range classrooms {
		responses = append(responses, NewClassroomResponse(classroom))
	}
	return responses
}
