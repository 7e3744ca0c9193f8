package dto

import "github.com/noah-isme/classscore-api/internal/models"

// StudentCreateRequest adds a student to a classroom.
type StudentCreateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Grade       int    `json:"grade" validate:"required,min=1,max=6"`
	ClassNum    int    `json:"classNum" validate:"required,min=1"`
	StudentNum  int    `json:"studentNum" validate:"required,min=1"`
	ClassroomID uint   `json:"classroomId" validate:"required"`
}

// StudentUpdateRequest renames or renumbers a student. Changing the
// grade/class/number tuple is a plain update; ledger rows follow the
// surrogate key.
type StudentUpdateRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Grade      int    `json:"grade" validate:"required,min=1,max=6"`
	ClassNum   int    `json:"classNum" validate:"required,min=1"`
	StudentNum int    `json:"studentNum" validate:"required,min=1"`
}

// StudentBulkRow is one row of a roster import (CSV parsed client side).
type StudentBulkRow struct {
	Name       string `json:"name" validate:"required,max=100"`
	Grade      int    `json:"grade" validate:"required,min=1,max=6"`
	ClassNum   int    `json:"classNum" validate:"required,min=1"`
	StudentNum int    `json:"studentNum" validate:"required,min=1"`
}

// StudentBulkRequest upserts a whole roster into one classroom.
type StudentBulkRequest struct {
	ClassroomID uint             `json:"classroomId" validate:"required"`
	Students    []StudentBulkRow `json:"students" validate:"required,min=1,dive"`
}

// BulkRowOutcome reports what happened to a single row of a best-effort
// batch operation.
type BulkRowOutcome struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// StudentBulkResult summarizes a roster import. The batch is best-effort:
// failed rows do not roll back the rest.
type StudentBulkResult struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Failed  int              `json:"failed"`
	Rows    []BulkRowOutcome `json:"rows"`
}

// DailyScoreCell is one ledger entry as rendered inside a student's
// per-day score map.
type DailyScoreCell struct {
	Value    int    `json:"value"`
	RuleName string `json:"ruleName"`
}

// StudentResponse is the student API shape. DailyScores maps a YYYY-MM-DD
// date to the rule entries recorded that day.
type StudentResponse struct {
	ID          uint                               `json:"id"`
	Name        string                             `json:"name"`
	Grade       int                                `json:"grade"`
	ClassNum    int                                `json:"classNum"`
	StudentNum  int                                `json:"studentNum"`
	Score       int                                `json:"score"`
	DailyScores map[string]map[uint]DailyScoreCell `json:"dailyScores"`
}

// NewStudentResponse maps a student model to its API shape with an empty
// score map.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:          student.ID,
		Name:        student.Name,
		Grade:       student.Grade,
		ClassNum:    student.ClassNum,
		StudentNum:  student.StudentNum,
		Score:       student.Score,
		DailyScores: map[string]map[uint]DailyScoreCell{},
	}
}
