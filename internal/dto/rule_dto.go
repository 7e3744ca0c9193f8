package dto

import "github.com/noah-isme/classscore-api/internal/models"

// RuleCreateRequest adds a scoring rule to a classroom.
type RuleCreateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	IconID      string `json:"iconId" validate:"required,max=50"`
	Color       string `json:"color" validate:"required,hexcolor"`
	ClassroomID uint   `json:"classroomId" validate:"required"`
}

// RuleUpdateRequest edits a rule's display attributes.
type RuleUpdateRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	IconID string `json:"iconId" validate:"required,max=50"`
	Color  string `json:"color" validate:"required,hexcolor"`
}

// RuleImportRequest copies rules from one owned classroom into another.
type RuleImportRequest struct {
	SourceClassroomID uint `json:"sourceClassroomId" validate:"required"`
	TargetClassroomID uint `json:"targetClassroomId" validate:"required"`
}

// RuleImportResult summarizes a best-effort rule import. Names already
// present in the target (exact, case-sensitive match) are skipped.
type RuleImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Failed   int              `json:"failed"`
	Rows     []BulkRowOutcome `json:"rows"`
}

// RuleResponse is the rule API shape.
type RuleResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	IconID      string `json:"iconId"`
	Color       string `json:"color"`
	ClassroomID uint   `json:"classroomId"`
}

// NewRuleResponse maps a rule model to its API shape.
func NewRuleResponse(rule models.Rule) RuleResponse {
	return RuleResponse{
		ID:          rule.ID,
		Name:        rule.Name,
		IconID:      rule.IconID,
		Color:       rule.Color,
		ClassroomID: rule.ClassroomID,
	}
}

// NewRuleResponseSlice maps rule models to their API shape.
func NewRuleResponseSlice(rules []models.Rule) []RuleResponse {
	responses := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, NewRuleResponse(rule))
	}
	return responses
}
