package dto

import "github.com/noah-isme/classscore-api/internal/models"

// SettingsUpdateRequest customizes a classroom's leaderboard display and
// sharing state. ShareEnabled is tri-state: nil leaves sharing untouched.
type SettingsUpdateRequest struct {
	Title        string `json:"title" validate:"required,max=100"`
	Subtitle     string `json:"subtitle" validate:"omitempty,max=200"`
	IconID       string `json:"iconId" validate:"required,max=50"`
	IconColor    string `json:"iconColor" validate:"required,hexcolor"`
	Font         string `json:"font" validate:"required,max=200"`
	ShareEnabled *bool  `json:"shareEnabled"`
}

// SettingsResponse is the settings API shape seen by the owning teacher.
type SettingsResponse struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	IconID       string `json:"iconId"`
	IconColor    string `json:"iconColor"`
	Font         string `json:"font"`
	ShareEnabled bool   `json:"shareEnabled"`
	ShareToken   string `json:"shareToken,omitempty"`
}

// NewSettingsResponse maps a settings model to its API shape.
func NewSettingsResponse(setting models.UserSetting) SettingsResponse {
	return SettingsResponse{
		Title:        setting.Title,
		Subtitle:     setting.Subtitle,
		IconID:       setting.IconID,
		IconColor:    setting.IconColor,
		Font:         setting.Font,
		ShareEnabled: setting.ShareEnabled,
		ShareToken:   setting.ShareToken,
	}
}
