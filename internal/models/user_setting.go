package models

import "time"

// Default display values match the original deployment's Korean UI.
const (
	DefaultBoardTitle    = "학급 관리 시스템"
	DefaultBoardSubtitle = "학년/반/번호 기반 관리 및 실시간 점수 순위표"
	DefaultBoardIconID   = "Award"
	DefaultBoardColor    = "#4f46e5"
	DefaultBoardFont     = "'Noto Sans KR', Pretendard, 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif"
)

// UserSetting holds one classroom's leaderboard display customization and
// its public sharing state. ShareToken is generated once on first enable and
// survives disable/enable cycles; a disabled token resolves to nothing.
type UserSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_settings_scope,priority:1" json:"user_id"`
	ClassroomID  uint      `gorm:"not null;uniqueIndex:idx_user_settings_scope,priority:2" json:"classroom_id"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	Subtitle     string    `gorm:"size:200" json:"subtitle"`
	IconID       string    `gorm:"size:50;not null" json:"icon_id"`
	IconColor    string    `gorm:"size:20;not null" json:"icon_color"`
	Font         string    `gorm:"size:200;not null" json:"font"`
	ShareEnabled bool      `gorm:"not null;default:false" json:"share_enabled"`
	ShareToken   string    `gorm:"size:64;index" json:"share_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewDefaultSetting returns the settings row created on first read for a
// classroom that has never been customized.
func NewDefaultSetting(userID, classroomID uint) UserSetting {
	return UserSetting{
		UserID:      userID,
		ClassroomID: classroomID,
		Title:       DefaultBoardTitle,
		Subtitle:    DefaultBoardSubtitle,
		IconID:      DefaultBoardIconID,
		IconColor:   DefaultBoardColor,
		Font:        DefaultBoardFont,
	}
}
