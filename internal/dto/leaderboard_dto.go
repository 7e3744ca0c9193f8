package dto

// LeaderboardQuery selects the aggregation window. Period is one of
// all, daily, weekly, monthly, last30days or custom; StartDate/EndDate are
// only consulted for custom.
type LeaderboardQuery struct {
	Period    string `json:"period"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// LeaderboardEntry is one ranked student with the range total and the
// per-rule subtotals used to render proportion bars.
type LeaderboardEntry struct {
	Rank       int          `json:"rank"`
	StudentID  uint         `json:"studentId"`
	Name       string       `json:"name"`
	Grade      int          `json:"grade"`
	ClassNum   int          `json:"classNum"`
	StudentNum int          `json:"studentNum"`
	TotalScore int          `json:"totalScore"`
	RuleTotals map[uint]int `json:"ruleTotals"`
}

// LeaderboardResponse is the aggregator output for one classroom and window.
type LeaderboardResponse struct {
	Entries   []LeaderboardEntry `json:"leaderboard"`
	Rules     []RuleResponse     `json:"rules"`
	Period    string             `json:"period"`
	StartDate string             `json:"startDate,omitempty"`
	EndDate   string             `json:"endDate,omitempty"`
}

// PublicBoardSettings is the display header shown on a shared leaderboard.
type PublicBoardSettings struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	IconID      string `json:"iconId"`
	IconColor   string `json:"iconColor"`
	Font        string `json:"font"`
	SchoolName  string `json:"schoolName"`
	TeacherName string `json:"teacherName"`
}

// PublicLeaderboardResponse is the read-only payload served for a share
// token. It carries no mutation affordances.
type PublicLeaderboardResponse struct {
	Settings    PublicBoardSettings `json:"settings"`
	Leaderboard LeaderboardResponse `json:"leaderboard"`
}
