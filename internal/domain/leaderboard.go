package domain

import "time"

// LeaderboardEntry is a derived read-model row. The leaderboard is computed
// from the per-user progression records; there is no second mutable copy.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Completed   int    `json:"completed"`
}

// Submission is one audit-trail row for a flag attempt or hint purchase.
type Submission struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	ChallengeID string    `json:"challenge_id"`
	Kind        string    `json:"kind"` // 'flag', 'hint'
	Correct     bool      `json:"correct"`
	CreatedAt   time.Time `json:"created_at"`
}

// Submission kinds.
const (
	SubmissionKindFlag = "flag"
	SubmissionKindHint = "hint"
)
