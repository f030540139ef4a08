package models

import "encoding/json"

// SQLHintRequest is the body of POST /ai/sql-hint.
type SQLHintRequest struct {
	SQL string `json:"sql"`
}

// SQLHintResponse carries a free-form hint produced by the AI tutor.
type SQLHintResponse struct {
	Hint json.RawMessage `json:"hint"`
}

// CheckSQLRequest is the body of POST /ai/check-sql.
type CheckSQLRequest struct {
	StudentSQL    string `json:"student_sql"`
	QuestionID    int64  `json:"question_id"`
	Language      string `json:"language,omitempty"`
	ChallengeMode bool   `json:"challenge_mode,omitempty"`
}

// CheckSQLResponse is the judge verdict for a student's answer.
type CheckSQLResponse struct {
	IsCorrect    bool            `json:"is_correct"`
	Hint         json.RawMessage `json:"hint"`
	SubmissionID int64           `json:"submission_id"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	// IsSafetyBlocked is set when the answer was rejected for containing a
	// destructive statement rather than for being wrong.
	IsSafetyBlocked  bool `json:"is_safety_blocked,omitempty"`
	EarnedExperience *int `json:"earned_experience,omitempty"`
	LevelUp          bool `json:"level_up,omitempty"`
	NewLevel         *int `json:"new_level,omitempty"`
}

// Submission is a stored answer attempt.
type Submission struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	QuestionID int64   `json:"question_id"`
	StudentSQL string  `json:"student_sql"`
	AIHint     *string `json:"ai_hint"`
	IsCorrect  bool    `json:"is_correct"`
	HintLevel  int     `json:"hint_level"`
	CreatedAt  string  `json:"created_at"`
}
