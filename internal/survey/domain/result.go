package domain

import "time"

// SurveyResult is one responder's submission against a survey. Survey holds
// a frozen copy of the survey as it existed at submission time; it is never
// refreshed afterwards, which keeps the result renderable even after the
// live survey is edited or deleted. A nil snapshot means the survey was
// already gone when the result was submitted.
type SurveyResult struct {
	ID         string
	SurveyID   string
	Responder  Responder
	Answers    []AnswerResult
	Score      *int
	Conclusion *int
	Survey     *Survey
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Responder identifies who submitted a result.
type Responder struct {
	UserID    string
	NickName  string
	AvatarURL string
}

// AnswerResult pairs a subject id with the answers the responder chose.
type AnswerResult struct {
	ID     int
	Result []Answer
}

// UserStatistic aggregates per-user counts: surveys the user created and
// results the user submitted.
type UserStatistic struct {
	CreatedCount  int
	ReceivedCount int
}
