package domain

import "time"

// Survey is a questionnaire definition owned by a single user.
// The ID is an application-assigned global identifier, stable for the
// life of the survey.
type Survey struct {
	ID          string
	UserID      string
	Type        SurveyType
	Title       string
	Intro       string
	AvatarURL   string
	Subjects    []Subject
	Conclusions []Conclusion
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subject is one question within a survey. Its numeric ID is unique
// within the survey and is the target of branch-quiz jumps.
type Subject struct {
	ID       int
	Type     SubjectType
	NLU      bool
	Question string
	ImageURL string
	Answers  []Answer
}

// Answer is one selectable option of a subject. Next and End drive
// branch-quiz flow control: Next jumps to another subject id, End
// terminates the run at a conclusion id.
type Answer struct {
	Value    string
	ImageURL string
	Correct  bool
	Next     *int
	End      *int
}

// Conclusion is a scored outcome shown when a responder finishes.
type Conclusion struct {
	ID         int
	ScoreRange ScoreRange
	Text       string
	ImageURL   string
}

// ScoreRange bounds the scores a conclusion applies to, inclusive on both ends.
type ScoreRange struct {
	Min int
	Max int
}
