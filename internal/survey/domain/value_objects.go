package domain

import (
	"fmt"
	"strings"
)

var (
	allowedSurveyTypes  = []string{"inquiry", "poll", "exam", "branch-quiz"}
	allowedSubjectTypes = []string{"radio", "checkbox", "text", "date", "position", "phone"}
)

// SurveyType classifies a survey: inquiry | poll | exam | branch-quiz.
type SurveyType string

func NewSurveyType(value string) (SurveyType, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("survey type is required")
	}
	for _, allowed := range allowedSurveyTypes {
		if allowed == trimmed {
			return SurveyType(trimmed), nil
		}
	}
	return "", fmt.Errorf("invalid survey type: %s", trimmed)
}

func (t SurveyType) String() string {
	return string(t)
}

// Graded reports whether results of this survey type carry a computed score.
// Both exams and branch quizzes define correct answers and score-ranged
// conclusions.
func (t SurveyType) Graded() bool {
	return t == "exam" || t == "branch-quiz"
}

// SubjectType classifies a question:
// radio | checkbox | text | date | position | phone.
type SubjectType string

func NewSubjectType(value string) (SubjectType, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("subject type is required")
	}
	for _, allowed := range allowedSubjectTypes {
		if allowed == trimmed {
			return SubjectType(trimmed), nil
		}
	}
	return "", fmt.Errorf("invalid subject type: %s", trimmed)
}

func (t SubjectType) String() string {
	return string(t)
}
