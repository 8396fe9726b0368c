package application

import (
	"context"
	"fmt"

	"github.com/chatform/chatform-services/api/internal/survey/domain"
)

// SurveyRepository exposes CRUD over the survey collection.
// Lookups return (nil, nil) when no document matches; "none" is a legal
// answer, not a failure.
type SurveyRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Survey, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Survey, error)
	Insert(ctx context.Context, survey *domain.Survey) error
	Update(ctx context.Context, survey *domain.Survey) error
	Delete(ctx context.Context, id string) error
}

// ResultRepository exposes CRUD over the result collection, with secondary
// lookups by survey and by responder.
type ResultRepository interface {
	FindByID(ctx context.Context, id string) (*domain.SurveyResult, error)
	FindByResponder(ctx context.Context, userID string) ([]domain.SurveyResult, error)
	FindBySurvey(ctx context.Context, surveyID string) ([]domain.SurveyResult, error)
	Insert(ctx context.Context, result *domain.SurveyResult) error
	Update(ctx context.Context, result *domain.SurveyResult) error
	Delete(ctx context.Context, id string) error
}

// StatisticIndex is the derived reporting view kept in sync with survey
// existence. It is pushed updates from the services and never reads the
// stores itself. AddSurveyStatistic must tolerate repeated calls for the
// same survey; DeleteSurveyStatistic must tolerate ids with no entry.
type StatisticIndex interface {
	AddSurveyStatistic(ctx context.Context, survey *domain.Survey) error
	DeleteSurveyStatistic(ctx context.Context, surveyID string) error
	AddSurveyResult(ctx context.Context, result *domain.SurveyResult) error
}

// SurveyService describes survey use-cases.
type SurveyService interface {
	GetByID(ctx context.Context, id string) (*domain.Survey, error)
	GetByUser(ctx context.Context, userID string) ([]domain.Survey, error)
	Create(ctx context.Context, userID string, cmd SurveyCommand) (string, error)
	Update(ctx context.Context, userID, id string, cmd SurveyCommand) (string, error)
	Delete(ctx context.Context, id string) error
}

// ResultService describes result use-cases plus the per-user aggregation.
type ResultService interface {
	GetByID(ctx context.Context, id string) (*domain.SurveyResult, error)
	GetByResponder(ctx context.Context, userID string) ([]domain.SurveyResult, error)
	GetBySurvey(ctx context.Context, surveyID string) ([]domain.SurveyResult, error)
	Create(ctx context.Context, userID string, cmd ResultCommand) (string, error)
	Update(ctx context.Context, userID, id string, cmd ResultCommand) (string, error)
	Delete(ctx context.Context, id string) error
	StatisticByUser(ctx context.Context, userID string) (domain.UserStatistic, error)
}

// SurveyCommand contains inputs for survey create/update. Identity and
// ownership never come from the command: the id is either generated or
// passed explicitly, the owner is the acting user.
type SurveyCommand struct {
	Type        string
	Title       string
	Intro       string
	AvatarURL   string
	Subjects    []SubjectCommand
	Conclusions []ConclusionCommand
}

// SubjectCommand carries one question of a survey command.
type SubjectCommand struct {
	ID       int
	Type     string
	NLU      bool
	Question string
	ImageURL string
	Answers  []AnswerCommand
}

// AnswerCommand carries one answer option.
type AnswerCommand struct {
	Value    string
	ImageURL string
	Correct  bool
	Next     *int
	End      *int
}

// ConclusionCommand carries one scored outcome.
type ConclusionCommand struct {
	ID       int
	ScoreMin int
	ScoreMax int
	Text     string
	ImageURL string
}

// ResultCommand contains inputs for result create/update. The responder's
// user id is always the acting user, not part of the command.
type ResultCommand struct {
	SurveyID   string
	Responder  ResponderCommand
	Answers    []AnswerResultCommand
	Score      *int
	Conclusion *int
}

// ResponderCommand carries the responder's display fields.
type ResponderCommand struct {
	NickName  string
	AvatarURL string
}

// AnswerResultCommand pairs a subject id with the chosen answers.
type AnswerResultCommand struct {
	ID     int
	Result []AnswerCommand
}

// NotFoundError reports an update against an id missing from the store.
// It always carries the id the caller asked for.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ValidationError marks input rejected before any store access. Its message
// is safe to echo back to the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
