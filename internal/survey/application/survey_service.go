package application

import (
	"context"
	"log"
	"time"

	"github.com/chatform/chatform-services/api/internal/identifier"
	"github.com/chatform/chatform-services/api/internal/survey/domain"
)

type surveyService struct {
	repo   SurveyRepository
	index  StatisticIndex
	ids    identifier.Generator
	logger *log.Logger
}

func NewSurveyService(repo SurveyRepository, index StatisticIndex, ids identifier.Generator, logger *log.Logger) SurveyService {
	return &surveyService{repo: repo, index: index, ids: ids, logger: logger}
}

func (s *surveyService) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *surveyService) GetByUser(ctx context.Context, userID string) ([]domain.Survey, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *surveyService) Create(ctx context.Context, userID string, cmd SurveyCommand) (string, error) {
	survey, err := buildSurveyFromCommand(cmd)
	if err != nil {
		return "", err
	}
	survey.ID = s.ids.NewID()
	survey.UserID = userID
	now := time.Now().UTC()
	survey.CreatedAt = now
	survey.UpdatedAt = now

	if err := s.repo.Insert(ctx, survey); err != nil {
		return "", err
	}
	// Index registration strictly follows the store write. A failure here
	// leaves a survey without a statistic entry; that gap is accepted and
	// propagated, not compensated.
	if err := s.index.AddSurveyStatistic(ctx, survey); err != nil {
		return "", err
	}

	s.logger.Printf("アンケート %s を作成しました (user=%s)", survey.ID, userID)
	return survey.ID, nil
}

func (s *surveyService) Update(ctx context.Context, userID, id string, cmd SurveyCommand) (string, error) {
	if id == "" {
		return s.Create(ctx, userID, cmd)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", &NotFoundError{Kind: "survey", ID: id}
	}

	updated, err := buildSurveyFromCommand(cmd)
	if err != nil {
		return "", err
	}
	// Mutable fields are replaced wholesale; identity, ownership and the
	// creation timestamp survive the update.
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, updated); err != nil {
		return "", err
	}
	// Delete-then-add rather than an in-place patch, so the entry always
	// reflects the latest survey fields.
	if err := s.index.DeleteSurveyStatistic(ctx, id); err != nil {
		return "", err
	}
	if err := s.index.AddSurveyStatistic(ctx, updated); err != nil {
		return "", err
	}

	s.logger.Printf("アンケート %s を更新しました (user=%s)", id, userID)
	return id, nil
}

func (s *surveyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.index.DeleteSurveyStatistic(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("アンケート %s を削除しました", id)
	return nil
}

func buildSurveyFromCommand(cmd SurveyCommand) (*domain.Survey, error) {
	if cmd.Title == "" {
		return nil, &ValidationError{Reason: "title is required"}
	}
	surveyType, err := domain.NewSurveyType(cmd.Type)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	subjects := make([]domain.Subject, 0, len(cmd.Subjects))
	for _, subject := range cmd.Subjects {
		subjectType, err := domain.NewSubjectType(subject.Type)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		subjects = append(subjects, domain.Subject{
			ID:       subject.ID,
			Type:     subjectType,
			NLU:      subject.NLU,
			Question: subject.Question,
			ImageURL: subject.ImageURL,
			Answers:  mapAnswerCommands(subject.Answers),
		})
	}

	conclusions := make([]domain.Conclusion, 0, len(cmd.Conclusions))
	for _, conclusion := range cmd.Conclusions {
		conclusions = append(conclusions, domain.Conclusion{
			ID:         conclusion.ID,
			ScoreRange: domain.ScoreRange{Min: conclusion.ScoreMin, Max: conclusion.ScoreMax},
			Text:       conclusion.Text,
			ImageURL:   conclusion.ImageURL,
		})
	}

	return &domain.Survey{
		Type:        surveyType,
		Title:       cmd.Title,
		Intro:       cmd.Intro,
		AvatarURL:   cmd.AvatarURL,
		Subjects:    subjects,
		Conclusions: conclusions,
	}, nil
}

func mapAnswerCommands(inputs []AnswerCommand) []domain.Answer {
	if len(inputs) == 0 {
		return nil
	}
	answers := make([]domain.Answer, 0, len(inputs))
	for _, input := range inputs {
		answers = append(answers, domain.Answer{
			Value:    input.Value,
			ImageURL: input.ImageURL,
			Correct:  input.Correct,
			Next:     input.Next,
			End:      input.End,
		})
	}
	return answers
}
