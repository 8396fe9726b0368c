package application

import (
	"context"
	"log"
	"time"

	"github.com/chatform/chatform-services/api/internal/identifier"
	"github.com/chatform/chatform-services/api/internal/survey/domain"
)

type resultService struct {
	surveys SurveyService
	repo    ResultRepository
	index   StatisticIndex
	ids     identifier.Generator
	logger  *log.Logger
}

// NewResultService builds the result use-cases. The survey service is used
// read-only, for snapshotting and for the created-count aggregation.
func NewResultService(surveys SurveyService, repo ResultRepository, index StatisticIndex, ids identifier.Generator, logger *log.Logger) ResultService {
	return &resultService{surveys: surveys, repo: repo, index: index, ids: ids, logger: logger}
}

func (s *resultService) GetByID(ctx context.Context, id string) (*domain.SurveyResult, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *resultService) GetByResponder(ctx context.Context, userID string) ([]domain.SurveyResult, error) {
	return s.repo.FindByResponder(ctx, userID)
}

func (s *resultService) GetBySurvey(ctx context.Context, surveyID string) ([]domain.SurveyResult, error) {
	return s.repo.FindBySurvey(ctx, surveyID)
}

func (s *resultService) Create(ctx context.Context, userID string, cmd ResultCommand) (string, error) {
	// The snapshot read happens before the result write. A survey deleted in
	// the meantime yields a nil snapshot; the submission still succeeds.
	snapshot, err := s.surveys.GetByID(ctx, cmd.SurveyID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	result := &domain.SurveyResult{
		ID:       s.ids.NewID(),
		SurveyID: cmd.SurveyID,
		Responder: domain.Responder{
			UserID:    userID,
			NickName:  cmd.Responder.NickName,
			AvatarURL: cmd.Responder.AvatarURL,
		},
		Answers:    mapAnswerResultCommands(cmd.Answers),
		Score:      cmd.Score,
		Conclusion: cmd.Conclusion,
		Survey:     snapshot,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if snapshot != nil && result.Score == nil && snapshot.Type.Graded() {
		score := domain.ScoreExam(snapshot, result.Answers)
		result.Score = &score
		result.Conclusion = domain.ResolveConclusion(snapshot, score)
	}

	if err := s.repo.Insert(ctx, result); err != nil {
		return "", err
	}
	if err := s.index.AddSurveyResult(ctx, result); err != nil {
		return "", err
	}

	s.logger.Printf("アンケート %s への回答 %s を登録しました (user=%s)", cmd.SurveyID, result.ID, userID)
	return result.ID, nil
}

func (s *resultService) Update(ctx context.Context, userID, id string, cmd ResultCommand) (string, error) {
	if id == "" {
		return s.Create(ctx, userID, cmd)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", &NotFoundError{Kind: "survey result", ID: id}
	}

	updated := &domain.SurveyResult{
		ID:       existing.ID,
		SurveyID: cmd.SurveyID,
		Responder: domain.Responder{
			UserID:    userID,
			NickName:  cmd.Responder.NickName,
			AvatarURL: cmd.Responder.AvatarURL,
		},
		Answers:    mapAnswerResultCommands(cmd.Answers),
		Score:      cmd.Score,
		Conclusion: cmd.Conclusion,
		// The snapshot was frozen at submission time and is never replaced,
		// even when the update points at a different survey id.
		Survey:    existing.Survey,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return "", err
	}

	s.logger.Printf("回答 %s を更新しました (user=%s)", id, userID)
	return id, nil
}

func (s *resultService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("回答 %s を削除しました", id)
	return nil
}

// StatisticByUser recomputes the per-user counts from the two stores on
// every call; nothing is cached or maintained incrementally.
func (s *resultService) StatisticByUser(ctx context.Context, userID string) (domain.UserStatistic, error) {
	stat := domain.UserStatistic{}

	created, err := s.surveys.GetByUser(ctx, userID)
	if err != nil {
		return stat, err
	}
	received, err := s.repo.FindByResponder(ctx, userID)
	if err != nil {
		return stat, err
	}

	stat.CreatedCount = len(created)
	stat.ReceivedCount = len(received)
	return stat, nil
}

func mapAnswerResultCommands(inputs []AnswerResultCommand) []domain.AnswerResult {
	if len(inputs) == 0 {
		return nil
	}
	answers := make([]domain.AnswerResult, 0, len(inputs))
	for _, input := range inputs {
		answers = append(answers, domain.AnswerResult{
			ID:     input.ID,
			Result: mapAnswerCommands(input.Result),
		})
	}
	return answers
}
