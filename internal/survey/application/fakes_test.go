package application

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/chatform/chatform-services/api/internal/survey/domain"
)

// opLog records the order of store and index mutations so tests can assert
// the consistency protocol (store write strictly before index write).
type opLog struct {
	entries []string
}

func (l *opLog) record(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

type fakeSurveyRepository struct {
	surveys map[string]domain.Survey
	order   []string
	ops     *opLog
}

func newFakeSurveyRepository(ops *opLog) *fakeSurveyRepository {
	return &fakeSurveyRepository{surveys: make(map[string]domain.Survey), ops: ops}
}

func (r *fakeSurveyRepository) FindByID(_ context.Context, id string) (*domain.Survey, error) {
	survey, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	copied := survey
	return &copied, nil
}

func (r *fakeSurveyRepository) FindByUser(_ context.Context, userID string) ([]domain.Survey, error) {
	result := make([]domain.Survey, 0)
	for _, id := range r.order {
		if survey, ok := r.surveys[id]; ok && survey.UserID == userID {
			result = append(result, survey)
		}
	}
	return result, nil
}

func (r *fakeSurveyRepository) Insert(_ context.Context, survey *domain.Survey) error {
	r.surveys[survey.ID] = *survey
	r.order = append(r.order, survey.ID)
	r.ops.record("store.survey.insert %s", survey.ID)
	return nil
}

func (r *fakeSurveyRepository) Update(_ context.Context, survey *domain.Survey) error {
	if _, ok := r.surveys[survey.ID]; ok {
		r.surveys[survey.ID] = *survey
	}
	r.ops.record("store.survey.update %s", survey.ID)
	return nil
}

func (r *fakeSurveyRepository) Delete(_ context.Context, id string) error {
	delete(r.surveys, id)
	r.ops.record("store.survey.delete %s", id)
	return nil
}

type fakeResultRepository struct {
	results map[string]domain.SurveyResult
	order   []string
	ops     *opLog
}

func newFakeResultRepository(ops *opLog) *fakeResultRepository {
	return &fakeResultRepository{results: make(map[string]domain.SurveyResult), ops: ops}
}

func (r *fakeResultRepository) FindByID(_ context.Context, id string) (*domain.SurveyResult, error) {
	result, ok := r.results[id]
	if !ok {
		return nil, nil
	}
	copied := result
	return &copied, nil
}

func (r *fakeResultRepository) FindByResponder(_ context.Context, userID string) ([]domain.SurveyResult, error) {
	matches := make([]domain.SurveyResult, 0)
	for _, id := range r.order {
		if result, ok := r.results[id]; ok && result.Responder.UserID == userID {
			matches = append(matches, result)
		}
	}
	return matches, nil
}

func (r *fakeResultRepository) FindBySurvey(_ context.Context, surveyID string) ([]domain.SurveyResult, error) {
	matches := make([]domain.SurveyResult, 0)
	for _, id := range r.order {
		if result, ok := r.results[id]; ok && result.SurveyID == surveyID {
			matches = append(matches, result)
		}
	}
	return matches, nil
}

func (r *fakeResultRepository) Insert(_ context.Context, result *domain.SurveyResult) error {
	r.results[result.ID] = *result
	r.order = append(r.order, result.ID)
	r.ops.record("store.result.insert %s", result.ID)
	return nil
}

func (r *fakeResultRepository) Update(_ context.Context, result *domain.SurveyResult) error {
	if _, ok := r.results[result.ID]; ok {
		r.results[result.ID] = *result
	}
	r.ops.record("store.result.update %s", result.ID)
	return nil
}

func (r *fakeResultRepository) Delete(_ context.Context, id string) error {
	delete(r.results, id)
	r.ops.record("store.result.delete %s", id)
	return nil
}

// fakeStatisticIndex counts live entries per survey id; Add inserts blindly
// so a duplicated registration would be visible as a count above one.
type fakeStatisticIndex struct {
	entries     map[string]int
	resultCalls []string
	ops         *opLog
}

func newFakeStatisticIndex(ops *opLog) *fakeStatisticIndex {
	return &fakeStatisticIndex{entries: make(map[string]int), ops: ops}
}

func (i *fakeStatisticIndex) AddSurveyStatistic(_ context.Context, survey *domain.Survey) error {
	i.entries[survey.ID]++
	i.ops.record("index.survey.add %s", survey.ID)
	return nil
}

func (i *fakeStatisticIndex) DeleteSurveyStatistic(_ context.Context, surveyID string) error {
	if i.entries[surveyID] > 0 {
		i.entries[surveyID]--
	}
	i.ops.record("index.survey.delete %s", surveyID)
	return nil
}

func (i *fakeStatisticIndex) AddSurveyResult(_ context.Context, result *domain.SurveyResult) error {
	i.resultCalls = append(i.resultCalls, result.ID)
	i.ops.record("index.result.add %s", result.ID)
	return nil
}

type seqGenerator struct {
	prefix string
	next   int
}

func (g *seqGenerator) NewID() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}

type testEnv struct {
	surveys    SurveyService
	results    ResultService
	surveyRepo *fakeSurveyRepository
	resultRepo *fakeResultRepository
	index      *fakeStatisticIndex
	ops        *opLog
}

func newTestEnv() *testEnv {
	ops := &opLog{}
	surveyRepo := newFakeSurveyRepository(ops)
	resultRepo := newFakeResultRepository(ops)
	index := newFakeStatisticIndex(ops)
	logger := log.New(io.Discard, "", 0)

	surveys := NewSurveyService(surveyRepo, index, &seqGenerator{prefix: "survey"}, logger)
	results := NewResultService(surveys, resultRepo, index, &seqGenerator{prefix: "result"}, logger)

	return &testEnv{
		surveys:    surveys,
		results:    results,
		surveyRepo: surveyRepo,
		resultRepo: resultRepo,
		index:      index,
		ops:        ops,
	}
}

func sampleSurveyCommand(title string) SurveyCommand {
	return SurveyCommand{
		Type:  "poll",
		Title: title,
		Intro: "intro text",
		Subjects: []SubjectCommand{
			{
				ID:       1,
				Type:     "radio",
				Question: "first question",
				Answers: []AnswerCommand{
					{Value: "yes"},
					{Value: "no"},
				},
			},
		},
	}
}

func sampleResultCommand(surveyID string) ResultCommand {
	return ResultCommand{
		SurveyID:  surveyID,
		Responder: ResponderCommand{NickName: "respondent"},
		Answers: []AnswerResultCommand{
			{ID: 1, Result: []AnswerCommand{{Value: "yes"}}},
		},
	}
}
