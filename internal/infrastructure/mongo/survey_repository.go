package mongo

import (
	"context"
	"errors"

	"github.com/chatform/chatform-services/api/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SurveyRepository はアンケート集約を MongoDB で扱う実装リポジトリ。
// 検索はすべてアプリケーション採番の `id` / `userId` フィールドに対して行う。
type SurveyRepository struct {
	surveys *mongo.Collection
}

// NewSurveyRepository はアンケートコレクションを束縛したリポジトリを生成する。
func NewSurveyRepository(db *mongo.Database, surveyCollection string) *SurveyRepository {
	return &SurveyRepository{surveys: db.Collection(surveyCollection)}
}

// FindByID は単一キー検索。該当なしは (nil, nil) として返す。
func (r *SurveyRepository) FindByID(ctx context.Context, id string) (*domain.Survey, error) {
	var doc SurveyDocument
	err := r.surveys.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	survey, err := mapSurveyDocument(doc)
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// FindByUser は所有ユーザーのアンケート一覧をストアの自然順で返す。
func (r *SurveyRepository) FindByUser(ctx context.Context, userID string) ([]domain.Survey, error) {
	cursor, err := r.surveys.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := make([]domain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		survey, err := mapSurveyDocument(doc)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, survey)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return surveys, nil
}

// Insert はドメインアンケートを保存形式へ射影して新規登録する。
func (r *SurveyRepository) Insert(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	doc := mapDomainSurveyToDocument(survey)
	doc.OID = primitive.NewObjectID()
	_, err := r.surveys.InsertOne(ctx, doc)
	return err
}

// Update は可変フィールドを丸ごと差し替える。subjects/conclusions もマージせず全置換。
func (r *SurveyRepository) Update(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	doc := mapDomainSurveyToDocument(survey)
	update := bson.M{
		"userId":      doc.UserID,
		"type":        doc.Type,
		"title":       doc.Title,
		"intro":       doc.Intro,
		"avatarUrl":   doc.AvatarURL,
		"subjects":    doc.Subjects,
		"conclusions": doc.Conclusions,
		"updatedAt":   doc.UpdatedAt,
	}
	_, err := r.surveys.UpdateOne(ctx, bson.M{"id": survey.ID}, bson.M{"$set": update})
	return err
}

// Delete は該当 0 件でもエラーにしない。
func (r *SurveyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.surveys.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// mapSurveyDocument は Mongo 文書をドメイン Survey へ復元する。
func mapSurveyDocument(doc SurveyDocument) (domain.Survey, error) {
	surveyType, err := domain.NewSurveyType(doc.Type)
	if err != nil {
		return domain.Survey{}, err
	}
	subjects := make([]domain.Subject, 0, len(doc.Subjects))
	for _, subject := range doc.Subjects {
		subjectType, err := domain.NewSubjectType(subject.Type)
		if err != nil {
			return domain.Survey{}, err
		}
		subjects = append(subjects, domain.Subject{
			ID:       subject.ID,
			Type:     subjectType,
			NLU:      subject.NLU,
			Question: subject.Question,
			ImageURL: subject.ImageURL,
			Answers:  mapAnswerDocuments(subject.Answers),
		})
	}
	conclusions := make([]domain.Conclusion, 0, len(doc.Conclusions))
	for _, conclusion := range doc.Conclusions {
		conclusions = append(conclusions, domain.Conclusion{
			ID:         conclusion.ID,
			ScoreRange: domain.ScoreRange(conclusion.ScoreRange),
			Text:       conclusion.Text,
			ImageURL:   conclusion.ImageURL,
		})
	}
	return domain.Survey{
		ID:          doc.ID,
		UserID:      doc.UserID,
		Type:        surveyType,
		Title:       doc.Title,
		Intro:       doc.Intro,
		AvatarURL:   doc.AvatarURL,
		Subjects:    subjects,
		Conclusions: conclusions,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// mapDomainSurveyToDocument はドメイン Survey を保存形式に射影する。
func mapDomainSurveyToDocument(survey *domain.Survey) SurveyDocument {
	subjects := make([]SubjectDocument, 0, len(survey.Subjects))
	for _, subject := range survey.Subjects {
		subjects = append(subjects, SubjectDocument{
			ID:       subject.ID,
			Type:     subject.Type.String(),
			NLU:      subject.NLU,
			Question: subject.Question,
			ImageURL: subject.ImageURL,
			Answers:  mapDomainAnswers(subject.Answers),
		})
	}
	conclusions := make([]ConclusionDocument, 0, len(survey.Conclusions))
	for _, conclusion := range survey.Conclusions {
		conclusions = append(conclusions, ConclusionDocument{
			ID:         conclusion.ID,
			ScoreRange: ScoreRangeDocument(conclusion.ScoreRange),
			Text:       conclusion.Text,
			ImageURL:   conclusion.ImageURL,
		})
	}
	return SurveyDocument{
		ID:          survey.ID,
		UserID:      survey.UserID,
		Type:        survey.Type.String(),
		Title:       survey.Title,
		Intro:       survey.Intro,
		AvatarURL:   survey.AvatarURL,
		Subjects:    subjects,
		Conclusions: conclusions,
		CreatedAt:   survey.CreatedAt,
		UpdatedAt:   survey.UpdatedAt,
	}
}

func mapAnswerDocuments(docs []AnswerDocument) []domain.Answer {
	if len(docs) == 0 {
		return nil
	}
	answers := make([]domain.Answer, 0, len(docs))
	for _, doc := range docs {
		answers = append(answers, domain.Answer{
			Value:    doc.Value,
			ImageURL: doc.ImageURL,
			Correct:  doc.Correct,
			Next:     doc.Next,
			End:      doc.End,
		})
	}
	return answers
}

func mapDomainAnswers(answers []domain.Answer) []AnswerDocument {
	if len(answers) == 0 {
		return nil
	}
	docs := make([]AnswerDocument, 0, len(answers))
	for _, answer := range answers {
		docs = append(docs, AnswerDocument{
			Value:    answer.Value,
			ImageURL: answer.ImageURL,
			Correct:  answer.Correct,
			Next:     answer.Next,
			End:      answer.End,
		})
	}
	return docs
}
