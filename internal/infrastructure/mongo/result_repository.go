package mongo

import (
	"context"
	"errors"

	"github.com/chatform/chatform-services/api/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResultRepository は回答集約を MongoDB で扱う実装リポジトリ。
type ResultRepository struct {
	results *mongo.Collection
}

// NewResultRepository は回答コレクションを束縛したリポジトリを生成する。
func NewResultRepository(db *mongo.Database, resultCollection string) *ResultRepository {
	return &ResultRepository{results: db.Collection(resultCollection)}
}

// FindByID は単一キー検索。該当なしは (nil, nil) として返す。
func (r *ResultRepository) FindByID(ctx context.Context, id string) (*domain.SurveyResult, error) {
	var doc ResultDocument
	err := r.results.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	result, err := mapResultDocument(doc)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByResponder は回答者ユーザー ID による二次検索。
func (r *ResultRepository) FindByResponder(ctx context.Context, userID string) ([]domain.SurveyResult, error) {
	return r.findMany(ctx, bson.M{"responder.userId": userID})
}

// FindBySurvey はアンケート ID による二次検索。
func (r *ResultRepository) FindBySurvey(ctx context.Context, surveyID string) ([]domain.SurveyResult, error) {
	return r.findMany(ctx, bson.M{"surveyId": surveyID})
}

func (r *ResultRepository) findMany(ctx context.Context, filter bson.M) ([]domain.SurveyResult, error) {
	cursor, err := r.results.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]domain.SurveyResult, 0)
	for cursor.Next(ctx) {
		var doc ResultDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result, err := mapResultDocument(doc)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Insert はスナップショットを含む回答全体を新規登録する。
func (r *ResultRepository) Insert(ctx context.Context, result *domain.SurveyResult) error {
	if result == nil {
		return errors.New("result payload is nil")
	}
	doc := mapDomainResultToDocument(result)
	doc.OID = primitive.NewObjectID()
	_, err := r.results.InsertOne(ctx, doc)
	return err
}

// Update は回答者・回答・スコア・surveyId を差し替える。survey スナップショットは
// サービス層で既存値が引き継がれたものをそのまま書き戻す。
func (r *ResultRepository) Update(ctx context.Context, result *domain.SurveyResult) error {
	if result == nil {
		return errors.New("result payload is nil")
	}
	doc := mapDomainResultToDocument(result)
	update := bson.M{
		"surveyId":   doc.SurveyID,
		"responder":  doc.Responder,
		"answers":    doc.Answers,
		"score":      doc.Score,
		"conclusion": doc.Conclusion,
		"survey":     doc.Survey,
		"updatedAt":  doc.UpdatedAt,
	}
	_, err := r.results.UpdateOne(ctx, bson.M{"id": result.ID}, bson.M{"$set": update})
	return err
}

// Delete は該当 0 件でもエラーにしない。
func (r *ResultRepository) Delete(ctx context.Context, id string) error {
	_, err := r.results.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// mapResultDocument は Mongo 文書をドメイン SurveyResult へ復元する。
func mapResultDocument(doc ResultDocument) (domain.SurveyResult, error) {
	answers := make([]domain.AnswerResult, 0, len(doc.Answers))
	for _, answer := range doc.Answers {
		answers = append(answers, domain.AnswerResult{
			ID:     answer.ID,
			Result: mapAnswerDocuments(answer.Result),
		})
	}

	var snapshot *domain.Survey
	if doc.Survey != nil {
		survey, err := mapSurveyDocument(*doc.Survey)
		if err != nil {
			return domain.SurveyResult{}, err
		}
		snapshot = &survey
	}

	return domain.SurveyResult{
		ID:       doc.ID,
		SurveyID: doc.SurveyID,
		Responder: domain.Responder{
			UserID:    doc.Responder.UserID,
			NickName:  doc.Responder.NickName,
			AvatarURL: doc.Responder.AvatarURL,
		},
		Answers:    answers,
		Score:      doc.Score,
		Conclusion: doc.Conclusion,
		Survey:     snapshot,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// mapDomainResultToDocument はドメイン SurveyResult を保存形式に射影する。
func mapDomainResultToDocument(result *domain.SurveyResult) ResultDocument {
	answers := make([]AnswerResultDocument, 0, len(result.Answers))
	for _, answer := range result.Answers {
		answers = append(answers, AnswerResultDocument{
			ID:     answer.ID,
			Result: mapDomainAnswers(answer.Result),
		})
	}

	var snapshot *SurveyDocument
	if result.Survey != nil {
		doc := mapDomainSurveyToDocument(result.Survey)
		snapshot = &doc
	}

	return ResultDocument{
		ID:       result.ID,
		SurveyID: result.SurveyID,
		Responder: ResponderDocument{
			UserID:    result.Responder.UserID,
			NickName:  result.Responder.NickName,
			AvatarURL: result.Responder.AvatarURL,
		},
		Answers:    answers,
		Score:      result.Score,
		Conclusion: result.Conclusion,
		Survey:     snapshot,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}
}
