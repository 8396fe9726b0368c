package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/chatform/chatform-services/api/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatisticRepository は派生ビューである統計インデックスの Mongo 実装。
// アンケートの存在につきエントリ 1 件を保ち、サービス層からの通知だけで更新される。
type StatisticRepository struct {
	statistics *mongo.Collection
}

// NewStatisticRepository は統計コレクションを束縛したリポジトリを生成する。
func NewStatisticRepository(db *mongo.Database, statisticCollection string) *StatisticRepository {
	return &StatisticRepository{statistics: db.Collection(statisticCollection)}
}

// AddSurveyStatistic は surveyId をキーに upsert する。同一アンケートへの再登録は
// エントリを置き換えるだけで、重複は生まない。
func (r *StatisticRepository) AddSurveyStatistic(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	doc := StatisticDocument{
		SurveyID:     survey.ID,
		UserID:       survey.UserID,
		Type:         survey.Type.String(),
		Title:        survey.Title,
		SubjectCount: len(survey.Subjects),
		UpdatedAt:    time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.statistics.ReplaceOne(ctx, bson.M{"surveyId": survey.ID}, doc, opts)
	return err
}

// DeleteSurveyStatistic はエントリが存在しない ID でもエラーにしない。
func (r *StatisticRepository) DeleteSurveyStatistic(ctx context.Context, surveyID string) error {
	_, err := r.statistics.DeleteOne(ctx, bson.M{"surveyId": surveyID})
	return err
}

// AddSurveyResult は対象アンケートのエントリがあれば responseCount を加算する。
// upsert しないため、削除済みアンケートへの回答は何もしない。
func (r *StatisticRepository) AddSurveyResult(ctx context.Context, result *domain.SurveyResult) error {
	if result == nil {
		return errors.New("result payload is nil")
	}
	update := bson.M{
		"$inc": bson.M{"responseCount": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := r.statistics.UpdateOne(ctx, bson.M{"surveyId": result.SurveyID}, update)
	return err
}
