package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyDocument は MongoDB 上でのアンケートスキーマを Go 構造体として表現したもの。
// グローバル ID は `_id` とは別に、アプリケーション採番の `id` フィールドへ保持する。
type SurveyDocument struct {
	OID         primitive.ObjectID   `bson:"_id,omitempty"`
	ID          string               `bson:"id"`
	UserID      string               `bson:"userId"`
	Type        string               `bson:"type"`
	Title       string               `bson:"title"`
	Intro       string               `bson:"intro,omitempty"`
	AvatarURL   string               `bson:"avatarUrl,omitempty"`
	Subjects    []SubjectDocument    `bson:"subjects"`
	Conclusions []ConclusionDocument `bson:"conclusions"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// SubjectDocument は設問の保存形式。
type SubjectDocument struct {
	ID       int              `bson:"id"`
	Type     string           `bson:"type"`
	NLU      bool             `bson:"nlu,omitempty"`
	Question string           `bson:"question"`
	ImageURL string           `bson:"imageUrl,omitempty"`
	Answers  []AnswerDocument `bson:"answers"`
}

// AnswerDocument は選択肢の保存形式。next/end は分岐クイズ用。
type AnswerDocument struct {
	Value    string `bson:"value"`
	ImageURL string `bson:"imageUrl,omitempty"`
	Correct  bool   `bson:"correct,omitempty"`
	Next     *int   `bson:"next,omitempty"`
	End      *int   `bson:"end,omitempty"`
}

// ConclusionDocument は診断結果の保存形式。
type ConclusionDocument struct {
	ID         int                `bson:"id"`
	ScoreRange ScoreRangeDocument `bson:"scoreRange"`
	Text       string             `bson:"text"`
	ImageURL   string             `bson:"imageUrl,omitempty"`
}

// ScoreRangeDocument はスコア範囲（両端含む）。
type ScoreRangeDocument struct {
	Min int `bson:"min"`
	Max int `bson:"max"`
}

// ResultDocument は回答ドキュメント。survey フィールドは提出時点のアンケート全体を
// 凍結したスナップショットで、元アンケートが編集・削除されても書き換えない。
type ResultDocument struct {
	OID        primitive.ObjectID     `bson:"_id,omitempty"`
	ID         string                 `bson:"id"`
	SurveyID   string                 `bson:"surveyId"`
	Responder  ResponderDocument      `bson:"responder"`
	Answers    []AnswerResultDocument `bson:"answers"`
	Score      *int                   `bson:"score,omitempty"`
	Conclusion *int                   `bson:"conclusion,omitempty"`
	Survey     *SurveyDocument        `bson:"survey,omitempty"`
	CreatedAt  time.Time              `bson:"created_at"`
	UpdatedAt  time.Time              `bson:"updatedAt"`
}

// ResponderDocument は回答者情報。
type ResponderDocument struct {
	UserID    string `bson:"userId"`
	NickName  string `bson:"nickName,omitempty"`
	AvatarURL string `bson:"avatarUrl,omitempty"`
}

// AnswerResultDocument は設問 ID と選択された回答の組。
type AnswerResultDocument struct {
	ID     int              `bson:"id"`
	Result []AnswerDocument `bson:"result"`
}

// StatisticDocument は統計インデックスのエントリ。アンケートの存在につき 1 件で、
// 回答追加時は responseCount のみを加算する。
type StatisticDocument struct {
	SurveyID      string    `bson:"surveyId"`
	UserID        string    `bson:"userId"`
	Type          string    `bson:"type"`
	Title         string    `bson:"title"`
	SubjectCount  int       `bson:"subjectCount"`
	ResponseCount int       `bson:"responseCount"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}
