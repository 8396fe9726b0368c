package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	mongoURI        string
	database        string
	surveyCount     int
	resultsPer      int
	userCount       int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	surveys    string
	results    string
	statistics string
}

// シーダーは API 本体に依存せず、保存形式をローカル定義で持つ。
type surveyDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	GlobalID    string               `bson:"id"`
	UserID      string               `bson:"userId"`
	Type        string               `bson:"type"`
	Title       string               `bson:"title"`
	Intro       string               `bson:"intro,omitempty"`
	Subjects    []subjectDocument    `bson:"subjects"`
	Conclusions []conclusionDocument `bson:"conclusions"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type subjectDocument struct {
	ID       int              `bson:"id"`
	Type     string           `bson:"type"`
	Question string           `bson:"question"`
	Answers  []answerDocument `bson:"answers"`
}

type answerDocument struct {
	Value   string `bson:"value"`
	Correct bool   `bson:"correct,omitempty"`
}

type conclusionDocument struct {
	ID         int                `bson:"id"`
	ScoreRange scoreRangeDocument `bson:"scoreRange"`
	Text       string             `bson:"text"`
}

type scoreRangeDocument struct {
	Min int `bson:"min"`
	Max int `bson:"max"`
}

type resultDocument struct {
	ID        primitive.ObjectID     `bson:"_id"`
	GlobalID  string                 `bson:"id"`
	SurveyID  string                 `bson:"surveyId"`
	Responder responderDocument      `bson:"responder"`
	Answers   []answerResultDocument `bson:"answers"`
	Score     *int                   `bson:"score,omitempty"`
	Survey    *surveyDocument        `bson:"survey,omitempty"`
	CreatedAt time.Time              `bson:"created_at"`
	UpdatedAt time.Time              `bson:"updatedAt"`
}

type responderDocument struct {
	UserID   string `bson:"userId"`
	NickName string `bson:"nickName,omitempty"`
}

type answerResultDocument struct {
	ID     int              `bson:"id"`
	Result []answerDocument `bson:"result"`
}

type statisticDocument struct {
	SurveyID      string    `bson:"surveyId"`
	UserID        string    `bson:"userId"`
	Type          string    `bson:"type"`
	Title         string    `bson:"title"`
	SubjectCount  int       `bson:"subjectCount"`
	ResponseCount int       `bson:"responseCount"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

var surveyTypes = []string{"inquiry", "poll", "exam", "branch-quiz"}

func main() {
	opts := parseFlags()
	rng := rand.New(rand.NewSource(opts.randomSeed))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(opts.database)
	cols := collections{surveys: "surveys", results: "survey_results", statistics: "survey_statistics"}

	if opts.dropCollections {
		for _, name := range []string{cols.surveys, cols.results, cols.statistics} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Fatalf("コレクション %s の削除に失敗しました: %v", name, err)
			}
		}
	}

	users := make([]string, 0, opts.userCount)
	for i := 0; i < opts.userCount; i++ {
		users = append(users, fmt.Sprintf("user-%03d", i+1))
	}

	seeded := 0
	for i := 0; i < opts.surveyCount; i++ {
		owner := users[rng.Intn(len(users))]
		survey := buildSurvey(rng, owner, i)
		if _, err := db.Collection(cols.surveys).InsertOne(ctx, survey); err != nil {
			log.Fatalf("アンケートの登録に失敗しました: %v", err)
		}

		stat := statisticDocument{
			SurveyID:     survey.GlobalID,
			UserID:       survey.UserID,
			Type:         survey.Type,
			Title:        survey.Title,
			SubjectCount: len(survey.Subjects),
			UpdatedAt:    time.Now().UTC(),
		}

		responses := rng.Intn(opts.resultsPer + 1)
		for j := 0; j < responses; j++ {
			responder := users[rng.Intn(len(users))]
			result := buildResult(rng, survey, responder)
			if _, err := db.Collection(cols.results).InsertOne(ctx, result); err != nil {
				log.Fatalf("回答の登録に失敗しました: %v", err)
			}
			stat.ResponseCount++
		}

		if _, err := db.Collection(cols.statistics).InsertOne(ctx, stat); err != nil {
			log.Fatalf("統計エントリの登録に失敗しました: %v", err)
		}
		seeded++
	}

	count, err := db.Collection(cols.results).CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Fatalf("回答件数の確認に失敗しました: %v", err)
	}
	log.Printf("シード完了: アンケート %d 件 / 回答 %d 件", seeded, count)
}

func parseFlags() seedOptions {
	opts := seedOptions{}
	flag.StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB 接続先 URI")
	flag.StringVar(&opts.database, "db", "chatform", "データベース名")
	flag.IntVar(&opts.surveyCount, "surveys", 20, "投入するアンケート件数")
	flag.IntVar(&opts.resultsPer, "results-per", 5, "アンケートあたりの最大回答件数")
	flag.IntVar(&opts.userCount, "users", 8, "利用するダミーユーザー数")
	flag.BoolVar(&opts.dropCollections, "drop", false, "投入前に既存コレクションを削除する")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード")
	flag.Parse()
	return opts
}

func buildSurvey(rng *rand.Rand, owner string, index int) surveyDocument {
	surveyType := surveyTypes[rng.Intn(len(surveyTypes))]
	now := time.Now().UTC().Add(-time.Duration(rng.Intn(72)) * time.Hour)

	subjects := make([]subjectDocument, 0, 3)
	for s := 1; s <= 3; s++ {
		answers := []answerDocument{
			{Value: "はい", Correct: surveyType == "exam" && s%2 == 1},
			{Value: "いいえ", Correct: surveyType == "exam" && s%2 == 0},
			{Value: "わからない"},
		}
		subjects = append(subjects, subjectDocument{
			ID:       s,
			Type:     "radio",
			Question: fmt.Sprintf("設問 %d: サンプルの質問です", s),
			Answers:  answers,
		})
	}

	conclusions := []conclusionDocument{
		{ID: 1, ScoreRange: scoreRangeDocument{Min: 0, Max: 1}, Text: "もう少し頑張りましょう"},
		{ID: 2, ScoreRange: scoreRangeDocument{Min: 2, Max: 3}, Text: "よくできました"},
	}

	return surveyDocument{
		ID:          primitive.NewObjectID(),
		GlobalID:    uuid.NewString(),
		UserID:      owner,
		Type:        surveyType,
		Title:       fmt.Sprintf("サンプルアンケート %03d", index+1),
		Intro:       "シーダーが生成したサンプルです",
		Subjects:    subjects,
		Conclusions: conclusions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func buildResult(rng *rand.Rand, survey surveyDocument, responder string) resultDocument {
	now := survey.CreatedAt.Add(time.Duration(rng.Intn(48)) * time.Hour)

	answers := make([]answerResultDocument, 0, len(survey.Subjects))
	score := 0
	for _, subject := range survey.Subjects {
		choice := subject.Answers[rng.Intn(len(subject.Answers))]
		if choice.Correct {
			score++
		}
		answers = append(answers, answerResultDocument{
			ID:     subject.ID,
			Result: []answerDocument{choice},
		})
	}

	snapshot := survey
	doc := resultDocument{
		ID:        primitive.NewObjectID(),
		GlobalID:  uuid.NewString(),
		SurveyID:  survey.GlobalID,
		Responder: responderDocument{UserID: responder, NickName: responder},
		Answers:   answers,
		Survey:    &snapshot,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if survey.Type == "exam" {
		doc.Score = &score
	}
	return doc
}
