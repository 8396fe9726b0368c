package domain

import "testing"

func examSurvey() *Survey {
	return &Survey{
		ID:   "exam-1",
		Type: "exam",
		Subjects: []Subject{
			{
				ID:   1,
				Type: "radio",
				Answers: []Answer{
					{Value: "a", Correct: true},
					{Value: "b"},
				},
			},
			{
				ID:   2,
				Type: "checkbox",
				Answers: []Answer{
					{Value: "a", Correct: true},
					{Value: "b", Correct: true},
					{Value: "c"},
				},
			},
			{
				// Free text, no correct option defined.
				ID:      3,
				Type:    "text",
				Answers: []Answer{{Value: "anything"}},
			},
		},
		Conclusions: []Conclusion{
			{ID: 1, ScoreRange: ScoreRange{Min: 0, Max: 0}, Text: "failed"},
			{ID: 2, ScoreRange: ScoreRange{Min: 1, Max: 1}, Text: "close"},
			{ID: 3, ScoreRange: ScoreRange{Min: 2, Max: 2}, Text: "passed"},
		},
	}
}

func TestScoreExam(t *testing.T) {
	tests := []struct {
		name    string
		answers []AnswerResult
		want    int
	}{
		{
			name: "all correct",
			answers: []AnswerResult{
				{ID: 1, Result: []Answer{{Value: "a"}}},
				{ID: 2, Result: []Answer{{Value: "a"}, {Value: "b"}}},
				{ID: 3, Result: []Answer{{Value: "free text"}}},
			},
			want: 2,
		},
		{
			name: "wrong radio choice",
			answers: []AnswerResult{
				{ID: 1, Result: []Answer{{Value: "b"}}},
				{ID: 2, Result: []Answer{{Value: "a"}, {Value: "b"}}},
			},
			want: 1,
		},
		{
			name: "partial checkbox selection scores nothing",
			answers: []AnswerResult{
				{ID: 1, Result: []Answer{{Value: "a"}}},
				{ID: 2, Result: []Answer{{Value: "a"}}},
			},
			want: 1,
		},
		{
			name: "extra checkbox selection scores nothing",
			answers: []AnswerResult{
				{ID: 1, Result: []Answer{{Value: "a"}}},
				{ID: 2, Result: []Answer{{Value: "a"}, {Value: "b"}, {Value: "c"}}},
			},
			want: 1,
		},
		{
			name: "duplicate selection scores nothing",
			answers: []AnswerResult{
				{ID: 2, Result: []Answer{{Value: "a"}, {Value: "a"}}},
			},
			want: 0,
		},
		{
			name:    "no answers",
			answers: nil,
			want:    0,
		},
		{
			name: "answers for unknown subject ignored",
			answers: []AnswerResult{
				{ID: 99, Result: []Answer{{Value: "a"}}},
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreExam(examSurvey(), tt.answers); got != tt.want {
				t.Errorf("ScoreExam() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreExamNilSurvey(t *testing.T) {
	if got := ScoreExam(nil, []AnswerResult{{ID: 1}}); got != 0 {
		t.Errorf("ScoreExam(nil) = %d, want 0", got)
	}
}

func TestResolveConclusion(t *testing.T) {
	survey := examSurvey()

	tests := []struct {
		name  string
		score int
		want  *int
	}{
		{name: "lower boundary", score: 0, want: intPtr(1)},
		{name: "middle", score: 1, want: intPtr(2)},
		{name: "upper boundary", score: 2, want: intPtr(3)},
		{name: "above every range", score: 3, want: nil},
		{name: "below every range", score: -1, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveConclusion(survey, tt.score)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ResolveConclusion(%d) = %d, want nil", tt.score, *got)
			case tt.want != nil && got == nil:
				t.Errorf("ResolveConclusion(%d) = nil, want %d", tt.score, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("ResolveConclusion(%d) = %d, want %d", tt.score, *got, *tt.want)
			}
		})
	}
}

func TestResolveConclusionOverlappingRanges(t *testing.T) {
	survey := &Survey{
		Conclusions: []Conclusion{
			{ID: 1, ScoreRange: ScoreRange{Min: 0, Max: 10}},
			{ID: 2, ScoreRange: ScoreRange{Min: 5, Max: 10}},
		},
	}
	got := ResolveConclusion(survey, 7)
	if got == nil || *got != 1 {
		t.Errorf("ResolveConclusion() = %v, want first matching conclusion", got)
	}
}

func TestResolveConclusionNilSurvey(t *testing.T) {
	if got := ResolveConclusion(nil, 0); got != nil {
		t.Errorf("ResolveConclusion(nil) = %d, want nil", *got)
	}
}

func intPtr(v int) *int { return &v }
