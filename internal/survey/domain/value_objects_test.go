package domain

import "testing"

func TestNewSurveyType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SurveyType
		wantErr bool
	}{
		{name: "inquiry", input: "inquiry", want: "inquiry"},
		{name: "poll", input: "poll", want: "poll"},
		{name: "exam", input: "exam", want: "exam"},
		{name: "branch quiz", input: "branch-quiz", want: "branch-quiz"},
		{name: "trims whitespace", input: " poll ", want: "poll"},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "riddle", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSurveyType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSurveyType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NewSurveyType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSurveyTypeGraded(t *testing.T) {
	for _, graded := range []SurveyType{"exam", "branch-quiz"} {
		if !graded.Graded() {
			t.Errorf("%s surveys must be graded", graded)
		}
	}
	for _, ungraded := range []SurveyType{"inquiry", "poll"} {
		if ungraded.Graded() {
			t.Errorf("%s surveys must not be auto-graded", ungraded)
		}
	}
}

func TestNewSubjectType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "radio", input: "radio"},
		{name: "checkbox", input: "checkbox"},
		{name: "text", input: "text"},
		{name: "date", input: "date"},
		{name: "position", input: "position"},
		{name: "phone", input: "phone"},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "slider", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSubjectType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSubjectType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.input {
				t.Errorf("NewSubjectType(%q) = %q", tt.input, got)
			}
		})
	}
}
