package application

import (
	"context"
	"errors"
	"testing"
)

func TestSurveyServiceCreate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cmd := sampleSurveyCommand("customer feedback")
	id, err := env.surveys.Create(ctx, "u1", cmd)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == "" {
		t.Fatal("Create() returned empty id")
	}

	survey, err := env.surveys.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if survey == nil {
		t.Fatal("GetByID() returned nil for freshly created survey")
	}
	if survey.UserID != "u1" {
		t.Errorf("UserID = %q, want %q (taken from the call argument)", survey.UserID, "u1")
	}
	if survey.Title != cmd.Title || survey.Intro != cmd.Intro {
		t.Errorf("stored fields = (%q, %q), want (%q, %q)", survey.Title, survey.Intro, cmd.Title, cmd.Intro)
	}
	if len(survey.Subjects) != 1 || len(survey.Subjects[0].Answers) != 2 {
		t.Errorf("subjects not preserved: %+v", survey.Subjects)
	}
	if env.index.entries[id] != 1 {
		t.Errorf("statistic entries for %s = %d, want 1", id, env.index.entries[id])
	}
}

func TestSurveyServiceCreateInvalidInput(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  SurveyCommand
	}{
		{name: "missing title", cmd: SurveyCommand{Type: "poll"}},
		{name: "invalid type", cmd: SurveyCommand{Type: "riddle", Title: "t"}},
		{
			name: "invalid subject type",
			cmd: SurveyCommand{
				Type:     "poll",
				Title:    "t",
				Subjects: []SubjectCommand{{ID: 1, Type: "slider"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.surveys.Create(ctx, "u1", tt.cmd)
			if err == nil {
				t.Fatal("Create() expected error, got nil")
			}
			var invalid *ValidationError
			if !errors.As(err, &invalid) {
				t.Errorf("Create() error = %T, want ValidationError", err)
			}
		})
	}
	if len(env.surveyRepo.surveys) != 0 {
		t.Errorf("store modified by rejected input: %d surveys", len(env.surveyRepo.surveys))
	}
}

func TestSurveyServiceCreateWritesStoreBeforeIndex(t *testing.T) {
	env := newTestEnv()

	id, err := env.surveys.Create(context.Background(), "u1", sampleSurveyCommand("ordering"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := []string{
		"store.survey.insert " + id,
		"index.survey.add " + id,
	}
	if len(env.ops.entries) != len(want) {
		t.Fatalf("op log = %v, want %v", env.ops.entries, want)
	}
	for i, entry := range want {
		if env.ops.entries[i] != entry {
			t.Errorf("op[%d] = %q, want %q", i, env.ops.entries[i], entry)
		}
	}
}

func TestSurveyServiceUpdateWithoutIDCreates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id, err := env.surveys.Update(ctx, "u1", "", sampleSurveyCommand("acts like create"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	survey, err := env.surveys.GetByID(ctx, id)
	if err != nil || survey == nil {
		t.Fatalf("GetByID() = (%v, %v), want stored survey", survey, err)
	}
	if survey.Title != "acts like create" || survey.UserID != "u1" {
		t.Errorf("stored survey = %+v", survey)
	}
	if env.index.entries[id] != 1 {
		t.Errorf("statistic entries = %d, want 1", env.index.entries[id])
	}
}

func TestSurveyServiceUpdateNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.surveys.Update(context.Background(), "u1", "missing-id", sampleSurveyCommand("x"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Update() error = %v, want NotFoundError", err)
	}
	if notFound.ID != "missing-id" {
		t.Errorf("NotFoundError.ID = %q, want the requested id", notFound.ID)
	}
	if len(env.surveyRepo.surveys) != 0 {
		t.Error("store modified by failed update")
	}
	if len(env.ops.entries) != 0 {
		t.Errorf("unexpected mutations: %v", env.ops.entries)
	}
}

func TestSurveyServiceUpdateReplacesFieldsWholesale(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id, err := env.surveys.Create(ctx, "u1", sampleSurveyCommand("before"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	created, _ := env.surveys.GetByID(ctx, id)

	updateCmd := SurveyCommand{
		Type:  "exam",
		Title: "after",
		Subjects: []SubjectCommand{
			{ID: 1, Type: "checkbox", Question: "q1", Answers: []AnswerCommand{{Value: "a", Correct: true}}},
			{ID: 2, Type: "text", Question: "q2"},
		},
	}
	if _, err := env.surveys.Update(ctx, "u1", id, updateCmd); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	updated, _ := env.surveys.GetByID(ctx, id)
	if updated.Title != "after" || updated.Type.String() != "exam" {
		t.Errorf("fields not replaced: %+v", updated)
	}
	if updated.Intro != "" {
		t.Errorf("Intro = %q, want wholesale replacement, not a merge", updated.Intro)
	}
	if len(updated.Subjects) != 2 {
		t.Errorf("subjects = %d, want nested arrays replaced wholesale", len(updated.Subjects))
	}
	if updated.UserID != "u1" {
		t.Errorf("UserID = %q, ownership must survive updates", updated.UserID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt changed on update")
	}
}

func TestSurveyServiceUpdateReindexesExactlyOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id, err := env.surveys.Create(ctx, "u1", sampleSurveyCommand("reindex"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	env.ops.entries = nil

	if _, err := env.surveys.Update(ctx, "u1", id, sampleSurveyCommand("reindexed")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if env.index.entries[id] != 1 {
		t.Errorf("statistic entries = %d, want exactly 1 after delete-then-add", env.index.entries[id])
	}
	want := []string{
		"store.survey.update " + id,
		"index.survey.delete " + id,
		"index.survey.add " + id,
	}
	if len(env.ops.entries) != len(want) {
		t.Fatalf("op log = %v, want %v", env.ops.entries, want)
	}
	for i, entry := range want {
		if env.ops.entries[i] != entry {
			t.Errorf("op[%d] = %q, want %q", i, env.ops.entries[i], entry)
		}
	}
}

func TestSurveyServiceDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id, err := env.surveys.Create(ctx, "u1", sampleSurveyCommand("doomed"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := env.surveys.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	survey, err := env.surveys.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if survey != nil {
		t.Error("survey still present after delete")
	}
	if env.index.entries[id] != 0 {
		t.Errorf("statistic entries = %d, want 0", env.index.entries[id])
	}

	// Deleting an already-deleted id is a no-op, not an error.
	if err := env.surveys.Delete(ctx, id); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestSurveyServiceGetByUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.surveys.Create(ctx, "u1", sampleSurveyCommand("one")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := env.surveys.Create(ctx, "u2", sampleSurveyCommand("two")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := env.surveys.Create(ctx, "u1", sampleSurveyCommand("three")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	owned, err := env.surveys.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUser() error = %v", err)
	}
	if len(owned) != 2 {
		t.Errorf("GetByUser() = %d surveys, want 2", len(owned))
	}

	none, err := env.surveys.GetByUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetByUser() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("GetByUser() for unknown user = %d surveys, want 0", len(none))
	}
}
