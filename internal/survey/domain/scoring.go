package domain

// ScoreExam grades a set of chosen answers against a survey's correct flags.
// A subject scores one point only when the chosen answers match the correct
// set exactly; partial or extra selections score nothing. Subjects without
// a correct answer defined are skipped.
func ScoreExam(survey *Survey, answers []AnswerResult) int {
	if survey == nil {
		return 0
	}

	chosen := make(map[int][]Answer, len(answers))
	for _, answer := range answers {
		chosen[answer.ID] = answer.Result
	}

	score := 0
	for _, subject := range survey.Subjects {
		correct := make(map[string]struct{})
		for _, option := range subject.Answers {
			if option.Correct {
				correct[option.Value] = struct{}{}
			}
		}
		if len(correct) == 0 {
			continue
		}
		if isCorrectAllOrNothing(chosen[subject.ID], correct) {
			score++
		}
	}
	return score
}

// isCorrectAllOrNothing requires the selection to cover every correct value
// exactly once and nothing else.
func isCorrectAllOrNothing(selected []Answer, correct map[string]struct{}) bool {
	if len(selected) != len(correct) {
		return false
	}
	seen := make(map[string]struct{}, len(selected))
	for _, answer := range selected {
		if _, ok := correct[answer.Value]; !ok {
			return false
		}
		if _, dup := seen[answer.Value]; dup {
			return false
		}
		seen[answer.Value] = struct{}{}
	}
	return true
}

// ResolveConclusion returns the id of the first conclusion whose score range
// contains score, or nil when no range matches.
func ResolveConclusion(survey *Survey, score int) *int {
	if survey == nil {
		return nil
	}
	for _, conclusion := range survey.Conclusions {
		if score >= conclusion.ScoreRange.Min && score <= conclusion.ScoreRange.Max {
			id := conclusion.ID
			return &id
		}
	}
	return nil
}
