package public

import (
	"time"

	"github.com/chatform/chatform-services/api/internal/survey/application"
	"github.com/chatform/chatform-services/api/internal/survey/domain"
)

type answerPayload struct {
	Value    string `json:"value"`
	ImageURL string `json:"imageUrl,omitempty"`
	Correct  bool   `json:"correct,omitempty"`
	Next     *int   `json:"next,omitempty"`
	End      *int   `json:"end,omitempty"`
}

type subjectPayload struct {
	ID       int             `json:"id"`
	Type     string          `json:"type"`
	NLU      bool            `json:"nlu,omitempty"`
	Question string          `json:"question"`
	ImageURL string          `json:"imageUrl,omitempty"`
	Answers  []answerPayload `json:"answers"`
}

type scoreRangePayload struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type conclusionPayload struct {
	ID         int               `json:"id"`
	ScoreRange scoreRangePayload `json:"scoreRange"`
	Text       string            `json:"text"`
	ImageURL   string            `json:"imageUrl,omitempty"`
}

type surveyUpsertRequest struct {
	Type        string              `json:"type"`
	Title       string              `json:"title"`
	Intro       string              `json:"intro,omitempty"`
	AvatarURL   string              `json:"avatarUrl,omitempty"`
	Subjects    []subjectPayload    `json:"subjects"`
	Conclusions []conclusionPayload `json:"conclusions"`
}

type surveyResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Type        string              `json:"type"`
	Title       string              `json:"title"`
	Intro       string              `json:"intro,omitempty"`
	AvatarURL   string              `json:"avatarUrl,omitempty"`
	Subjects    []subjectPayload    `json:"subjects"`
	Conclusions []conclusionPayload `json:"conclusions"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type responderPayload struct {
	UserID    string `json:"userId,omitempty"`
	NickName  string `json:"nickName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type answerResultPayload struct {
	ID     int             `json:"id"`
	Result []answerPayload `json:"result"`
}

type resultUpsertRequest struct {
	SurveyID   string                `json:"surveyId"`
	Responder  responderPayload      `json:"responder"`
	Answers    []answerResultPayload `json:"answers"`
	Score      *int                  `json:"score,omitempty"`
	Conclusion *int                  `json:"conclusion,omitempty"`
}

type resultResponse struct {
	ID         string                `json:"id"`
	SurveyID   string                `json:"surveyId"`
	Responder  responderPayload      `json:"responder"`
	Answers    []answerResultPayload `json:"answers"`
	Score      *int                  `json:"score,omitempty"`
	Conclusion *int                  `json:"conclusion,omitempty"`
	Survey     *surveyResponse       `json:"survey,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

type statisticResponse struct {
	CreatedCount  int `json:"createdCount"`
	ReceivedCount int `json:"receivedCount"`
}

type idResponse struct {
	ID string `json:"id"`
}

func surveyRequestToCommand(req surveyUpsertRequest) application.SurveyCommand {
	subjects := make([]application.SubjectCommand, 0, len(req.Subjects))
	for _, subject := range req.Subjects {
		subjects = append(subjects, application.SubjectCommand{
			ID:       subject.ID,
			Type:     subject.Type,
			NLU:      subject.NLU,
			Question: subject.Question,
			ImageURL: subject.ImageURL,
			Answers:  answerPayloadsToCommands(subject.Answers),
		})
	}
	conclusions := make([]application.ConclusionCommand, 0, len(req.Conclusions))
	for _, conclusion := range req.Conclusions {
		conclusions = append(conclusions, application.ConclusionCommand{
			ID:       conclusion.ID,
			ScoreMin: conclusion.ScoreRange.Min,
			ScoreMax: conclusion.ScoreRange.Max,
			Text:     conclusion.Text,
			ImageURL: conclusion.ImageURL,
		})
	}
	return application.SurveyCommand{
		Type:        req.Type,
		Title:       req.Title,
		Intro:       req.Intro,
		AvatarURL:   req.AvatarURL,
		Subjects:    subjects,
		Conclusions: conclusions,
	}
}

func resultRequestToCommand(req resultUpsertRequest) application.ResultCommand {
	answers := make([]application.AnswerResultCommand, 0, len(req.Answers))
	for _, answer := range req.Answers {
		answers = append(answers, application.AnswerResultCommand{
			ID:     answer.ID,
			Result: answerPayloadsToCommands(answer.Result),
		})
	}
	return application.ResultCommand{
		SurveyID: req.SurveyID,
		Responder: application.ResponderCommand{
			NickName:  req.Responder.NickName,
			AvatarURL: req.Responder.AvatarURL,
		},
		Answers:    answers,
		Score:      req.Score,
		Conclusion: req.Conclusion,
	}
}

func answerPayloadsToCommands(inputs []answerPayload) []application.AnswerCommand {
	if len(inputs) == 0 {
		return nil
	}
	answers := make([]application.AnswerCommand, 0, len(inputs))
	for _, input := range inputs {
		answers = append(answers, application.AnswerCommand{
			Value:    input.Value,
			ImageURL: input.ImageURL,
			Correct:  input.Correct,
			Next:     input.Next,
			End:      input.End,
		})
	}
	return answers
}

func surveyDomainToResponse(survey domain.Survey) surveyResponse {
	subjects := make([]subjectPayload, 0, len(survey.Subjects))
	for _, subject := range survey.Subjects {
		subjects = append(subjects, subjectPayload{
			ID:       subject.ID,
			Type:     subject.Type.String(),
			NLU:      subject.NLU,
			Question: subject.Question,
			ImageURL: subject.ImageURL,
			Answers:  answersToPayloads(subject.Answers),
		})
	}
	conclusions := make([]conclusionPayload, 0, len(survey.Conclusions))
	for _, conclusion := range survey.Conclusions {
		conclusions = append(conclusions, conclusionPayload{
			ID:         conclusion.ID,
			ScoreRange: scoreRangePayload{Min: conclusion.ScoreRange.Min, Max: conclusion.ScoreRange.Max},
			Text:       conclusion.Text,
			ImageURL:   conclusion.ImageURL,
		})
	}
	return surveyResponse{
		ID:          survey.ID,
		UserID:      survey.UserID,
		Type:        survey.Type.String(),
		Title:       survey.Title,
		Intro:       survey.Intro,
		AvatarURL:   survey.AvatarURL,
		Subjects:    subjects,
		Conclusions: conclusions,
		CreatedAt:   survey.CreatedAt,
	}
}

func resultDomainToResponse(result domain.SurveyResult) resultResponse {
	answers := make([]answerResultPayload, 0, len(result.Answers))
	for _, answer := range result.Answers {
		answers = append(answers, answerResultPayload{
			ID:     answer.ID,
			Result: answersToPayloads(answer.Result),
		})
	}

	var snapshot *surveyResponse
	if result.Survey != nil {
		view := surveyDomainToResponse(*result.Survey)
		snapshot = &view
	}

	return resultResponse{
		ID:       result.ID,
		SurveyID: result.SurveyID,
		Responder: responderPayload{
			UserID:    result.Responder.UserID,
			NickName:  result.Responder.NickName,
			AvatarURL: result.Responder.AvatarURL,
		},
		Answers:    answers,
		Score:      result.Score,
		Conclusion: result.Conclusion,
		Survey:     snapshot,
		CreatedAt:  result.CreatedAt,
	}
}

func answersToPayloads(answers []domain.Answer) []answerPayload {
	if len(answers) == 0 {
		return nil
	}
	payloads := make([]answerPayload, 0, len(answers))
	for _, answer := range answers {
		payloads = append(payloads, answerPayload{
			Value:    answer.Value,
			ImageURL: answer.ImageURL,
			Correct:  answer.Correct,
			Next:     answer.Next,
			End:      answer.End,
		})
	}
	return payloads
}
