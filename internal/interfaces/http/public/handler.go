package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/chatform/chatform-services/api/internal/interfaces/http/common"
	"github.com/chatform/chatform-services/api/internal/survey/application"
	"github.com/go-chi/chi/v5"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger  *log.Logger
	surveys application.SurveyService
	results application.ResultService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger  *log.Logger
	Surveys application.SurveyService
	Results application.ResultService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:  cfg.Logger,
		surveys: cfg.Surveys,
		results: cfg.Results,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/surveys/{id}", h.surveyDetailHandler())
	r.Get("/surveys/{id}/results", h.surveyResultListHandler())
	r.Get("/results/{id}", h.resultDetailHandler())
	r.With(authMiddleware).Get("/me/surveys", h.mySurveysHandler())
	r.With(authMiddleware).Get("/me/results", h.myResultsHandler())
	r.With(authMiddleware).Get("/me/statistic", h.myStatisticHandler())
	r.With(authMiddleware).Post("/surveys", h.surveyCreateHandler())
	r.With(authMiddleware).Put("/surveys/{id}", h.surveyUpdateHandler())
	r.With(authMiddleware).Delete("/surveys/{id}", h.surveyDeleteHandler())
	r.With(authMiddleware).Post("/results", h.resultCreateHandler())
	r.With(authMiddleware).Put("/results/{id}", h.resultUpdateHandler())
	r.With(authMiddleware).Delete("/results/{id}", h.resultDeleteHandler())
}

func (h *Handler) surveyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		survey, err := h.surveys.GetByID(ctx, id)
		if err != nil {
			h.logger.Printf("アンケート取得に失敗 id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "アンケートの取得に失敗しました"})
			return
		}
		if survey == nil {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "アンケートが見つかりません"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, surveyDomainToResponse(*survey))
	}
}

func (h *Handler) mySurveysHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		surveys, err := h.surveys.GetByUser(ctx, user.ID)
		if err != nil {
			h.logger.Printf("アンケート一覧の取得に失敗 user=%s err=%v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "アンケート一覧の取得に失敗しました"})
			return
		}

		items := make([]surveyResponse, 0, len(surveys))
		for _, survey := range surveys {
			items = append(items, surveyDomainToResponse(survey))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) surveyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		var req surveyUpsertRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := h.surveys.Create(ctx, user.ID, surveyRequestToCommand(req))
		if err != nil {
			h.writeServiceError(w, err, "アンケートの作成に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, idResponse{ID: id})
	}
}

func (h *Handler) surveyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req surveyUpsertRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if !h.authorizeSurveyOwner(ctx, w, id, user.ID) {
			return
		}

		updatedID, err := h.surveys.Update(ctx, user.ID, id, surveyRequestToCommand(req))
		if err != nil {
			h.writeServiceError(w, err, "アンケートの更新に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, idResponse{ID: updatedID})
	}
}

func (h *Handler) surveyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if !h.authorizeSurveyOwner(ctx, w, id, user.ID) {
			return
		}

		if err := h.surveys.Delete(ctx, id); err != nil {
			h.logger.Printf("アンケート削除に失敗 id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "アンケートの削除に失敗しました"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// authorizeSurveyOwner は更新・削除前の所有者チェック。削除済み ID は素通しし、
// サービス層の no-op / NotFound 判定に委ねる。
func (h *Handler) authorizeSurveyOwner(ctx context.Context, w http.ResponseWriter, id, userID string) bool {
	survey, err := h.surveys.GetByID(ctx, id)
	if err != nil {
		h.logger.Printf("所有者チェックに失敗 id=%s err=%v", id, err)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "アンケートの取得に失敗しました"})
		return false
	}
	if survey != nil && survey.UserID != userID {
		common.WriteJSON(h.logger, w, http.StatusForbidden, map[string]string{"error": "このアンケートを操作する権限がありません"})
		return false
	}
	return true
}

func (h *Handler) resultDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		result, err := h.results.GetByID(ctx, id)
		if err != nil {
			h.logger.Printf("回答取得に失敗 id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "回答の取得に失敗しました"})
			return
		}
		if result == nil {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "回答が見つかりません"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, resultDomainToResponse(*result))
	}
}

func (h *Handler) surveyResultListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		results, err := h.results.GetBySurvey(ctx, surveyID)
		if err != nil {
			h.logger.Printf("回答一覧の取得に失敗 surveyId=%s err=%v", surveyID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "回答一覧の取得に失敗しました"})
			return
		}

		items := make([]resultResponse, 0, len(results))
		for _, result := range results {
			items = append(items, resultDomainToResponse(result))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) myResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		results, err := h.results.GetByResponder(ctx, user.ID)
		if err != nil {
			h.logger.Printf("回答一覧の取得に失敗 user=%s err=%v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "回答一覧の取得に失敗しました"})
			return
		}

		items := make([]resultResponse, 0, len(results))
		for _, result := range results {
			items = append(items, resultDomainToResponse(result))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) myStatisticHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		stat, err := h.results.StatisticByUser(ctx, user.ID)
		if err != nil {
			h.logger.Printf("統計取得に失敗 user=%s err=%v", user.ID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "統計の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, statisticResponse{
			CreatedCount:  stat.CreatedCount,
			ReceivedCount: stat.ReceivedCount,
		})
	}
}

func (h *Handler) resultCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}

		var req resultUpsertRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := h.results.Create(ctx, user.ID, resultRequestToCommand(req))
		if err != nil {
			h.writeServiceError(w, err, "回答の登録に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, idResponse{ID: id})
	}
}

func (h *Handler) resultUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req resultUpsertRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if !h.authorizeResultResponder(ctx, w, id, user.ID) {
			return
		}

		updatedID, err := h.results.Update(ctx, user.ID, id, resultRequestToCommand(req))
		if err != nil {
			h.writeServiceError(w, err, "回答の更新に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, idResponse{ID: updatedID})
	}
}

func (h *Handler) resultDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "認証情報がありません"})
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if !h.authorizeResultResponder(ctx, w, id, user.ID) {
			return
		}

		if err := h.results.Delete(ctx, id); err != nil {
			h.logger.Printf("回答削除に失敗 id=%s err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "回答の削除に失敗しました"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// authorizeResultResponder は更新・削除前に回答者本人かを確認する。
func (h *Handler) authorizeResultResponder(ctx context.Context, w http.ResponseWriter, id, userID string) bool {
	result, err := h.results.GetByID(ctx, id)
	if err != nil {
		h.logger.Printf("回答者チェックに失敗 id=%s err=%v", id, err)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "回答の取得に失敗しました"})
		return false
	}
	if result != nil && result.Responder.UserID != userID {
		common.WriteJSON(h.logger, w, http.StatusForbidden, map[string]string{"error": "この回答を操作する権限がありません"})
		return false
	}
	return true
}

// writeServiceError は NotFound を 404、入力不備を 400 として返す共通処理。
// それ以外はストレージ障害とみなし、詳細を漏らさず 500 を返す。
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var notFound *application.NotFoundError
	if errors.As(err, &notFound) {
		common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": notFound.Error()})
		return
	}
	var invalid *application.ValidationError
	if errors.As(err, &invalid) {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": invalid.Error()})
		return
	}
	h.logger.Printf("%s: %v", fallback, err)
	common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": fallback})
}
