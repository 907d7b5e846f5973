package surveyapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/surveyflow/surveyflow-services/api/internal/interfaces/http/common"
	surveyapp "github.com/surveyflow/surveyflow-services/api/internal/survey/application"
	"github.com/surveyflow/surveyflow-services/api/pkg/fault"
)

// Handler wires the survey CRUD, analytics and response endpoints to
// the application services.
type Handler struct {
	logger    *log.Logger
	surveys   surveyapp.SurveyService
	responses surveyapp.ResponseService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *log.Logger
	Surveys   surveyapp.SurveyService
	Responses surveyapp.ResponseService
}

// NewHandler constructs the survey HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{logger: cfg.Logger, surveys: cfg.Surveys, responses: cfg.Responses}
}

// Register mounts the survey routes. The caller wraps the whole group
// in the auth middleware, so every handler can assume a user in context.
func (h *Handler) Register(r chi.Router) {
	r.Post("/", h.createHandler())
	r.Get("/", h.listHandler())
	r.Get("/analytics", h.analyticsHandler())
	r.Get("/{id}", h.detailHandler())
	r.Put("/{id}", h.updateHandler())
	r.Delete("/{id}", h.deleteHandler())
	r.Post("/{id}/responses", h.submitResponseHandler())
	r.Get("/{id}/responses", h.listResponsesHandler())
}

func (h *Handler) createHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, fault.Auth("authentication required"))
			return
		}

		var req createSurveyRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		survey, err := h.surveys.Create(ctx, user.ID, surveyapp.CreateSurveyCommand{
			Title:       req.Title,
			Description: req.Description,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildSurveyResponse(*survey))
	}
}

func (h *Handler) listHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, fault.Auth("authentication required"))
			return
		}

		query := r.URL.Query()
		paging := surveyapp.Paging{}
		paging.Page, _ = common.ParsePositiveInt(query.Get("page"), 1)
		paging.Limit, _ = common.ParsePositiveInt(query.Get("limit"), 10)

		surveys, total, err := h.surveys.List(ctx, user.ID, paging)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]surveyResponse, 0, len(surveys))
		for _, survey := range surveys {
			items = append(items, buildSurveyResponse(survey))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, surveyListResponse{
			Items: items,
			Page:  paging.Page,
			Limit: paging.Limit,
			Total: total,
		})
	}
}

func (h *Handler) detailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, fault.Auth("authentication required"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		survey, err := h.surveys.Get(ctx, user.ID, id)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildSurveyResponse(*survey))
	}
}

func (h *Handler) updateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, fault.Auth("authentication required"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		var req updateSurveyRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		cmd := surveyapp.UpdateSurveyCommand{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		}
		if req.Nodes != nil {
			nodes := mapNodePayloads(*req.Nodes)
			cmd.Nodes = &nodes
		}
		if req.Edges != nil {
			edges := mapEdgePayloads(*req.Edges)
			cmd.Edges = &edges
		}

		survey, err := h.surveys.Update(ctx, user.ID, id, cmd)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildSurveyResponse(*survey))
	}
}

func (h *Handler) deleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, fault.Auth("authentication required"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if err := h.surveys.Delete(ctx, user.ID, id); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) analyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, fault.Auth("authentication required"))
			return
		}

		analytics, err := h.surveys.Analytics(ctx, user.ID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, analyticsResponse{
			TotalSurveys:       analytics.TotalSurveys,
			PublishedSurveys:   analytics.PublishedSurveys,
			TotalResponses:     analytics.TotalResponses,
			AvgEligibilityRate: analytics.AvgEligibilityRate,
		})
	}
}

func (h *Handler) submitResponseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		var req submitResponseRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		response, err := h.responses.Submit(ctx, id, req.Answers)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildResponseResponse(*response))
	}
}

func (h *Handler) listResponsesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, fault.Auth("authentication required"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		responses, err := h.responses.List(ctx, user.ID, id)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]responseResponse, 0, len(responses))
		for _, response := range responses {
			items = append(items, buildResponseResponse(response))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fault.Validation("invalid request body")
	}
	return nil
}
