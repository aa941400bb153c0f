package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/talentflow/api/internal/interfaces/http/common"
	"github.com/sngm3741/talentflow/api/internal/talent/application"
	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

func (h *Handler) candidateListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.ReadTimeout)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		pageSize, _ := common.ParsePositiveInt(query.Get("pageSize"), application.DefaultCandidatePageSize)

		result, err := h.candidates.List(ctx, application.CandidateQuery{
			Page:     page,
			PageSize: pageSize,
			Search:   strings.TrimSpace(query.Get("search")),
			Stage:    domain.Stage(strings.TrimSpace(query.Get("stage"))),
		})
		if err != nil {
			h.writeServiceError(w, r, "candidate.list", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, result)
	}
}

func (h *Handler) candidateDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.ReadTimeout)
		defer cancel()

		candidate, err := h.candidates.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			h.writeServiceError(w, r, "candidate.detail", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, candidate)
	}
}

func (h *Handler) candidateCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req candidateCreateRequest
		if !h.decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.WriteTimeout)
		defer cancel()

		candidate, err := h.candidates.Create(ctx, req.command())
		if err != nil {
			h.writeServiceError(w, r, "candidate.create", err)
			return
		}
		h.logWrite(r, "candidate.create", candidate.ID)
		common.WriteJSON(h.logger, w, http.StatusCreated, candidate)
	}
}

func (h *Handler) candidateUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		var req candidateUpdateRequest
		if !h.decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.WriteTimeout)
		defer cancel()

		candidate, err := h.candidates.Update(ctx, id, req.patch())
		if err != nil {
			h.writeServiceError(w, r, "candidate.update", err)
			return
		}
		h.logWrite(r, "candidate.update", candidate.ID)
		common.WriteJSON(h.logger, w, http.StatusOK, candidate)
	}
}

func (h *Handler) candidateTimelineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.ReadTimeout)
		defer cancel()

		timeline, err := h.candidates.Timeline(ctx, chi.URLParam(r, "id"))
		if err != nil {
			h.writeServiceError(w, r, "candidate.timeline", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, timeline)
	}
}

func (h *Handler) candidateResponsesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.ReadTimeout)
		defer cancel()

		responses, err := h.assessments.Responses(ctx, chi.URLParam(r, "id"))
		if err != nil {
			h.writeServiceError(w, r, "candidate.responses", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, responses)
	}
}
