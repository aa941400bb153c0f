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

func (h *Handler) jobListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.ReadTimeout)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		pageSize, _ := common.ParsePositiveInt(query.Get("pageSize"), application.DefaultJobPageSize)

		result, err := h.jobs.List(ctx, application.JobQuery{
			Page:     page,
			PageSize: pageSize,
			Search:   strings.TrimSpace(query.Get("search")),
			Status:   domain.JobStatus(strings.TrimSpace(query.Get("status"))),
		})
		if err != nil {
			h.writeServiceError(w, r, "job.list", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, result)
	}
}

func (h *Handler) jobCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jobCreateRequest
		if !h.decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.WriteTimeout)
		defer cancel()

		job, err := h.jobs.Create(ctx, req.command())
		if err != nil {
			h.writeServiceError(w, r, "job.create", err)
			return
		}
		h.logWrite(r, "job.create", job.ID)
		common.WriteJSON(h.logger, w, http.StatusCreated, job)
	}
}

func (h *Handler) jobUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		var req jobUpdateRequest
		if !h.decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.WriteTimeout)
		defer cancel()

		job, err := h.jobs.Update(ctx, id, req.patch())
		if err != nil {
			h.writeServiceError(w, r, "job.update", err)
			return
		}
		h.logWrite(r, "job.update", job.ID)
		common.WriteJSON(h.logger, w, http.StatusOK, job)
	}
}

func (h *Handler) jobReorderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jobReorderRequest
		if !h.decodeBody(w, r, &req) {
			return
		}
		if req.FromOrder == nil || req.ToOrder == nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "fromOrder and toOrder are required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.ReadTimeout)
		defer cancel()

		if err := h.jobs.Reorder(ctx, *req.FromOrder, *req.ToOrder); err != nil {
			h.writeServiceError(w, r, "job.reorder", err)
			return
		}
		h.logWrite(r, "job.reorder", "")
		common.WriteJSON(h.logger, w, http.StatusOK, successResponse{Success: true})
	}
}
