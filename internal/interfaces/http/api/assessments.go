package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/talentflow/api/internal/interfaces/http/common"
	"github.com/sngm3741/talentflow/api/internal/talent/application"
)

// assessmentByJobHandler answers JSON null when the job has no assessment.
func (h *Handler) assessmentByJobHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.ReadTimeout)
		defer cancel()

		assessment, err := h.assessments.ByJob(ctx, chi.URLParam(r, "id"))
		if err != nil {
			h.writeServiceError(w, r, "assessment.get", err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, assessment)
	}
}

func (h *Handler) assessmentSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := strings.TrimSpace(chi.URLParam(r, "id"))
		var req assessmentSaveRequest
		if !h.decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.WriteTimeout)
		defer cancel()

		assessment, err := h.assessments.Save(ctx, jobID, application.SaveAssessmentCommand{
			ID:          req.ID,
			Title:       req.Title,
			Description: req.Description,
			Sections:    req.Sections,
		})
		if err != nil {
			h.writeServiceError(w, r, "assessment.save", err)
			return
		}
		h.logWrite(r, "assessment.save", assessment.ID)
		common.WriteJSON(h.logger, w, http.StatusOK, assessment)
	}
}

func (h *Handler) assessmentSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assessmentID := strings.TrimSpace(chi.URLParam(r, "id"))
		var req responseSubmitRequest
		if !h.decodeBody(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.WriteTimeout)
		defer cancel()

		response, err := h.assessments.SubmitResponse(ctx, application.SubmitResponseCommand{
			AssessmentID: assessmentID,
			CandidateID:  strings.TrimSpace(req.CandidateID),
			Responses:    req.Responses,
		})
		if err != nil {
			h.writeServiceError(w, r, "assessment.respond", err)
			return
		}
		h.logWrite(r, "assessment.respond", response.ID)
		common.WriteJSON(h.logger, w, http.StatusCreated, response)
	}
}
