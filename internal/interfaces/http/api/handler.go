package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/talentflow/api/internal/talent/application"
	"go.uber.org/zap"
)

// Handler wires the TalentFlow HTTP endpoints to application services.
type Handler struct {
	logger      *zap.Logger
	jobs        application.JobService
	candidates  application.CandidateService
	assessments application.AssessmentService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      *zap.Logger
	Jobs        application.JobService
	Candidates  application.CandidateService
	Assessments application.AssessmentService
}

// NewHandler constructs the API handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:      logger,
		jobs:        cfg.Jobs,
		candidates:  cfg.Candidates,
		assessments: cfg.Assessments,
	}
}

// Register mounts all routes onto the router. Writes go through authMiddleware.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/jobs", h.jobListHandler())
	r.With(authMiddleware).Post("/jobs", h.jobCreateHandler())
	r.With(authMiddleware).Post("/jobs/reorder", h.jobReorderHandler())
	r.With(authMiddleware).Patch("/jobs/{id}", h.jobUpdateHandler())
	r.Get("/jobs/{id}/assessment", h.assessmentByJobHandler())
	r.With(authMiddleware).Put("/jobs/{id}/assessment", h.assessmentSaveHandler())

	r.Get("/candidates", h.candidateListHandler())
	r.With(authMiddleware).Post("/candidates", h.candidateCreateHandler())
	r.Get("/candidates/{id}", h.candidateDetailHandler())
	r.With(authMiddleware).Patch("/candidates/{id}", h.candidateUpdateHandler())
	r.Get("/candidates/{id}/timeline", h.candidateTimelineHandler())
	r.Get("/candidates/{id}/responses", h.candidateResponsesHandler())

	r.With(authMiddleware).Post("/assessments/{id}/responses", h.assessmentSubmitHandler())
}
