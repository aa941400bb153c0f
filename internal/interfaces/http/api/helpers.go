package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sngm3741/talentflow/api/internal/interfaces/http/common"
	"github.com/sngm3741/talentflow/api/internal/logging"
	"github.com/sngm3741/talentflow/api/internal/talent/application"
	"go.uber.org/zap"
)

// decodeBody reads a size-limited JSON body into dst and answers 400 on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(dst); err != nil {
		common.WriteError(h.logger, w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// requestLogger carries the request id and, behind the auth middleware, the caller's id.
func (h *Handler) requestLogger(r *http.Request) *zap.Logger {
	logger := logging.FromContext(r.Context(), h.logger)
	if user, ok := common.UserFromContext(r.Context()); ok {
		logger = logger.With(zap.String("user_id", user.ID))
	}
	return logger
}

// logWrite records a committed write.
func (h *Handler) logWrite(r *http.Request, op, id string) {
	h.requestLogger(r).Info("write applied", zap.String("op", op), zap.String("id", id))
}

// writeServiceError maps application errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger := h.requestLogger(r)
	switch {
	case errors.Is(err, application.ErrValidation):
		common.WriteError(logger, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrJobNotFound),
		errors.Is(err, application.ErrCandidateNotFound),
		errors.Is(err, application.ErrAssessmentNotFound),
		errors.Is(err, application.ErrJobsToReorderNotFound):
		common.WriteError(logger, w, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrSimulatedFailure):
		common.WriteError(logger, w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		common.WriteError(logger, w, http.StatusServiceUnavailable, "request cancelled")
	default:
		logger.Error("request failed", zap.String("op", op), zap.Error(err))
		common.WriteError(logger, w, http.StatusInternalServerError, "internal error")
	}
}
