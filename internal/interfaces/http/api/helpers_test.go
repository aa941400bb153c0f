package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sngm3741/talentflow/api/internal/interfaces/http/common"
	"github.com/sngm3741/talentflow/api/internal/talent/application"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	h := NewHandler(Config{})
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: title is required", application.ErrValidation), http.StatusBadRequest},
		{application.ErrJobNotFound, http.StatusNotFound},
		{application.ErrCandidateNotFound, http.StatusNotFound},
		{application.ErrAssessmentNotFound, http.StatusNotFound},
		{application.ErrJobsToReorderNotFound, http.StatusNotFound},
		{application.ErrSimulatedFailure, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.writeServiceError(rec, req, "test", tc.err)
		if rec.Code != tc.want {
			t.Fatalf("%v: got %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestDecodeBodyRejectsOversizedPayload(t *testing.T) {
	h := NewHandler(Config{})
	body := `{"title":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	var dst jobCreateRequest
	if h.decodeBody(rec, req, &dst) {
		t.Fatalf("oversized body should be rejected")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWriteLogsCarryAuthenticatedUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHandler(Config{Logger: zap.New(core)})

	req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
	req = req.WithContext(common.ContextWithUser(req.Context(), common.AuthenticatedUser{ID: "recruiter-7"}))

	h.logWrite(req, "job.create", "job-1")
	h.writeServiceError(httptest.NewRecorder(), req, "job.create", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected two log entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if got := entry.ContextMap()["user_id"]; got != "recruiter-7" {
			t.Fatalf("%q: expected user_id recruiter-7, got %v", entry.Message, got)
		}
	}
	if got := entries[0].ContextMap()["id"]; got != "job-1" {
		t.Fatalf("expected job id in write log, got %v", got)
	}
}

func TestWriteLogsWithoutUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHandler(Config{Logger: zap.New(core)})

	h.logWrite(httptest.NewRequest(http.MethodPost, "/jobs", nil), "job.create", "job-1")

	if _, ok := logs.All()[0].ContextMap()["user_id"]; ok {
		t.Fatalf("anonymous write should not carry a user_id")
	}
}
