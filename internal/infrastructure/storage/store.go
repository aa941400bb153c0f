// Package storage owns the four TalentFlow collections and mirrors them into a kv backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/talentflow/api/internal/infrastructure/kv"
	"github.com/sngm3741/talentflow/api/internal/talent/domain"
	"go.uber.org/zap"
)

// Keys of the persisted documents. Each holds one pretty-printed JSON array.
const (
	KeyJobs        = "talentflow_jobs"
	KeyCandidates  = "talentflow_candidates"
	KeyAssessments = "talentflow_assessments"
	KeyResponses   = "talentflow_assessment_responses"
)

// Store is the single in-process owner of jobs, candidates, assessments and responses.
// Every successful mutation is written through to the backend before the lock is released.
type Store struct {
	backend     kv.Backend
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
	seedOnEmpty bool

	mu          sync.RWMutex
	jobs        []domain.Job
	candidates  []domain.Candidate
	assessments []domain.Assessment
	responses   []domain.AssessmentResponse
	// damaged holds keys whose stored document could not be read; save leaves them untouched.
	damaged map[string]bool
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now. Returned times are normalised to UTC.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithSeedOnEmpty toggles inserting the demo fixtures when Open finds nothing.
func WithSeedOnEmpty(enabled bool) Option {
	return func(s *Store) { s.seedOnEmpty = enabled }
}

func New(backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		logger:      zap.NewNop(),
		now:         time.Now,
		newID:       uuid.NewString,
		seedOnEmpty: true,
		jobs:        []domain.Job{},
		candidates:  []domain.Candidate{},
		assessments: []domain.Assessment{},
		responses:   []domain.AssessmentResponse{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open restores the collections from the backend and seeds an empty store.
// Documents that fail to load are logged and left as they are in the backend;
// the remaining collections are kept and seeding is skipped.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		s.logger.Error("load storage", zap.Error(err))
		return nil
	}
	s.logger.Info("storage loaded",
		zap.Int("jobs", len(s.jobs)),
		zap.Int("candidates", len(s.candidates)),
		zap.Int("assessments", len(s.assessments)),
		zap.Int("responses", len(s.responses)),
	)
	if !s.seedOnEmpty || !s.emptyLocked() {
		return nil
	}
	return s.seedLocked(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.backend.Close(ctx)
}

// Reset drops every collection, persists the empty state and optionally reseeds.
func (s *Store) Reset(ctx context.Context, reseed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = []domain.Job{}
	s.candidates = []domain.Candidate{}
	s.assessments = []domain.Assessment{}
	s.responses = []domain.AssessmentResponse{}
	s.damaged = nil
	if reseed {
		return s.seedLocked(ctx)
	}
	s.save(ctx)
	return nil
}

// Ping reports whether the backend answers reads.
func (s *Store) Ping(ctx context.Context) error {
	_, _, err := s.backend.Get(ctx, KeyJobs)
	return err
}

func (s *Store) emptyLocked() bool {
	return len(s.jobs) == 0 && len(s.candidates) == 0 && len(s.assessments) == 0
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// load decodes each document independently. A document that cannot be read or
// decoded leaves its collection empty and marks the key damaged.
func (s *Store) load(ctx context.Context) error {
	s.damaged = nil
	var errs []error
	read := func(key string, dest any) {
		raw, ok, err := s.backend.Get(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", key, err))
			s.markDamaged(key)
			return
		}
		if !ok || len(raw) == 0 {
			return
		}
		if err := json.Unmarshal(raw, dest); err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", key, err))
			s.markDamaged(key)
		}
	}

	var (
		jobs        []domain.Job
		candidates  []domain.Candidate
		assessments []domain.Assessment
		responses   []domain.AssessmentResponse
	)
	read(KeyJobs, &jobs)
	read(KeyCandidates, &candidates)
	read(KeyAssessments, &assessments)
	read(KeyResponses, &responses)

	s.jobs = nonNil(jobs)
	s.candidates = nonNil(candidates)
	s.assessments = nonNil(assessments)
	s.responses = nonNil(responses)
	return errors.Join(errs...)
}

func (s *Store) markDamaged(key string) {
	if s.damaged == nil {
		s.damaged = make(map[string]bool)
	}
	s.damaged[key] = true
}

// save writes all four documents. Failures are logged; memory stays authoritative.
func (s *Store) save(ctx context.Context) {
	documents := []struct {
		key   string
		value any
	}{
		{KeyJobs, s.jobs},
		{KeyCandidates, s.candidates},
		{KeyAssessments, s.assessments},
		{KeyResponses, s.responses},
	}
	for _, doc := range documents {
		if s.damaged[doc.key] {
			s.logger.Warn("skip persisting damaged storage document", zap.String("key", doc.key))
			continue
		}
		data, err := json.MarshalIndent(doc.value, "", "  ")
		if err != nil {
			s.logger.Error("encode storage document", zap.String("key", doc.key), zap.Error(err))
			return
		}
		if err := s.backend.Set(ctx, doc.key, data); err != nil {
			s.logger.Error("persist storage document", zap.String("key", doc.key), zap.Error(err))
			return
		}
	}
	s.logger.Debug("storage saved")
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
