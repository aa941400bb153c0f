package storage

import (
	"context"

	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

func (s *Store) AssessmentByJobID(_ context.Context, jobID string) (domain.Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assessments {
		if a.JobID == jobID {
			return a.Clone(), true
		}
	}
	return domain.Assessment{}, false
}

func (s *Store) AssessmentByID(_ context.Context, id string) (domain.Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assessments {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return domain.Assessment{}, false
}

func (s *Store) AllAssessments(_ context.Context) []domain.Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Assessment, len(s.assessments))
	for i, a := range s.assessments {
		out[i] = a.Clone()
	}
	return out
}

// UpsertAssessment replaces the content of the job's assessment, keeping its id and
// CreatedAt, or inserts a new one when the job has none.
func (s *Store) UpsertAssessment(ctx context.Context, assessment domain.Assessment) domain.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.timestamp()
	if assessment.Sections == nil {
		assessment.Sections = []domain.Section{}
	}
	for i := range s.assessments {
		if s.assessments[i].JobID != assessment.JobID {
			continue
		}
		existing := s.assessments[i]
		assessment.ID = existing.ID
		assessment.CreatedAt = existing.CreatedAt
		assessment.UpdatedAt = now
		s.assessments[i] = assessment.Clone()
		s.save(ctx)
		return assessment.Clone()
	}
	if assessment.ID == "" {
		assessment.ID = s.newID()
	}
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	s.assessments = append(s.assessments, assessment.Clone())
	s.save(ctx)
	return assessment.Clone()
}

// AppendResponse records a submission. Responses are never updated or removed.
func (s *Store) AppendResponse(ctx context.Context, response domain.AssessmentResponse) domain.AssessmentResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if response.ID == "" {
		response.ID = s.newID()
	}
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = s.timestamp()
	}
	if response.Responses == nil {
		response.Responses = map[string]any{}
	}
	s.responses = append(s.responses, response.Clone())
	s.save(ctx)
	return response.Clone()
}

func (s *Store) ResponsesForCandidate(_ context.Context, candidateID string) []domain.AssessmentResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AssessmentResponse, 0)
	for _, r := range s.responses {
		if r.CandidateID == candidateID {
			out = append(out, r.Clone())
		}
	}
	return out
}
