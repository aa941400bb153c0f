package storage

import (
	"context"

	"github.com/sngm3741/talentflow/api/internal/talent/domain"
	"go.uber.org/zap"
)

// AllCandidates returns every candidate, first filling any missing JobTitle
// from the job collection. The fill sticks in memory but is not persisted on its own.
func (s *Store) AllCandidates(_ context.Context) []domain.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Candidate, len(s.candidates))
	for i := range s.candidates {
		s.fillJobTitleLocked(&s.candidates[i])
		out[i] = s.candidates[i].Clone()
	}
	return out
}

func (s *Store) CandidateByID(_ context.Context, id string) (domain.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.candidateIndex(id)
	if i < 0 {
		return domain.Candidate{}, false
	}
	s.fillJobTitleLocked(&s.candidates[i])
	return s.candidates[i].Clone(), true
}

// CreateCandidate assigns an id when absent, stamps AppliedAt and snapshots the job title.
func (s *Store) CreateCandidate(ctx context.Context, candidate domain.Candidate) domain.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if candidate.ID == "" {
		candidate.ID = s.newID()
	}
	now := s.timestamp()
	candidate.AppliedAt = now
	candidate.UpdatedAt = now
	if candidate.JobID != "" {
		if title, ok := s.jobTitleLocked(candidate.JobID); ok {
			candidate.JobTitle = title
		}
	}
	s.candidates = append(s.candidates, candidate.Clone())
	s.save(ctx)
	return candidate.Clone()
}

// UpdateCandidate merges patch and re-snapshots JobTitle when the patch sets a known JobID.
func (s *Store) UpdateCandidate(ctx context.Context, id string, patch domain.CandidatePatch) (domain.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.candidateIndex(id)
	if i < 0 {
		return domain.Candidate{}, false
	}
	if patch.JobID != nil && *patch.JobID != "" {
		if title, ok := s.jobTitleLocked(*patch.JobID); ok {
			patch.JobTitle = &title
		}
	}
	patch.Apply(&s.candidates[i])
	s.candidates[i].UpdatedAt = s.timestamp()
	s.save(ctx)
	s.logger.Debug("candidate updated", zap.String("id", id), zap.String("stage", string(s.candidates[i].Stage)))
	return s.candidates[i].Clone(), true
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.candidateIndex(id)
	if i < 0 {
		return false
	}
	s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
	s.save(ctx)
	return true
}

func (s *Store) fillJobTitleLocked(c *domain.Candidate) {
	if c.JobTitle != "" || c.JobID == "" {
		return
	}
	if title, ok := s.jobTitleLocked(c.JobID); ok {
		c.JobTitle = title
	}
}

func (s *Store) jobTitleLocked(jobID string) (string, bool) {
	if i := s.jobIndex(jobID); i >= 0 {
		return s.jobs[i].Title, true
	}
	return "", false
}

func (s *Store) candidateIndex(id string) int {
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			return i
		}
	}
	return -1
}
