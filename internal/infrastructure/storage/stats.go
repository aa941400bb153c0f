package storage

import (
	"context"

	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

const statsSampleSize = 3

// Stats summarises the store for debugging.
type Stats struct {
	Jobs             int                `json:"jobs"`
	Candidates       int                `json:"candidates"`
	Assessments      int                `json:"assessments"`
	Responses        int                `json:"responses"`
	SampleJobs       []domain.Job       `json:"sampleJobs"`
	SampleCandidates []domain.Candidate `json:"sampleCandidates"`
}

func (s *Store) Stats(_ context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := Stats{
		Jobs:             len(s.jobs),
		Candidates:       len(s.candidates),
		Assessments:      len(s.assessments),
		Responses:        len(s.responses),
		SampleJobs:       make([]domain.Job, 0, statsSampleSize),
		SampleCandidates: make([]domain.Candidate, 0, statsSampleSize),
	}
	for i := 0; i < len(s.jobs) && i < statsSampleSize; i++ {
		stats.SampleJobs = append(stats.SampleJobs, s.jobs[i].Clone())
	}
	for i := 0; i < len(s.candidates) && i < statsSampleSize; i++ {
		stats.SampleCandidates = append(stats.SampleCandidates, s.candidates[i].Clone())
	}
	return stats
}
