package storage

import (
	"context"

	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

// AllJobs returns every job in insertion order.
func (s *Store) AllJobs(_ context.Context) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Job, len(s.jobs))
	for i, job := range s.jobs {
		out[i] = job.Clone()
	}
	return out
}

func (s *Store) JobByID(_ context.Context, id string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.jobIndex(id); i >= 0 {
		return s.jobs[i].Clone(), true
	}
	return domain.Job{}, false
}

// CreateJob stores job with the order it carries.
func (s *Store) CreateJob(ctx context.Context, job domain.Job) domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertJobLocked(ctx, job)
}

// AppendJob stores job one past the highest existing order.
func (s *Store) AppendJob(ctx context.Context, job domain.Job) domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.Order = s.maxOrderLocked() + 1
	return s.insertJobLocked(ctx, job)
}

func (s *Store) insertJobLocked(ctx context.Context, job domain.Job) domain.Job {
	if job.ID == "" {
		job.ID = s.newID()
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	now := s.timestamp()
	job.CreatedAt = now
	job.UpdatedAt = now
	s.jobs = append(s.jobs, job.Clone())
	s.save(ctx)
	return job.Clone()
}

// UpdateJob merges patch into the job and bumps UpdatedAt. ok is false when id is unknown.
func (s *Store) UpdateJob(ctx context.Context, id string, patch domain.JobPatch) (domain.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.jobIndex(id)
	if i < 0 {
		return domain.Job{}, false
	}
	patch.Apply(&s.jobs[i])
	s.jobs[i].UpdatedAt = s.timestamp()
	s.save(ctx)
	return s.jobs[i].Clone(), true
}

func (s *Store) DeleteJob(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.jobIndex(id)
	if i < 0 {
		return false
	}
	s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
	s.save(ctx)
	return true
}

// SwapJobOrder exchanges the orders of the jobs at from and to.
// Nothing changes unless both slots are occupied.
func (s *Store) SwapJobOrder(ctx context.Context, from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, b := -1, -1
	for i := range s.jobs {
		if a < 0 && s.jobs[i].Order == from {
			a = i
		}
		if b < 0 && s.jobs[i].Order == to {
			b = i
		}
	}
	if a < 0 || b < 0 {
		return false
	}
	now := s.timestamp()
	s.jobs[a].Order = to
	s.jobs[a].UpdatedAt = now
	s.jobs[b].Order = from
	s.jobs[b].UpdatedAt = now
	s.save(ctx)
	return true
}

func (s *Store) jobIndex(id string) int {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) maxOrderLocked() int {
	highest := 0
	for _, job := range s.jobs {
		if job.Order > highest {
			highest = job.Order
		}
	}
	return highest
}
