package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

type jobService struct {
	repo JobRepository
	gate *WriteGate
}

func NewJobService(repo JobRepository, gate *WriteGate) JobService {
	return &jobService{repo: repo, gate: gate}
}

// List filters by search and status, orders by board position and paginates.
func (s *jobService) List(ctx context.Context, query JobQuery) (Page[domain.Job], error) {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	jobs := s.repo.AllJobs(ctx)
	filtered := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if search != "" &&
			!strings.Contains(strings.ToLower(job.Title), search) &&
			!strings.Contains(strings.ToLower(job.Slug), search) {
			continue
		}
		if query.Status != "" && job.Status != query.Status {
			continue
		}
		filtered = append(filtered, job)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Order < filtered[j].Order
	})
	return paginate(filtered, query.Page, query.PageSize, DefaultJobPageSize), nil
}

func (s *jobService) Create(ctx context.Context, cmd CreateJobCommand) (domain.Job, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return domain.Job{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	slugSource := cmd.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = title
	}
	slug := domain.Slugify(slugSource)
	if slug == "" {
		return domain.Job{}, fmt.Errorf("%w: slug is empty", ErrValidation)
	}
	status := domain.JobStatusActive
	if cmd.Status != "" {
		if !cmd.Status.Valid() {
			return domain.Job{}, fmt.Errorf("%w: invalid status %q", ErrValidation, cmd.Status)
		}
		status = cmd.Status
	}

	job := domain.Job{
		Title:       title,
		Slug:        slug,
		Status:      status,
		Tags:        domain.NewTagList(cmd.Tags),
		Description: strings.TrimSpace(cmd.Description),
	}
	return perform(ctx, s.gate, "job.create", func() (domain.Job, error) {
		if cmd.Order == nil {
			return s.repo.AppendJob(ctx, job), nil
		}
		job.Order = *cmd.Order
		return s.repo.CreateJob(ctx, job), nil
	})
}

func (s *jobService) Update(ctx context.Context, id string, patch domain.JobPatch) (domain.Job, error) {
	patch, err := normalizeJobPatch(patch)
	if err != nil {
		return domain.Job{}, err
	}
	return perform(ctx, s.gate, "job.update", func() (domain.Job, error) {
		job, ok := s.repo.UpdateJob(ctx, id, patch)
		if !ok {
			return domain.Job{}, ErrJobNotFound
		}
		return job, nil
	})
}

// Reorder swaps the jobs at two board positions. It is not subject to the write policy.
func (s *jobService) Reorder(ctx context.Context, fromOrder, toOrder int) error {
	if !s.repo.SwapJobOrder(ctx, fromOrder, toOrder) {
		return ErrJobsToReorderNotFound
	}
	return nil
}

func normalizeJobPatch(patch domain.JobPatch) (domain.JobPatch, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return patch, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		patch.Title = &title
		if patch.Slug == nil {
			slug := domain.Slugify(title)
			patch.Slug = &slug
		}
	}
	if patch.Slug != nil {
		slug := domain.Slugify(*patch.Slug)
		if slug == "" {
			return patch, fmt.Errorf("%w: slug is empty", ErrValidation)
		}
		patch.Slug = &slug
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return patch, fmt.Errorf("%w: invalid status %q", ErrValidation, *patch.Status)
	}
	if patch.Tags != nil {
		tags := domain.NewTagList(*patch.Tags)
		patch.Tags = &tags
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		patch.Description = &description
	}
	return patch, nil
}
