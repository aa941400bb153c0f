package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

type candidateService struct {
	repo CandidateRepository
	gate *WriteGate
}

func NewCandidateService(repo CandidateRepository, gate *WriteGate) CandidateService {
	return &candidateService{repo: repo, gate: gate}
}

// List filters by name/email search and stage, newest applicants first.
func (s *candidateService) List(ctx context.Context, query CandidateQuery) (Page[domain.Candidate], error) {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	candidates := s.repo.AllCandidates(ctx)
	filtered := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		if query.Stage != "" && c.Stage != query.Stage {
			continue
		}
		filtered = append(filtered, c)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AppliedAt.After(filtered[j].AppliedAt)
	})
	return paginate(filtered, query.Page, query.PageSize, DefaultCandidatePageSize), nil
}

func (s *candidateService) Detail(ctx context.Context, id string) (domain.Candidate, error) {
	candidate, ok := s.repo.CandidateByID(ctx, id)
	if !ok {
		return domain.Candidate{}, ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *candidateService) Create(ctx context.Context, cmd CreateCandidateCommand) (domain.Candidate, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return domain.Candidate{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	jobID := strings.TrimSpace(cmd.JobID)
	if jobID == "" {
		return domain.Candidate{}, fmt.Errorf("%w: job is required", ErrValidation)
	}
	stage := domain.StageApplied
	if cmd.Stage != "" {
		if !cmd.Stage.Valid() {
			return domain.Candidate{}, fmt.Errorf("%w: invalid stage %q", ErrValidation, cmd.Stage)
		}
		stage = cmd.Stage
	}

	candidate := domain.Candidate{
		Name:     name,
		Email:    email,
		Stage:    stage,
		JobID:    jobID,
		Phone:    strings.TrimSpace(cmd.Phone),
		LinkedIn: strings.TrimSpace(cmd.LinkedIn),
		Notes:    completeNotes(cmd.Notes),
	}
	return perform(ctx, s.gate, "candidate.create", func() (domain.Candidate, error) {
		return s.repo.CreateCandidate(ctx, candidate), nil
	})
}

func (s *candidateService) Update(ctx context.Context, id string, patch domain.CandidatePatch) (domain.Candidate, error) {
	patch, err := normalizeCandidatePatch(patch)
	if err != nil {
		return domain.Candidate{}, err
	}
	return perform(ctx, s.gate, "candidate.update", func() (domain.Candidate, error) {
		candidate, ok := s.repo.UpdateCandidate(ctx, id, patch)
		if !ok {
			return domain.Candidate{}, ErrCandidateNotFound
		}
		return candidate, nil
	})
}

// Timeline has no event source yet; it always answers with an empty list.
func (s *candidateService) Timeline(_ context.Context, id string) (domain.CandidateTimeline, error) {
	return domain.CandidateTimeline{CandidateID: id, Events: []domain.TimelineEvent{}}, nil
}

func normalizeCandidatePatch(patch domain.CandidatePatch) (domain.CandidatePatch, error) {
	// JobTitle is owned by storage.
	patch.JobTitle = nil
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return patch, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		patch.Name = &name
	}
	if patch.Email != nil {
		email, err := domain.NewEmail(*patch.Email)
		if err != nil {
			return patch, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		patch.Email = &email
	}
	if patch.Stage != nil && !patch.Stage.Valid() {
		return patch, fmt.Errorf("%w: invalid stage %q", ErrValidation, *patch.Stage)
	}
	if patch.JobID != nil {
		jobID := strings.TrimSpace(*patch.JobID)
		if jobID == "" {
			return patch, fmt.Errorf("%w: job must not be empty", ErrValidation)
		}
		patch.JobID = &jobID
	}
	if patch.Notes != nil {
		notes := completeNotes(*patch.Notes)
		patch.Notes = &notes
	}
	return patch, nil
}

// completeNotes gives new notes an id and creation time.
func completeNotes(notes []domain.Note) []domain.Note {
	if notes == nil {
		return nil
	}
	out := make([]domain.Note, 0, len(notes))
	now := time.Now().UTC()
	for _, note := range notes {
		if note.ID == "" {
			note.ID = uuid.NewString()
		}
		if note.CreatedAt.IsZero() {
			note.CreatedAt = now
		}
		out = append(out, note)
	}
	return out
}
