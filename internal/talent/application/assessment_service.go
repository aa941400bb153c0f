package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

type assessmentService struct {
	assessments AssessmentRepository
	jobs        JobRepository
	candidates  CandidateRepository
	gate        *WriteGate
}

func NewAssessmentService(assessments AssessmentRepository, jobs JobRepository, candidates CandidateRepository, gate *WriteGate) AssessmentService {
	return &assessmentService{assessments: assessments, jobs: jobs, candidates: candidates, gate: gate}
}

func (s *assessmentService) ByJob(ctx context.Context, jobID string) (*domain.Assessment, error) {
	assessment, ok := s.assessments.AssessmentByJobID(ctx, jobID)
	if !ok {
		return nil, nil
	}
	return &assessment, nil
}

// Save upserts the job's assessment. Missing section and question ids are generated.
func (s *assessmentService) Save(ctx context.Context, jobID string, cmd SaveAssessmentCommand) (domain.Assessment, error) {
	if _, ok := s.jobs.JobByID(ctx, jobID); !ok {
		return domain.Assessment{}, ErrJobNotFound
	}
	sections, err := normalizeSections(cmd.Sections)
	if err != nil {
		return domain.Assessment{}, err
	}
	assessment := domain.Assessment{
		ID:          strings.TrimSpace(cmd.ID),
		JobID:       jobID,
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		Sections:    sections,
	}
	return perform(ctx, s.gate, "assessment.save", func() (domain.Assessment, error) {
		return s.assessments.UpsertAssessment(ctx, assessment), nil
	})
}

// SubmitResponse records a candidate's answers after checking required questions.
func (s *assessmentService) SubmitResponse(ctx context.Context, cmd SubmitResponseCommand) (domain.AssessmentResponse, error) {
	assessment, ok := s.assessments.AssessmentByID(ctx, cmd.AssessmentID)
	if !ok {
		return domain.AssessmentResponse{}, ErrAssessmentNotFound
	}
	if strings.TrimSpace(cmd.CandidateID) == "" {
		return domain.AssessmentResponse{}, fmt.Errorf("%w: candidate is required", ErrValidation)
	}
	if _, ok := s.candidates.CandidateByID(ctx, cmd.CandidateID); !ok {
		return domain.AssessmentResponse{}, ErrCandidateNotFound
	}
	for _, section := range assessment.Sections {
		for _, q := range section.Questions {
			if q.Required && !answered(cmd.Responses[q.ID]) {
				return domain.AssessmentResponse{}, fmt.Errorf("%w: question %q requires an answer", ErrValidation, q.ID)
			}
		}
	}

	response := domain.AssessmentResponse{
		AssessmentID: assessment.ID,
		CandidateID:  cmd.CandidateID,
		Responses:    cmd.Responses,
	}
	return perform(ctx, s.gate, "assessment.respond", func() (domain.AssessmentResponse, error) {
		return s.assessments.AppendResponse(ctx, response), nil
	})
}

func (s *assessmentService) Responses(ctx context.Context, candidateID string) ([]domain.AssessmentResponse, error) {
	return s.assessments.ResponsesForCandidate(ctx, candidateID), nil
}

func normalizeSections(sections []domain.Section) ([]domain.Section, error) {
	out := make([]domain.Section, 0, len(sections))
	for _, section := range sections {
		if section.ID == "" {
			section.ID = uuid.NewString()
		}
		questions := make([]domain.Question, 0, len(section.Questions))
		for _, q := range section.Questions {
			if q.ID == "" {
				q.ID = uuid.NewString()
			}
			if !q.Type.Valid() {
				return nil, fmt.Errorf("%w: invalid question type %q", ErrValidation, q.Type)
			}
			if strings.TrimSpace(q.Question) == "" {
				return nil, fmt.Errorf("%w: question %q has no text", ErrValidation, q.ID)
			}
			if (q.Type == domain.QuestionSingleChoice || q.Type == domain.QuestionMultiChoice) && len(q.Options) == 0 {
				return nil, fmt.Errorf("%w: question %q needs options", ErrValidation, q.ID)
			}
			for _, cond := range q.Conditions {
				if !cond.Operator.Valid() {
					return nil, fmt.Errorf("%w: invalid condition operator %q", ErrValidation, cond.Operator)
				}
			}
			questions = append(questions, q)
		}
		section.Questions = questions
		out = append(out, section)
	}
	return out, nil
}

func answered(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	default:
		return true
	}
}
