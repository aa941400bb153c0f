package application

import (
	"context"

	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

// JobRepository is the storage port for jobs.
type JobRepository interface {
	AllJobs(ctx context.Context) []domain.Job
	JobByID(ctx context.Context, id string) (domain.Job, bool)
	CreateJob(ctx context.Context, job domain.Job) domain.Job
	AppendJob(ctx context.Context, job domain.Job) domain.Job
	UpdateJob(ctx context.Context, id string, patch domain.JobPatch) (domain.Job, bool)
	SwapJobOrder(ctx context.Context, from, to int) bool
}

// CandidateRepository is the storage port for candidates.
type CandidateRepository interface {
	AllCandidates(ctx context.Context) []domain.Candidate
	CandidateByID(ctx context.Context, id string) (domain.Candidate, bool)
	CreateCandidate(ctx context.Context, candidate domain.Candidate) domain.Candidate
	UpdateCandidate(ctx context.Context, id string, patch domain.CandidatePatch) (domain.Candidate, bool)
}

// AssessmentRepository is the storage port for assessments and their responses.
type AssessmentRepository interface {
	AssessmentByJobID(ctx context.Context, jobID string) (domain.Assessment, bool)
	AssessmentByID(ctx context.Context, id string) (domain.Assessment, bool)
	UpsertAssessment(ctx context.Context, assessment domain.Assessment) domain.Assessment
	AppendResponse(ctx context.Context, response domain.AssessmentResponse) domain.AssessmentResponse
	ResponsesForCandidate(ctx context.Context, candidateID string) []domain.AssessmentResponse
}

// JobQuery filters the jobs board. Zero Page/PageSize fall back to defaults.
type JobQuery struct {
	Page     int
	PageSize int
	Search   string
	Status   domain.JobStatus
}

// CandidateQuery filters the candidate list. Search and Stage are ANDed.
type CandidateQuery struct {
	Page     int
	PageSize int
	Search   string
	Stage    domain.Stage
}

// CreateJobCommand captures a new posting. A nil Order appends the job to the board.
type CreateJobCommand struct {
	Title       string
	Slug        string
	Status      domain.JobStatus
	Tags        []string
	Order       *int
	Description string
}

type CreateCandidateCommand struct {
	Name     string
	Email    string
	Stage    domain.Stage
	JobID    string
	Phone    string
	LinkedIn string
	Notes    []domain.Note
}

// SaveAssessmentCommand replaces the content of a job's assessment.
type SaveAssessmentCommand struct {
	ID          string
	Title       string
	Description string
	Sections    []domain.Section
}

type SubmitResponseCommand struct {
	AssessmentID string
	CandidateID  string
	Responses    map[string]any
}

type JobService interface {
	List(ctx context.Context, query JobQuery) (Page[domain.Job], error)
	Create(ctx context.Context, cmd CreateJobCommand) (domain.Job, error)
	Update(ctx context.Context, id string, patch domain.JobPatch) (domain.Job, error)
	Reorder(ctx context.Context, fromOrder, toOrder int) error
}

type CandidateService interface {
	List(ctx context.Context, query CandidateQuery) (Page[domain.Candidate], error)
	Detail(ctx context.Context, id string) (domain.Candidate, error)
	Create(ctx context.Context, cmd CreateCandidateCommand) (domain.Candidate, error)
	Update(ctx context.Context, id string, patch domain.CandidatePatch) (domain.Candidate, error)
	Timeline(ctx context.Context, id string) (domain.CandidateTimeline, error)
}

type AssessmentService interface {
	// ByJob returns nil without error when the job has no assessment.
	ByJob(ctx context.Context, jobID string) (*domain.Assessment, error)
	Save(ctx context.Context, jobID string, cmd SaveAssessmentCommand) (domain.Assessment, error)
	SubmitResponse(ctx context.Context, cmd SubmitResponseCommand) (domain.AssessmentResponse, error)
	Responses(ctx context.Context, candidateID string) ([]domain.AssessmentResponse, error)
}
