package api

import (
	"github.com/sngm3741/talentflow/api/internal/talent/application"
	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

type jobCreateRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Order       *int     `json:"order"`
	Description string   `json:"description"`
}

func (req jobCreateRequest) command() application.CreateJobCommand {
	return application.CreateJobCommand{
		Title:       req.Title,
		Slug:        req.Slug,
		Status:      domain.JobStatus(req.Status),
		Tags:        req.Tags,
		Order:       req.Order,
		Description: req.Description,
	}
}

type jobUpdateRequest struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
	Order       *int      `json:"order"`
	Description *string   `json:"description"`
}

func (req jobUpdateRequest) patch() domain.JobPatch {
	patch := domain.JobPatch{
		Title:       req.Title,
		Slug:        req.Slug,
		Tags:        req.Tags,
		Order:       req.Order,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.JobStatus(*req.Status)
		patch.Status = &status
	}
	return patch
}

type jobReorderRequest struct {
	FromOrder *int `json:"fromOrder"`
	ToOrder   *int `json:"toOrder"`
}

type candidateCreateRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Stage    string        `json:"stage"`
	JobID    string        `json:"jobId"`
	Phone    string        `json:"phone"`
	LinkedIn string        `json:"linkedin"`
	Notes    []domain.Note `json:"notes"`
}

func (req candidateCreateRequest) command() application.CreateCandidateCommand {
	return application.CreateCandidateCommand{
		Name:     req.Name,
		Email:    req.Email,
		Stage:    domain.Stage(req.Stage),
		JobID:    req.JobID,
		Phone:    req.Phone,
		LinkedIn: req.LinkedIn,
		Notes:    req.Notes,
	}
}

type candidateUpdateRequest struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Stage    *string        `json:"stage"`
	JobID    *string        `json:"jobId"`
	Phone    *string        `json:"phone"`
	LinkedIn *string        `json:"linkedin"`
	Notes    *[]domain.Note `json:"notes"`
}

func (req candidateUpdateRequest) patch() domain.CandidatePatch {
	patch := domain.CandidatePatch{
		Name:     req.Name,
		Email:    req.Email,
		JobID:    req.JobID,
		Phone:    req.Phone,
		LinkedIn: req.LinkedIn,
		Notes:    req.Notes,
	}
	if req.Stage != nil {
		stage := domain.Stage(*req.Stage)
		patch.Stage = &stage
	}
	return patch
}

type assessmentSaveRequest struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Sections    []domain.Section `json:"sections"`
}

type responseSubmitRequest struct {
	CandidateID string         `json:"candidateId"`
	Responses   map[string]any `json:"responses"`
}

type successResponse struct {
	Success bool `json:"success"`
}
