package domain

import "time"

// Job is a posting on the jobs board. Order decides its board position.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Status      JobStatus `json:"status"`
	Tags        []string  `json:"tags"`
	Order       int       `json:"order"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// JobPatch carries a partial update; nil fields are left untouched.
type JobPatch struct {
	Title       *string
	Slug        *string
	Status      *JobStatus
	Tags        *[]string
	Order       *int
	Description *string
}

// Apply merges the patch over job. UpdatedAt is the caller's concern.
func (p JobPatch) Apply(job *Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Slug != nil {
		job.Slug = *p.Slug
	}
	if p.Status != nil {
		job.Status = *p.Status
	}
	if p.Tags != nil {
		job.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Order != nil {
		job.Order = *p.Order
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
}

// Clone returns a copy that shares no slices with j.
func (j Job) Clone() Job {
	out := j
	out.Tags = append([]string{}, j.Tags...)
	return out
}
