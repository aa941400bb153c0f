package domain

import "time"

// Candidate is an applicant moving through the hiring pipeline.
// JobTitle is a snapshot of the referenced job's title taken when JobID was written.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Stage     Stage     `json:"stage"`
	JobID     string    `json:"jobId"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Phone     string    `json:"phone,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	Notes     []Note    `json:"notes,omitempty"`
}

// Note is a free-text remark attached to a candidate.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Mentions  []string  `json:"mentions,omitempty"`
}

// CandidatePatch carries a partial update; nil fields are left untouched.
type CandidatePatch struct {
	Name     *string
	Email    *string
	Stage    *Stage
	JobID    *string
	JobTitle *string
	Phone    *string
	LinkedIn *string
	Notes    *[]Note
}

func (p CandidatePatch) Apply(c *Candidate) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	if p.JobID != nil {
		c.JobID = *p.JobID
	}
	if p.JobTitle != nil {
		c.JobTitle = *p.JobTitle
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.LinkedIn != nil {
		c.LinkedIn = *p.LinkedIn
	}
	if p.Notes != nil {
		c.Notes = cloneNotes(*p.Notes)
	}
}

func (c Candidate) Clone() Candidate {
	out := c
	out.Notes = cloneNotes(c.Notes)
	return out
}

func cloneNotes(notes []Note) []Note {
	if notes == nil {
		return nil
	}
	out := make([]Note, len(notes))
	for i, note := range notes {
		out[i] = note
		out[i].Mentions = append([]string(nil), note.Mentions...)
	}
	return out
}
