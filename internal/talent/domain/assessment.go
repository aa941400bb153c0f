package domain

import "time"

// Assessment is the questionnaire attached to a job. A job has at most one.
type Assessment struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question is one prompt of an assessment section.
// Conditions are stored as authored and are not evaluated anywhere.
type Question struct {
	ID         string       `json:"id"`
	Type       QuestionType `json:"type"`
	Question   string       `json:"question"`
	Options    []string     `json:"options,omitempty"`
	Required   bool         `json:"required"`
	Conditions []Condition  `json:"conditions,omitempty"`
	Min        *int         `json:"min,omitempty"`
	Max        *int         `json:"max,omitempty"`
	MaxLength  *int         `json:"maxLength,omitempty"`
	NumericMin *float64     `json:"numericMin,omitempty"`
	NumericMax *float64     `json:"numericMax,omitempty"`
}

type Condition struct {
	QuestionID string            `json:"questionId"`
	Operator   ConditionOperator `json:"operator"`
	Value      any               `json:"value"`
}

// AssessmentResponse is a candidate's submitted answers keyed by question id.
type AssessmentResponse struct {
	ID           string         `json:"id"`
	AssessmentID string         `json:"assessmentId"`
	CandidateID  string         `json:"candidateId"`
	Responses    map[string]any `json:"responses"`
	SubmittedAt  time.Time      `json:"submittedAt"`
}

// TimelineEventType enumerates the events a candidate timeline can hold.
type TimelineEventType string

const (
	TimelineStageChange         TimelineEventType = "stage_change"
	TimelineNoteAdded           TimelineEventType = "note_added"
	TimelineAssessmentCompleted TimelineEventType = "assessment_completed"
)

type TimelineEvent struct {
	ID        string            `json:"id"`
	Type      TimelineEventType `json:"type"`
	Data      any               `json:"data"`
	Timestamp time.Time         `json:"timestamp"`
}

type CandidateTimeline struct {
	CandidateID string          `json:"candidateId"`
	Events      []TimelineEvent `json:"events"`
}

func (a Assessment) Clone() Assessment {
	out := a
	out.Sections = cloneSections(a.Sections)
	return out
}

func (r AssessmentResponse) Clone() AssessmentResponse {
	out := r
	if r.Responses != nil {
		out.Responses = make(map[string]any, len(r.Responses))
		for k, v := range r.Responses {
			out.Responses[k] = v
		}
	}
	return out
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, section := range sections {
		out[i] = section
		out[i].Questions = make([]Question, len(section.Questions))
		for j, q := range section.Questions {
			out[i].Questions[j] = q.clone()
		}
	}
	return out
}

func (q Question) clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	out.Conditions = append([]Condition(nil), q.Conditions...)
	out.Min = cloneInt(q.Min)
	out.Max = cloneInt(q.Max)
	out.MaxLength = cloneInt(q.MaxLength)
	out.NumericMin = cloneFloat(q.NumericMin)
	out.NumericMax = cloneFloat(q.NumericMax)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
