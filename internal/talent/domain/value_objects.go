package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

func NewJobStatus(value string) (JobStatus, error) {
	status := JobStatus(strings.TrimSpace(value))
	if !status.Valid() {
		return "", fmt.Errorf("invalid job status: %q", value)
	}
	return status, nil
}

func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusArchived
}

// Stage is a candidate's position in the hiring pipeline.
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages lists the pipeline in board order.
var Stages = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

func NewStage(value string) (Stage, error) {
	stage := Stage(strings.TrimSpace(value))
	if !stage.Valid() {
		return "", fmt.Errorf("invalid stage: %q", value)
	}
	return stage, nil
}

func (s Stage) Valid() bool {
	for _, allowed := range Stages {
		if s == allowed {
			return true
		}
	}
	return false
}

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionShortText    QuestionType = "short_text"
	QuestionLongText     QuestionType = "long_text"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFile         QuestionType = "file"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionShortText, QuestionLongText, QuestionNumeric, QuestionFile:
		return true
	}
	return false
}

type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
)

func (o ConditionOperator) Valid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorGreaterThan, OperatorLessThan:
		return true
	}
	return false
}

// NewTagList trims and de-duplicates tags, keeping first-seen order.
func NewTagList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{})
	for _, raw := range values {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// NewEmail accepts anything with an @ after trimming; the board is not a mail validator.
func NewEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(trimmed) > 254 {
		return "", fmt.Errorf("email too long")
	}
	if !strings.Contains(trimmed, "@") {
		return "", fmt.Errorf("invalid email: %q", trimmed)
	}
	return trimmed, nil
}

var (
	slugStripPattern = regexp.MustCompile(`[^\w\s-]`)
	slugSpacePattern = regexp.MustCompile(`\s+`)
	slugDashPattern  = regexp.MustCompile(`-+`)
)

// Slugify lowercases text, drops punctuation and joins words with dashes.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	slug = slugDashPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
