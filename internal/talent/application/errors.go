package application

import "errors"

var (
	ErrValidation            = errors.New("validation failed")
	ErrJobNotFound           = errors.New("job not found")
	ErrCandidateNotFound     = errors.New("candidate not found")
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrJobsToReorderNotFound = errors.New("jobs to reorder not found")
	ErrSimulatedFailure      = errors.New("random write failure occurred")
)
