package model

import (
	"errors"
	"fmt"
	"strings"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusError      JobStatus = "ERROR"
)

// UnknownFailureReason is reported when the service marks a job failed without a reason.
const UnknownFailureReason = "Unknown error"

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s.IsFailure()
}

func (s JobStatus) IsFailure() bool {
	return s == JobStatusFailed || s == JobStatusError
}

func (s JobStatus) String() string {
	return string(s)
}

// Job is one status snapshot of a transcription job. Nothing here is
// persisted locally; the service owns the state.
type Job struct {
	Name          string
	Status        JobStatus
	FailureReason string
	TranscriptURL string
	MediaURI      string
	MediaFormat   string
	LanguageCode  string
}

var ErrJobFailed = errors.New("transcription job failed")

type JobFailedError struct {
	JobName string
	Reason  string
}

func NewJobFailedError(job Job) *JobFailedError {
	reason := strings.TrimSpace(job.FailureReason)
	if reason == "" {
		reason = UnknownFailureReason
	}
	return &JobFailedError{JobName: job.Name, Reason: reason}
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrJobFailed.Error(), e.Reason)
}

func (e *JobFailedError) Is(target error) bool {
	return target == ErrJobFailed
}
