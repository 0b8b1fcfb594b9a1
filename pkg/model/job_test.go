package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ModelSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}

func (s *ModelSuite) TestJobStatusPredicates() {
	s.False(JobStatusQueued.IsTerminal())
	s.False(JobStatusInProgress.IsTerminal())
	s.True(JobStatusCompleted.IsTerminal())
	s.False(JobStatusCompleted.IsFailure())
	s.True(JobStatusFailed.IsFailure())
	s.True(JobStatusError.IsFailure())
	s.True(JobStatusError.IsTerminal())
}

func (s *ModelSuite) TestJobFailedErrorCarriesReason() {
	err := NewJobFailedError(Job{Name: "speech-1", FailureReason: "Bad audio"})

	s.Equal("transcription job failed: Bad audio", err.Error())
	s.True(errors.Is(fmt.Errorf("wrapped: %w", err), ErrJobFailed))
}

func (s *ModelSuite) TestJobFailedErrorDefaultsReason() {
	err := NewJobFailedError(Job{Name: "speech-1", FailureReason: "  "})
	s.Equal(UnknownFailureReason, err.Reason)
}

func (s *ModelSuite) TestManifestTextTerminatesEveryFragment() {
	manifest := Manifest{Results: ManifestResults{Transcripts: []TranscriptFragment{
		{Transcript: "hello"},
		{Transcript: "world"},
	}}}
	s.Equal("hello\nworld\n", manifest.Text())
	s.Equal("", Manifest{}.Text())
}
