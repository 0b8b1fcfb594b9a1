package transcribe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/stretchr/testify/suite"
)

type scriptedGetter struct {
	jobs  []model.Job
	calls int
}

func (g *scriptedGetter) GetJob(_ context.Context, name string) (model.Job, error) {
	idx := g.calls
	if idx >= len(g.jobs) {
		idx = len(g.jobs) - 1
	}
	g.calls++
	job := g.jobs[idx]
	job.Name = name
	return job, nil
}

type PollerSuite struct {
	suite.Suite
	sleeps []time.Duration
}

func TestPollerSuite(t *testing.T) {
	suite.Run(t, new(PollerSuite))
}

func (s *PollerSuite) SetupTest() {
	s.sleeps = nil
}

func (s *PollerSuite) newPoller(getter StatusGetter) *Poller {
	p := NewPoller(getter)
	p.sleep = func(ctx context.Context, d time.Duration) error {
		s.sleeps = append(s.sleeps, d)
		return ctx.Err()
	}
	return p
}

func (s *PollerSuite) TestWaitReturnsCompletedAfterTwoWaits() {
	getter := &scriptedGetter{jobs: []model.Job{
		{Status: model.JobStatusInProgress},
		{Status: model.JobStatusInProgress},
		{Status: model.JobStatusCompleted, TranscriptURL: "https://example.com/t.json"},
	}}

	var seen []model.JobStatus
	p := s.newPoller(getter)
	p.OnStatus = func(job model.Job) { seen = append(seen, job.Status) }

	job, err := p.Wait(context.Background(), "speech-1")

	s.Require().NoError(err)
	s.Equal(model.JobStatusCompleted, job.Status)
	s.Equal("https://example.com/t.json", job.TranscriptURL)
	s.Equal([]time.Duration{DefaultPollInterval, DefaultPollInterval}, s.sleeps)
	s.Equal(3, getter.calls)
	s.Equal([]model.JobStatus{model.JobStatusInProgress, model.JobStatusInProgress}, seen)
}

func (s *PollerSuite) TestWaitFailsWithServiceReason() {
	getter := &scriptedGetter{jobs: []model.Job{
		{Status: model.JobStatusInProgress},
		{Status: model.JobStatusFailed, FailureReason: "Bad audio"},
	}}

	_, err := s.newPoller(getter).Wait(context.Background(), "speech-1")

	s.Require().Error(err)
	s.Contains(err.Error(), "Bad audio")
	s.True(errors.Is(err, model.ErrJobFailed))

	var failed *model.JobFailedError
	s.Require().ErrorAs(err, &failed)
	s.Equal("Bad audio", failed.Reason)
	s.Equal("speech-1", failed.JobName)
}

func (s *PollerSuite) TestWaitErrorStatusWithoutReasonUsesUnknown() {
	getter := &scriptedGetter{jobs: []model.Job{{Status: model.JobStatusError}}}

	_, err := s.newPoller(getter).Wait(context.Background(), "speech-1")

	s.Require().Error(err)
	s.Contains(err.Error(), model.UnknownFailureReason)
	s.Empty(s.sleeps)
}

func (s *PollerSuite) TestWaitStopsWhenContextCancelled() {
	getter := &scriptedGetter{jobs: []model.Job{{Status: model.JobStatusInProgress}}}
	ctx, cancel := context.WithCancel(context.Background())

	p := s.newPoller(getter)
	p.OnStatus = func(model.Job) { cancel() }

	job, err := p.Wait(ctx, "speech-1")

	s.Require().ErrorIs(err, context.Canceled)
	s.Equal("speech-1", job.Name)
	s.Equal(1, getter.calls)
}

func (s *PollerSuite) TestWaitPropagatesStatusQueryError() {
	api := &fakeAPI{getErr: errors.New("throttled")}

	_, err := s.newPoller(NewClient(api)).Wait(context.Background(), "speech-1")

	s.Require().Error(err)
	s.Contains(err.Error(), "failed to get transcription status")
	s.Equal(1, api.calls)
}

func (s *PollerSuite) TestSleepContextHonoursCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Hour)
	s.ErrorIs(err, context.Canceled)
}

func (s *PollerSuite) TestSleepContextElapses() {
	s.NoError(sleepContext(context.Background(), time.Millisecond))
}
