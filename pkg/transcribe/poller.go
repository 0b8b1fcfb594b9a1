package transcribe

import (
	"context"
	"time"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/logging"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
)

const DefaultPollInterval = 5 * time.Second

// StatusGetter performs a single status query; *Client satisfies it.
type StatusGetter interface {
	GetJob(ctx context.Context, name string) (model.Job, error)
}

// Poller waits for a job to reach a terminal state. It has no retry limit
// and no backoff: it polls at a fixed interval until the job finishes, a
// status query fails, or ctx is cancelled.
type Poller struct {
	getter   StatusGetter
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration) error

	// OnStatus, when set, sees every non-terminal status before the poller sleeps.
	OnStatus func(job model.Job)
}

func NewPoller(getter StatusGetter) *Poller {
	return &Poller{
		getter:   getter,
		interval: DefaultPollInterval,
		sleep:    sleepContext,
	}
}

// Wait returns the completed job, a *model.JobFailedError for FAILED/ERROR,
// the status query error, or ctx.Err() when cancelled between polls. A
// cancelled wait leaves the remote job running.
func (p *Poller) Wait(ctx context.Context, name string) (model.Job, error) {
	log := logging.NewLogger(ctx).WithField("job", name)

	for {
		job, err := p.getter.GetJob(ctx, name)
		if err != nil {
			return model.Job{}, err
		}

		switch {
		case job.Status.IsFailure():
			failure := model.NewJobFailedError(job)
			log.Warnf("transcription_job_failed status=%s reason=%q", job.Status, failure.Reason)
			return job, failure
		case job.Status.IsTerminal():
			log.Infof("transcription_job_completed transcript=%q", job.TranscriptURL)
			return job, nil
		}

		log.Debugf("transcription_job_pending status=%s next_poll=%s", job.Status, p.interval)
		if p.OnStatus != nil {
			p.OnStatus(job)
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return job, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
