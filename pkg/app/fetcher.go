package app

import (
	"context"
	"strings"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/transcript"
)

type FetchRequest struct {
	JobName    string
	OutputPath string
	Wait       bool
}

type FetchResult struct {
	Job            model.Job
	TranscriptPath string
}

type Fetcher struct {
	deps Deps
}

func NewFetcher(deps Deps) *Fetcher {
	return &Fetcher{deps: deps}
}

// Fetch checks the job once (or waits for it) and saves the transcript when
// the job has completed. A job still running is not an error: the result
// carries its status and no path. A failed job returns *model.JobFailedError.
func (f *Fetcher) Fetch(ctx context.Context, req FetchRequest) (FetchResult, error) {
	if err := f.deps.Config.Validate(); err != nil {
		return FetchResult{}, err
	}

	var (
		job model.Job
		err error
	)
	if req.Wait {
		job, err = f.deps.Waiter.Wait(ctx, req.JobName)
	} else {
		job, err = f.deps.Jobs.GetJob(ctx, req.JobName)
	}
	if err != nil {
		return FetchResult{Job: job}, err
	}

	result := FetchResult{Job: job}
	switch {
	case job.Status.IsFailure():
		return result, model.NewJobFailedError(job)
	case job.Status != model.JobStatusCompleted:
		return result, nil
	}

	var path string
	if output := strings.TrimSpace(req.OutputPath); output != "" {
		path, err = f.deps.Saver.SaveTo(ctx, job.TranscriptURL, transcript.ResolveOutputPath(output))
	} else {
		path, err = saveDefault(ctx, f.deps, job)
	}
	if err != nil {
		return result, err
	}
	result.TranscriptPath = path
	return result, nil
}
