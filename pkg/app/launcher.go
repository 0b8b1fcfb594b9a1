package app

import (
	"context"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/logging"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/naming"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/storage"
)

type UploadRequest struct {
	InputPath   string
	KeyOverride string
	Wait        bool
	NewSink     storage.SinkFactory

	// OnStarted, when set, runs once the job has been submitted and before any wait.
	OnStarted func(UploadResult)
}

// UploadResult reports what happened. Job.Name is always set once the job
// was started, including when the wait was interrupted.
type UploadResult struct {
	Upload         storage.UploadResult
	Job            model.Job
	TranscriptPath string
}

type Launcher struct {
	deps Deps
}

func NewLauncher(deps Deps) *Launcher {
	return &Launcher{deps: deps}
}

// Launch uploads the file and starts a job. Nothing is retried.
func (l *Launcher) Launch(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if err := l.deps.Config.ValidateForUpload(); err != nil {
		return UploadResult{}, err
	}

	key := naming.DeriveObjectKey(req.InputPath, req.KeyOverride)
	log := logging.NewLogger(ctx).WithField("key", key)

	uploaded, err := l.deps.Uploader.Upload(ctx, req.InputPath, l.deps.Config.Bucket, key, req.NewSink)
	if err != nil {
		return UploadResult{}, err
	}
	result := UploadResult{Upload: uploaded}

	job, err := l.deps.Jobs.StartJob(ctx, model.StartJobRequest{
		JobName:      naming.DeriveJobName(key, l.deps.Clock.Now()),
		MediaURI:     uploaded.MediaURI(),
		MediaFormat:  naming.DeriveMediaFormat(key),
		LanguageCode: l.deps.Config.LanguageCode,
	})
	if err != nil {
		return result, err
	}
	result.Job = job
	log.Infof("transcription_job_started name=%q", job.Name)

	return result, nil
}

// LaunchAndWait is Launch followed, when req.Wait is set, by a blocking wait
// and a save to the default output directory. On cancellation the returned
// result still carries the job so the caller can print how to resume.
func (l *Launcher) LaunchAndWait(ctx context.Context, req UploadRequest) (UploadResult, error) {
	result, err := l.Launch(ctx, req)
	if err != nil {
		return result, err
	}
	if req.OnStarted != nil {
		req.OnStarted(result)
	}
	if !req.Wait {
		return result, nil
	}

	job, err := l.deps.Waiter.Wait(ctx, result.Job.Name)
	if err != nil {
		return result, err
	}
	result.Job = job

	path, err := saveDefault(ctx, l.deps, job)
	if err != nil {
		return result, err
	}
	result.TranscriptPath = path
	return result, nil
}
