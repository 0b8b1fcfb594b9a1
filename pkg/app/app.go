// Package app wires storage, transcription and transcript persistence into
// the two operations the command line exposes: upload and fetch.
package app

import (
	"context"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/awsutil"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/clock"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/config"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/storage"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/transcribe"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/transcript"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/utils"
)

type Uploader interface {
	Upload(ctx context.Context, localPath, bucket, key string, newSink storage.SinkFactory) (storage.UploadResult, error)
}

type JobService interface {
	StartJob(ctx context.Context, req model.StartJobRequest) (model.Job, error)
	GetJob(ctx context.Context, name string) (model.Job, error)
}

type Waiter interface {
	Wait(ctx context.Context, name string) (model.Job, error)
}

type TranscriptSaver interface {
	SaveTo(ctx context.Context, manifestURL, outputPath string) (string, error)
}

// Deps are the collaborators shared by Launcher and Fetcher.
type Deps struct {
	Config   config.Config
	Clock    clock.Clock
	Uploader Uploader
	Jobs     JobService
	Waiter   Waiter
	Saver    TranscriptSaver
}

// NewDeps builds AWS-backed collaborators from cfg. Only the clients the
// command needs are created: fetch never touches S3.
func NewDeps(ctx context.Context, cfg config.Config, withUploader bool) (Deps, error) {
	awsCfg, err := awsutil.LoadConfig(ctx, cfg)
	if err != nil {
		return Deps{}, err
	}

	jobs := transcribe.NewClientFromConfig(awsCfg)
	deps := Deps{
		Config: cfg,
		Clock:  clock.New(),
		Jobs:   jobs,
		Waiter: transcribe.NewPoller(jobs),
		Saver:  transcript.NewSaver(transcript.NewFetcher(nil)),
	}
	if withUploader {
		deps.Uploader = storage.NewS3UploaderFromConfig(awsCfg)
	}
	return deps, nil
}

// saveDefault writes a completed job's transcript to <output dir>/<job>.txt.
func saveDefault(ctx context.Context, deps Deps, job model.Job) (string, error) {
	dir, err := transcript.DefaultOutputDir(deps.Config.OutputDir)
	if err != nil {
		return "", utils.WrapIfNotNil(err)
	}
	return deps.Saver.SaveTo(ctx, job.TranscriptURL, transcript.JobOutputPath(dir, job.Name))
}
