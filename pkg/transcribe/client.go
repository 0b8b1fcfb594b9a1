package transcribe

import (
	"context"
	"errors"
	"strings"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/logging"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
)

const (
	startJobErrorPrefix  = "failed to start transcription job"
	jobStatusErrorPrefix = "failed to get transcription status"
)

// API is the subset of *transcribe.Client used here.
type API interface {
	StartTranscriptionJob(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, params *transcribe.GetTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error)
}

type Client struct {
	api API
}

func NewClient(api API) *Client {
	return &Client{api: api}
}

func NewClientFromConfig(cfg aws.Config) *Client {
	return NewClient(transcribe.NewFromConfig(cfg))
}

// StartJob submits a transcription job for an object already in S3.
func (c *Client) StartJob(ctx context.Context, req model.StartJobRequest) (model.Job, error) {
	if strings.TrimSpace(req.JobName) == "" {
		return model.Job{}, utils.Wrap(errors.New("job name is required"), startJobErrorPrefix)
	}
	if strings.TrimSpace(req.MediaURI) == "" {
		return model.Job{}, utils.Wrap(errors.New("media uri is required"), startJobErrorPrefix)
	}

	languageCode := strings.TrimSpace(req.LanguageCode)
	if languageCode == "" {
		languageCode = model.DefaultLanguageCode
	}

	logging.NewLogger(ctx).Infof(
		"transcription_job_request name=%q media=%q format=%q language=%q",
		req.JobName, req.MediaURI, req.MediaFormat, languageCode,
	)

	output, err := c.api.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(req.JobName),
		Media:                &types.Media{MediaFileUri: aws.String(req.MediaURI)},
		MediaFormat:          types.MediaFormat(req.MediaFormat),
		LanguageCode:         types.LanguageCode(languageCode),
	})
	if err != nil {
		return model.Job{}, utils.Wrap(err, startJobErrorPrefix)
	}

	job := model.Job{
		Name:         req.JobName,
		Status:       model.JobStatusInProgress,
		MediaURI:     req.MediaURI,
		MediaFormat:  req.MediaFormat,
		LanguageCode: languageCode,
	}
	if output != nil && output.TranscriptionJob != nil {
		job = jobFromAPI(output.TranscriptionJob, job)
	}
	return job, nil
}

// GetJob performs one non-blocking status query.
func (c *Client) GetJob(ctx context.Context, name string) (model.Job, error) {
	if strings.TrimSpace(name) == "" {
		return model.Job{}, utils.Wrap(errors.New("job name is required"), jobStatusErrorPrefix)
	}

	output, err := c.api.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(name),
	})
	if err != nil {
		return model.Job{}, utils.Wrap(err, jobStatusErrorPrefix)
	}
	if output == nil || output.TranscriptionJob == nil {
		return model.Job{}, utils.Wrap(errors.New("transcription API returned an empty job"), jobStatusErrorPrefix)
	}

	return jobFromAPI(output.TranscriptionJob, model.Job{Name: name}), nil
}

// jobFromAPI overlays the fields the service reported onto fallback.
func jobFromAPI(apiJob *types.TranscriptionJob, fallback model.Job) model.Job {
	job := fallback

	if name := aws.ToString(apiJob.TranscriptionJobName); name != "" {
		job.Name = name
	}
	if apiJob.TranscriptionJobStatus != "" {
		job.Status = model.JobStatus(apiJob.TranscriptionJobStatus)
	}
	job.FailureReason = aws.ToString(apiJob.FailureReason)
	if apiJob.Transcript != nil {
		job.TranscriptURL = aws.ToString(apiJob.Transcript.TranscriptFileUri)
	}
	if apiJob.Media != nil {
		if uri := aws.ToString(apiJob.Media.MediaFileUri); uri != "" {
			job.MediaURI = uri
		}
	}
	if apiJob.MediaFormat != "" {
		job.MediaFormat = string(apiJob.MediaFormat)
	}
	if apiJob.LanguageCode != "" {
		job.LanguageCode = string(apiJob.LanguageCode)
	}
	return job
}
