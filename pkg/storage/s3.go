// Package storage uploads local files to S3 with byte-level progress.
package storage

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/logging"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/naming"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/progress"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const uploadErrorPrefix = "failed to upload file"

// UploadAPI is the subset of *manager.Uploader used here.
type UploadAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// SinkFactory creates the progress sink for a file of the given size.
type SinkFactory func(fileName string, size int64) progress.Sink

type UploadResult struct {
	Bucket   string
	Key      string
	Location string
	Size     int64
}

func (r UploadResult) MediaURI() string {
	return naming.MediaURI(r.Bucket, r.Key)
}

type S3Uploader struct {
	api UploadAPI
}

func NewS3Uploader(api UploadAPI) *S3Uploader {
	return &S3Uploader{api: api}
}

// NewS3UploaderFromConfig wires a transfer manager on top of an S3 client.
func NewS3UploaderFromConfig(cfg aws.Config) *S3Uploader {
	client := s3.NewFromConfig(cfg)
	return NewS3Uploader(manager.NewUploader(client))
}

// Upload streams localPath to bucket/key. newSink may be nil.
func (u *S3Uploader) Upload(ctx context.Context, localPath, bucket, key string, newSink SinkFactory) (UploadResult, error) {
	if strings.TrimSpace(localPath) == "" {
		return UploadResult{}, utils.Wrap(errors.New("file path is required"), uploadErrorPrefix)
	}
	if strings.TrimSpace(bucket) == "" || strings.TrimSpace(key) == "" {
		return UploadResult{}, utils.Wrap(errors.New("bucket and key are required"), uploadErrorPrefix)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return UploadResult{}, utils.Wrap(err, uploadErrorPrefix)
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return UploadResult{}, utils.Wrap(err, uploadErrorPrefix)
	}

	var sink progress.Sink = progress.NopSink{}
	if newSink != nil {
		if s := newSink(info.Name(), info.Size()); s != nil {
			sink = s
		}
	}

	logging.NewLogger(ctx).Debugf("s3_upload_request bucket=%q key=%q size=%d", bucket, key, info.Size())

	output, err := u.api.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          progress.NewReader(file, sink),
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return UploadResult{}, utils.Wrap(err, uploadErrorPrefix)
	}

	result := UploadResult{
		Bucket: bucket,
		Key:    key,
		Size:   info.Size(),
	}
	if output != nil {
		result.Location = output.Location
	}

	logging.NewLogger(ctx).Infof("s3_upload_complete uri=%q", result.MediaURI())
	return result, nil
}
