package awsutil

import (
	"context"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/config"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// LoadConfig builds the shared aws.Config. Static keys win over a named
// profile; with neither, the SDK default credential chain is used.
func LoadConfig(ctx context.Context, cfg config.Config) (aws.Config, error) {
	if err := cfg.Validate(); err != nil {
		return aws.Config{}, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions(cfg)...)
	if err != nil {
		return aws.Config{}, utils.WrapIfNotNil(err)
	}
	return awsCfg, nil
}

func loadOptions(cfg config.Config) []func(*awsconfig.LoadOptions) error {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	switch {
	case cfg.AccessKeyID != "" && cfg.SecretAccessKey != "":
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	case cfg.Profile != "":
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	return opts
}
