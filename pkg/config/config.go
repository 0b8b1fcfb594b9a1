// Package config reads the tool's settings once at startup. Values come from
// the process environment after an optional .env file has been loaded.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/joho/godotenv"
)

const (
	EnvRegion          = "AWS_REGION"
	EnvBucket          = "AWS_BUCKET_NAME"
	EnvOutputDir       = "DEFAULT_OUTPUT_DIR"
	EnvLanguageCode    = "TRANSCRIBE_LANGUAGE_CODE"
	EnvLogLevel        = "LOG_LEVEL"
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
	EnvProfile         = "AWS_PROFILE"

	DefaultOutputDir = "./transcripts"
)

type Config struct {
	Region       string
	Bucket       string
	OutputDir    string
	LanguageCode string
	LogLevel     string

	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Profile         string
}

// Error is a configuration problem detected before any network call.
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s must be set in .env file or environment: %s", e.Key, e.Message)
}

func IsConfigError(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}

// LoadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Load builds a Config from the environment.
func Load() Config {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup for every variable.
func FromLookup(lookup func(string) (string, bool)) Config {
	get := func(key string) string {
		value, _ := lookup(key)
		return strings.TrimSpace(value)
	}

	cfg := Config{
		Region:          get(EnvRegion),
		Bucket:          get(EnvBucket),
		OutputDir:       get(EnvOutputDir),
		LanguageCode:    get(EnvLanguageCode),
		LogLevel:        get(EnvLogLevel),
		AccessKeyID:     get(EnvAccessKeyID),
		SecretAccessKey: get(EnvSecretAccessKey),
		SessionToken:    get(EnvSessionToken),
		Profile:         get(EnvProfile),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = model.DefaultLanguageCode
	}
	return cfg
}

// Validate checks the values every command needs. Upload additionally
// requires a bucket; see ValidateForUpload.
func (c Config) Validate() error {
	if c.Region == "" {
		return &Error{Key: EnvRegion, Message: "region is required"}
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return &Error{
			Key:     EnvAccessKeyID + "/" + EnvSecretAccessKey,
			Message: "both are required when using key-based auth",
		}
	}
	return nil
}

func (c Config) ValidateForUpload() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Bucket == "" {
		return &Error{Key: EnvBucket, Message: "bucket is required for upload"}
	}
	return nil
}
