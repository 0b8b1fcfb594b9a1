package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func (s *ConfigSuite) TestFromLookupAppliesDefaults() {
	cfg := FromLookup(lookupFrom(map[string]string{
		EnvRegion: " us-west-2 ",
		EnvBucket: "audio",
	}))

	s.Equal("us-west-2", cfg.Region)
	s.Equal("audio", cfg.Bucket)
	s.Equal(DefaultOutputDir, cfg.OutputDir)
	s.Equal(model.DefaultLanguageCode, cfg.LanguageCode)
}

func (s *ConfigSuite) TestFromLookupUsesConfiguredValues() {
	cfg := FromLookup(lookupFrom(map[string]string{
		EnvRegion:       "eu-west-1",
		EnvOutputDir:    "/data/out",
		EnvLanguageCode: "de-DE",
		EnvProfile:      "dev",
	}))

	s.Equal("/data/out", cfg.OutputDir)
	s.Equal("de-DE", cfg.LanguageCode)
	s.Equal("dev", cfg.Profile)
}

func (s *ConfigSuite) TestValidateRequiresRegion() {
	err := FromLookup(lookupFrom(nil)).Validate()

	s.Require().Error(err)
	s.True(IsConfigError(err))
	s.Contains(err.Error(), EnvRegion)
}

func (s *ConfigSuite) TestValidateRejectsHalfStaticCredentials() {
	err := FromLookup(lookupFrom(map[string]string{
		EnvRegion:      "us-east-1",
		EnvAccessKeyID: "AKIA",
	})).Validate()

	s.Require().Error(err)
	s.True(IsConfigError(err))
}

func (s *ConfigSuite) TestBucketRequiredOnlyForUpload() {
	cfg := FromLookup(lookupFrom(map[string]string{EnvRegion: "us-east-1"}))

	s.NoError(cfg.Validate())

	err := cfg.ValidateForUpload()
	s.Require().Error(err)
	s.True(IsConfigError(err))
	s.Contains(err.Error(), EnvBucket)
}

func (s *ConfigSuite) TestLoadEnvFileMissingIsIgnored() {
	s.NoError(LoadEnvFile(filepath.Join(s.T().TempDir(), "absent.env")))
	s.NoError(LoadEnvFile(""))
}

func (s *ConfigSuite) TestLoadEnvFileDoesNotOverrideEnvironment() {
	path := filepath.Join(s.T().TempDir(), ".env")
	s.Require().NoError(os.WriteFile(path, []byte("AWS_BUCKET_NAME=from-file\nTRANSCRIBE_TEST_ONLY=loaded\n"), 0o600))
	s.T().Setenv(EnvBucket, "from-env")
	s.T().Setenv("TRANSCRIBE_TEST_ONLY", "")
	s.Require().NoError(os.Unsetenv("TRANSCRIBE_TEST_ONLY"))

	s.Require().NoError(LoadEnvFile(path))

	s.Equal("from-env", os.Getenv(EnvBucket))
	s.Equal("loaded", os.Getenv("TRANSCRIBE_TEST_ONLY"))
}
