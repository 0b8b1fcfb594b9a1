package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/config"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ExternalDependenciesSuite loads $SETTINGS_FILE (default $HOME/.env) so the
// AWS-backed suites can run against a real account when configured.
type ExternalDependenciesSuite struct {
	suite.Suite
	settingsFile string
}

func (s *ExternalDependenciesSuite) SetupSuite() {
	settingsFromEnv := strings.TrimSpace(os.Getenv("SETTINGS_FILE"))
	settingsFile := settingsFromEnv
	if settingsFile == "" {
		homeDir, err := os.UserHomeDir()
		require.NoError(s.T(), err)
		settingsFile = filepath.Join(homeDir, ".env")
	}

	s.settingsFile = settingsFile

	_, err := os.Stat(settingsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && settingsFromEnv == "" {
			return
		}
		require.NoError(s.T(), err)
		return
	}

	err = godotenv.Overload(settingsFile)
	require.NoError(s.T(), err)
}

type TranscribeIntegrationSuite struct {
	ExternalDependenciesSuite
	cfg       config.Config
	audioPath string
}

func TestTranscribeIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TranscribeIntegrationSuite))
}

func (s *TranscribeIntegrationSuite) SetupSuite() {
	s.ExternalDependenciesSuite.SetupSuite()

	s.cfg = config.Load()
	s.audioPath = strings.TrimSpace(os.Getenv("TRANSCRIBE_TEST_AUDIO"))

	if s.cfg.Region == "" || s.cfg.Bucket == "" {
		s.T().Skip("AWS_REGION/AWS_BUCKET_NAME are not set; skipping external dependency integration test")
	}
	if s.audioPath == "" {
		s.T().Skip("TRANSCRIBE_TEST_AUDIO is not set; skipping external dependency integration test")
	}
	if _, err := os.Stat(s.audioPath); err != nil {
		s.T().Skipf("%s is not accessible (%v); skipping transcribe integration test", s.audioPath, err)
	}
	s.cfg.OutputDir = s.T().TempDir()
}

func (s *TranscribeIntegrationSuite) TestUploadWaitAndSave() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	deps, err := NewDeps(ctx, s.cfg, true)
	require.NoError(s.T(), err)

	result, err := NewLauncher(deps).LaunchAndWait(ctx, UploadRequest{InputPath: s.audioPath, Wait: true})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), model.JobStatusCompleted, result.Job.Status)

	data, err := os.ReadFile(result.TranscriptPath)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), strings.TrimSpace(string(data)))

	fetched, err := NewFetcher(deps).Fetch(ctx, FetchRequest{JobName: result.Job.Name})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), model.JobStatusCompleted, fetched.Job.Status)
}
