package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/logging"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/utils"
)

const (
	saveErrorPrefix  = "failed to save transcript"
	DefaultExtension = ".txt"
)

// ManifestFetcher is satisfied by *Fetcher.
type ManifestFetcher interface {
	FetchManifest(ctx context.Context, manifestURL string) (model.Manifest, error)
}

type Saver struct {
	fetcher ManifestFetcher
}

func NewSaver(fetcher ManifestFetcher) *Saver {
	return &Saver{fetcher: fetcher}
}

// Save fetches the manifest at manifestURL and writes its text to
// dir/baseName+ext, creating dir when missing. An empty ext means
// DefaultExtension. It returns the path written.
func (s *Saver) Save(ctx context.Context, manifestURL, dir, baseName, ext string) (string, error) {
	baseName = strings.TrimSpace(baseName)
	if baseName == "" {
		return "", utils.Wrap(errors.New("output file name is required"), saveErrorPrefix)
	}
	if ext == "" {
		ext = DefaultExtension
	}
	if dir == "" {
		dir = "."
	}

	manifest, err := s.fetcher.FetchManifest(ctx, manifestURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", utils.Wrap(err, saveErrorPrefix)
	}

	path := filepath.Join(dir, baseName+ext)
	if err := os.WriteFile(path, []byte(manifest.Text()), 0o644); err != nil {
		return "", utils.Wrap(err, saveErrorPrefix)
	}

	logging.NewLogger(ctx).Infof("transcript_saved path=%q fragments=%d", path, len(manifest.Results.Transcripts))
	return path, nil
}

// SaveTo is Save for a single resolved output path.
func (s *Saver) SaveTo(ctx context.Context, manifestURL, outputPath string) (string, error) {
	dir, base, ext := SplitOutputPath(outputPath)
	return s.Save(ctx, manifestURL, dir, base, ext)
}
