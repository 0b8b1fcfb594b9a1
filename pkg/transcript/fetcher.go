package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/logging"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/utils"
)

const (
	fetchErrorPrefix      = "failed to download transcript"
	defaultFetchTimeout   = 60 * time.Second
	maxManifestErrorBytes = 512
)

// Fetcher downloads result manifests from the pre-signed URL the service
// hands back. This is plain HTTPS, not the S3 API.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Fetcher{httpClient: httpClient}
}

func (f *Fetcher) FetchManifest(ctx context.Context, manifestURL string) (model.Manifest, error) {
	if strings.TrimSpace(manifestURL) == "" {
		return model.Manifest{}, utils.Wrap(errors.New("transcript url is required"), fetchErrorPrefix)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return model.Manifest{}, utils.Wrap(err, fetchErrorPrefix)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return model.Manifest{}, utils.Wrap(err, fetchErrorPrefix)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxManifestErrorBytes))
		return model.Manifest{}, utils.Wrap(
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
			fetchErrorPrefix,
		)
	}

	var manifest model.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return model.Manifest{}, utils.Wrap(fmt.Errorf("decode manifest: %w", err), fetchErrorPrefix)
	}

	logging.NewLogger(ctx).Debugf("transcript_manifest_fetched fragments=%d", len(manifest.Results.Transcripts))
	return manifest, nil
}
