package transcript

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/utils"
)

// DefaultOutputFileName is used when the caller points at a directory.
const DefaultOutputFileName = "transcribed_output.txt"

// DefaultOutputDirName is the fallback when nothing is configured.
const DefaultOutputDirName = "./transcripts"

// ResolveOutputPath places DefaultOutputFileName inside target when target is
// an existing directory; any other target is returned unchanged.
func ResolveOutputPath(target string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, DefaultOutputFileName)
	}
	return target
}

// DefaultOutputDir returns configured (or DefaultOutputDirName) after making
// sure the directory exists.
func DefaultOutputDir(configured string) (string, error) {
	dir := strings.TrimSpace(configured)
	if dir == "" {
		dir = DefaultOutputDirName
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", utils.WrapIfNotNil(err, dir)
	}
	return dir, nil
}

// JobOutputPath is the default location for a job's transcript: <dir>/<job>.txt.
func JobOutputPath(dir, jobName string) string {
	return filepath.Join(dir, jobName+DefaultExtension)
}

// SplitOutputPath breaks path into directory, base name and extension. A
// path without an extension gets DefaultExtension.
func SplitOutputPath(path string) (dir, base, ext string) {
	dir = filepath.Dir(path)
	file := filepath.Base(path)
	ext = filepath.Ext(file)
	base = strings.TrimSuffix(file, ext)
	if ext == "" {
		ext = DefaultExtension
	}
	return dir, base, ext
}
