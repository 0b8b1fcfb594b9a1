// Package naming derives the deterministic identifiers used for an upload:
// the S3 object key, the transcription job name and the media format code.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DeriveObjectKey returns the base name of inputPath when override is empty.
// An override without an extension inherits the input file's extension.
func DeriveObjectKey(inputPath, override string) string {
	inputExt := filepath.Ext(inputPath)

	override = strings.TrimSpace(override)
	if override == "" {
		return filepath.Base(inputPath)
	}

	if filepath.Ext(override) == "" && inputExt != "" {
		return override + inputExt
	}
	return override
}

// DeriveJobName builds "<stem>-<unix seconds>" where every character of the
// key's stem that is not a letter or digit becomes '-'. Two calls within the
// same second for the same key collide.
func DeriveJobName(objectKey string, now time.Time) string {
	stem := strings.TrimSuffix(filepath.Base(objectKey), filepath.Ext(objectKey))

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, stem)

	return fmt.Sprintf("%s-%d", cleaned, now.Unix())
}

// DeriveMediaFormat returns the lower-cased extension of objectKey.
// Transcribe has no m4a code, so m4a maps to mp4.
func DeriveMediaFormat(objectKey string) string {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(objectKey), "."))
	if format == "m4a" {
		return "mp4"
	}
	return format
}

func MediaURI(bucket, objectKey string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, objectKey)
}
