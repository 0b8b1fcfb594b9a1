package model

import "strings"

// Manifest mirrors the result document Amazon Transcribe writes on completion.
// Only the fields this tool reads are decoded.
type Manifest struct {
	JobName   string          `json:"jobName"`
	AccountID string          `json:"accountId,omitempty"`
	Status    string          `json:"status"`
	Results   ManifestResults `json:"results"`
}

type ManifestResults struct {
	Transcripts []TranscriptFragment `json:"transcripts"`
}

type TranscriptFragment struct {
	Transcript string `json:"transcript"`
}

// Text joins every transcript fragment, each followed by a newline.
func (m Manifest) Text() string {
	var b strings.Builder
	for _, fragment := range m.Results.Transcripts {
		b.WriteString(fragment.Transcript)
		b.WriteString("\n")
	}
	return b.String()
}
