package model

// DefaultLanguageCode is the source language sent with every job unless configured otherwise.
const DefaultLanguageCode = "en-US"

// StartJobRequest is everything the transcription backend needs to launch a job.
type StartJobRequest struct {
	JobName      string
	MediaURI     string
	MediaFormat  string
	LanguageCode string
}
