package main

import (
	"fmt"
	"io"

	"github.com/Nephrolytics-ai/transcribe-cli/pkg/app"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/model"
	"github.com/Nephrolytics-ai/transcribe-cli/pkg/transcribe"
)

// withStatusEcho makes a transcribe.Poller print each pending status.
func withStatusEcho(deps app.Deps, out io.Writer) app.Deps {
	if poller, ok := deps.Waiter.(*transcribe.Poller); ok {
		poller.OnStatus = func(job model.Job) {
			fmt.Fprintf(out, "Current status: %s... (Press Ctrl+C to stop checking)\n", job.Status)
		}
	}
	return deps
}
