package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar renders a Counter on a terminal.
type Bar struct {
	counter *Counter
	bar     *progressbar.ProgressBar
}

func NewBar(out io.Writer, label string, total int64) *Bar {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(0),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(out, "\n")
		}),
	)

	return &Bar{bar: bar, counter: NewCounter(total, nil)}
}

func (b *Bar) Add(n int64) {
	applied, _, completed := b.counter.add(n)
	if applied > 0 {
		_ = b.bar.Add64(applied)
	}
	if completed {
		_ = b.bar.Finish()
	}
}

func (b *Bar) Counter() *Counter {
	return b.counter
}
