package progress

import "io"

// Reader reports every successful Read to a Sink.
type Reader struct {
	r    io.Reader
	sink Sink
}

func NewReader(r io.Reader, sink Sink) *Reader {
	if sink == nil {
		sink = NopSink{}
	}
	return &Reader{r: r, sink: sink}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.sink.Add(int64(n))
	}
	return n, err
}
