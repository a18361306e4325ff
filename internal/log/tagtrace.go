package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/reprompi/benchgen/internal/codegen/scanner"
)

// TagTracer writes one line per scanned tag. It is safe for concurrent use
// by the per-file pipelines.
type TagTracer struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewTagTracer creates a TagTracer. If writer is nil, tracing is a no-op.
func NewTagTracer(w io.Writer) *TagTracer {
	return &TagTracer{w: w, now: time.Now}
}

// Trace emits "<time> <file>:<line> indent=<n> <tag>".
func (t *TagTracer) Trace(path string, tag scanner.Tag) {
	if t == nil || t.w == nil {
		return
	}

	line := fmt.Sprintf("%s %s:%d indent=%d %s\n",
		t.now().Format("2006/01/02 15:04:05"),
		path,
		tag.LineNo,
		tag.Indent,
		tag.String())

	t.mu.Lock()
	_, _ = t.w.Write([]byte(line))
	t.mu.Unlock()
}
