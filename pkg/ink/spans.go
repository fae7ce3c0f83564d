package ink

import (
	"github.com/akeil/nebotool/pkg/jiix"
)

// SpanWalker resolves the style for item indices from a list of spans.
//
// Spans are expected in order of increasing LastItem. Queries must use
// non-decreasing indices; the walker never moves back.
type SpanWalker struct {
	spans []jiix.Span
	pos   int
}

// NewSpanWalker creates a walker positioned at the first span.
func NewSpanWalker(spans []jiix.Span) *SpanWalker {
	return &SpanWalker{spans: spans}
}

// Resolve returns the style that covers item index i.
//
// If the spans are exhausted, ok is false for this and all following
// indices.
func (w *SpanWalker) Resolve(i int) (style jiix.Style, ok bool) {
	for w.pos < len(w.spans) && i > w.spans[w.pos].LastItem {
		w.pos++
	}
	if w.pos >= len(w.spans) {
		return jiix.Style{}, false
	}
	return w.spans[w.pos].Style, true
}

// Exhausted tells if no span is left.
func (w *SpanWalker) Exhausted() bool {
	return w.pos >= len(w.spans)
}
