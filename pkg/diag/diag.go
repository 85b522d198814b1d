package diag

import "fmt"

// SuppressLine marks a diagnostic with no meaningful source position. Pushes
// made with it emit the bare text instead of the usual line prefix.
const SuppressLine = -1

// Handler queues user-facing diagnostics in FIFO order up to a fixed
// capacity. A negative limit means the queue is unbounded. The queue is
// never drained implicitly; callers reset it between runs.
type Handler struct {
	limit int
	queue []string
}

// New creates a handler that accepts at most limit diagnostics.
func New(limit int) *Handler {
	return &Handler{limit: limit}
}

// Push appends a diagnostic formatted as "line <n>: <text>". It reports
// false without queueing anything when the handler is at capacity; the
// caller decides whether to Grow and retry.
func (h *Handler) Push(line int, text string) bool {
	if h.limit >= 0 && len(h.queue) == h.limit {
		return false
	}
	if line == SuppressLine {
		h.queue = append(h.queue, text)
	} else {
		h.queue = append(h.queue, fmt.Sprintf("line %d: %s", line, text))
	}
	return true
}

// Grow raises the capacity by inc. Non-positive increments are rejected.
func (h *Handler) Grow(inc int) bool {
	if inc <= 0 {
		return false
	}
	h.limit += inc
	return true
}

// Reset empties the queue. Capacity is unchanged.
func (h *Handler) Reset() {
	h.queue = nil
}

// HasErrors reports whether any diagnostic is queued.
func (h *Handler) HasErrors() bool {
	return len(h.queue) > 0
}

// Len returns the number of queued diagnostics.
func (h *Handler) Len() int {
	return len(h.queue)
}

// Messages returns the queued diagnostics in FIFO order.
func (h *Handler) Messages() []string {
	out := make([]string, len(h.queue))
	copy(out, h.queue)
	return out
}
