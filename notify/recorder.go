// ABOUTME: In-memory notifier that records alerts and prompts
// ABOUTME: Answers confirmations with a preset reply; used by tests and the MCP server
package notify

import (
	"context"
	"sync"
)

// Recorder captures every call made against it.
type Recorder struct {
	mu       sync.Mutex
	alerts   []Alert
	prompts  []Confirmation
	answer   bool
	answerFn func(Confirmation) bool
}

// NewRecorder returns a Recorder that answers every prompt with answer.
func NewRecorder(answer bool) *Recorder {
	return &Recorder{answer: answer}
}

// AnswerWith installs a per-prompt decision function.
func (r *Recorder) AnswerWith(fn func(Confirmation) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answerFn = fn
}

func (r *Recorder) Fire(a Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
}

func (r *Recorder) Confirm(ctx context.Context, c Confirmation) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, c)
	if r.answerFn != nil {
		return r.answerFn(c), nil
	}
	return r.answer, nil
}

// Alerts returns a copy of the fired alerts in order.
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Alert(nil), r.alerts...)
}

// Prompts returns a copy of the confirmations asked in order.
func (r *Recorder) Prompts() []Confirmation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Confirmation(nil), r.prompts...)
}

// Last returns the most recent alert, if any.
func (r *Recorder) Last() (Alert, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return Alert{}, false
	}
	return r.alerts[len(r.alerts)-1], true
}

// Count returns how many times a matching alert was fired.
func (r *Recorder) Count(a Alert) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.alerts {
		if got == a {
			n++
		}
	}
	return n
}

// Reset clears recorded history.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = nil
	r.prompts = nil
}
