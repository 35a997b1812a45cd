package scenario

import (
	"fmt"

	"github.com/vango-dev/live/pkg/live"
)

// Invocation is one recorded callback run.
type Invocation struct {
	// Step is the 1-based step that caused the callback, 0 outside replay.
	Step      int    `json:"step,omitempty"`
	Selector  string `json:"selector"`
	Namespace string `json:"namespace,omitempty"`
	// Event is the effective event name after hover classification.
	Event string `json:"event"`
	// Raw is the native event type.
	Raw      string `json:"raw"`
	Matched  string `json:"matched"`
	Canceled bool   `json:"canceled,omitempty"`
}

// String renders the invocation in the form used by expect lists:
// "selector[@namespace] event -> matched[ (canceled)]".
func (i Invocation) String() string {
	sel := i.Selector
	if i.Namespace != "" {
		sel += "@" + i.Namespace
	}
	s := fmt.Sprintf("%s %s -> %s", sel, i.Event, i.Matched)
	if i.Canceled {
		s += " (canceled)"
	}
	return s
}

// Recorder collects invocations from the callbacks it hands out.
type Recorder struct {
	step        int
	invocations []Invocation
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Callback returns a callback recording under spec that returns
// !spec.Cancel.
func (r *Recorder) Callback(spec BindingSpec) live.Callback {
	return func(e *live.Event) bool {
		r.invocations = append(r.invocations, Invocation{
			Step:      r.step,
			Selector:  spec.Selector,
			Namespace: e.Namespace,
			Event:     e.Name.String(),
			Raw:       e.Raw.String(),
			Matched:   e.Matched.String(),
			Canceled:  spec.Cancel,
		})
		return !spec.Cancel
	}
}

// Invocations returns everything recorded so far.
func (r *Recorder) Invocations() []Invocation {
	return append([]Invocation(nil), r.invocations...)
}

// Take returns and clears the recorded invocations.
func (r *Recorder) Take() []Invocation {
	out := r.invocations
	r.invocations = nil
	return out
}
