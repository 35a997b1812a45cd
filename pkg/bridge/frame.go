package bridge

import (
	"encoding/json"

	"github.com/vango-dev/live/pkg/scenario"
)

// Frame kinds.
const (
	FrameEvent  = "event"
	FrameLayout = "layout"
	FrameScroll = "scroll"
	FrameInsert = "insert"

	FrameHello  = "hello"
	FrameResult = "result"
	FrameError  = "error"
)

// Envelope is the outer shape of every frame.
type Envelope struct {
	Frame string          `json:"frame"`
	Seq   uint64          `json:"seq,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EventData dispatches one native event.
type EventData struct {
	Type    string  `json:"type"`
	Target  string  `json:"target"`
	ClientX float64 `json:"clientX,omitempty"`
	ClientY float64 `json:"clientY,omitempty"`
	Button  int     `json:"button,omitempty"`
	Key     string  `json:"key,omitempty"`

	// Compat sends a pointer event followed by its mouse compatibility
	// event, as a browser does.
	Compat bool `json:"compat,omitempty"`
}

// LayoutData assigns [x, y, width, height] boxes by selector.
type LayoutData struct {
	Rects scenario.Layout `json:"rects"`
}

// ScrollData sets the document scroll offset.
type ScrollData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// InsertData appends parsed HTML under the first element matching Parent,
// or the body when Parent is empty.
type InsertData struct {
	Parent string `json:"parent,omitempty"`
	HTML   string `json:"html"`
}

// HelloData opens every connection.
type HelloData struct {
	Session string `json:"session"`
}

// ResultData answers a client frame.
type ResultData struct {
	Event            string                `json:"event,omitempty"`
	DefaultPrevented bool                  `json:"defaultPrevented,omitempty"`
	Invocations      []scenario.Invocation `json:"invocations,omitempty"`
}

// ErrorData reports a rejected frame.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func encode(frame string, seq uint64, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Frame: frame, Seq: seq, Data: raw}, nil
}
