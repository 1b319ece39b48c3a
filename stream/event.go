// Package stream decodes the server-sent-event response stream of the
// Responses API into discrete typed events.
package stream

import "github.com/tidwall/gjson"

// Event names sent by the Responses API stream.
const (
	EventTextDelta = "response.output_text.delta"
	EventError     = "response.error"
	EventBareError = "error"
	EventDone      = "response.done"
	EventCompleted = "response.completed"
)

// doneSentinel is the data payload that signals normal stream termination.
// It is a framing artifact, not an event.
const doneSentinel = "[DONE]"

// EventKind classifies a decoded stream event.
type EventKind int

const (
	// KindOther is any recognized event the client does not act on.
	// Unknown server event types land here so new kinds never break decoding.
	KindOther EventKind = iota
	// KindTextDelta carries an incremental fragment of generated text.
	KindTextDelta
	// KindError is a server-reported error event.
	KindError
	// KindDone marks completion of the response.
	KindDone
)

// IsTerminal returns true if decoding stops after an event of this kind.
func (k EventKind) IsTerminal() bool {
	return k == KindError || k == KindDone
}

// String returns the kind name for logs and test output.
func (k EventKind) String() string {
	switch k {
	case KindTextDelta:
		return "text_delta"
	case KindError:
		return "error"
	case KindDone:
		return "done"
	default:
		return "other"
	}
}

// Event is one decoded stream event.
type Event struct {
	// Kind is the closed classification consumers switch on.
	Kind EventKind
	// Name is the event name as sent by the server, or inferred from the
	// payload type field when no event line preceded the data line.
	Name string
	// Payload is the raw data payload for this event.
	Payload []byte
}

// classifyName maps a server event name to its kind.
func classifyName(name string) EventKind {
	switch name {
	case EventTextDelta:
		return KindTextDelta
	case EventError, EventBareError:
		return KindError
	case EventDone, EventCompleted:
		return KindDone
	default:
		return KindOther
	}
}

// inferName extracts the event name from a self-describing payload.
// Returns empty when the payload has no type field.
func inferName(payload string) string {
	return gjson.Get(payload, "type").String()
}
