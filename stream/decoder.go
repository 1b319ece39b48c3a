package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Decoder reads SSE framing from a response body and yields Events.
//
// Framing rules:
//   - "event:" lines set the pending event name (one leading space trimmed)
//     for the next data line; the name is cleared once consumed.
//   - "data:" lines carry a payload (one leading space trimmed). The
//     sentinel payload "[DONE]" terminates decoding without an event.
//   - Blank lines separate events and are skipped.
//   - Any other line is a continuation fragment of a malformed payload; it
//     accumulates in the leftover buffer for post-stream recovery and is
//     never surfaced as an event or an error.
//
// A single malformed line never fails the stream. Decoding stops only on
// the sentinel, a terminal (error/done) event, or end of the source.
type Decoder struct {
	reader   *bufio.Reader
	pending  string
	leftover bytes.Buffer
	done     bool
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{reader: bufio.NewReader(r)}
}

// Next returns the next decoded event.
//
// Errors:
//   - io.EOF: the stream terminated (sentinel, terminal event already
//     returned, or source end-of-stream)
//   - any other error: transport read failure; the decoder is done
func (d *Decoder) Next() (Event, error) {
	if d.done {
		return Event{}, io.EOF
	}

	for {
		line, err := d.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			// The transport died mid-line. Keep whatever arrived for
			// post-stream recovery before surfacing the failure.
			d.done = true
			d.salvage(line)
			return Event{}, fmt.Errorf("read stream: %w", err)
		}
		if line == "" && err == io.EOF {
			d.done = true
			return Event{}, io.EOF
		}
		// A final line without a trailing newline still gets processed;
		// the next read reports EOF on its own.

		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, "event:"):
			d.pending = strings.TrimPrefix(strings.TrimPrefix(line, "event:"), " ")
			continue

		case strings.HasPrefix(line, "data:"):
			payload := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
			if payload == doneSentinel {
				d.done = true
				return Event{}, io.EOF
			}
			ev := d.event(payload)
			if ev.Kind.IsTerminal() {
				d.done = true
			}
			return ev, nil

		default:
			d.leftover.WriteString(line)
			continue
		}
	}
}

// event builds an Event for a data payload, consuming the pending event
// name or falling back to the payload's own type field.
func (d *Decoder) event(payload string) Event {
	name := d.pending
	d.pending = ""
	if name == "" {
		name = inferName(payload)
	}
	return Event{
		Kind:    classifyName(name),
		Name:    name,
		Payload: []byte(payload),
	}
}

// salvage records the partial line a failed read cut short. A fragment
// truncated inside a data payload keeps its payload portion so
// brace-balancing recovery still sees it; fragments of framing-only lines
// carry no payload and are dropped.
func (d *Decoder) salvage(line string) {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case line == "":
	case strings.HasPrefix(line, "event:"):
	case strings.HasPrefix(line, "data:"):
		payload := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
		if payload != doneSentinel {
			d.leftover.WriteString(payload)
		}
	default:
		d.leftover.WriteString(line)
	}
}

// Leftover returns the accumulated content of lines that matched no SSE
// field, in arrival order. The finalizer uses it to recover a truncated
// error payload after the stream ends.
func (d *Decoder) Leftover() string {
	return d.leftover.String()
}
