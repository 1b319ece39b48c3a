package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// lines joins SSE lines with newline terminators, matching what a response
// body delivers.
func lines(ls ...string) io.Reader {
	return strings.NewReader(strings.Join(ls, "\n") + "\n")
}

func TestDecoder_SingleDelta(t *testing.T) {
	dec := NewDecoder(lines(
		"event: response.output_text.delta",
		`data: {"delta":"Hello"}`,
	))

	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindTextDelta {
		t.Errorf("Kind = %v, want %v", ev.Kind, KindTextDelta)
	}
	if ev.Name != EventTextDelta {
		t.Errorf("Name = %q, want %q", ev.Name, EventTextDelta)
	}
	if got := string(ev.Payload); got != `{"delta":"Hello"}` {
		t.Errorf("Payload = %q, want %q", got, `{"delta":"Hello"}`)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next after end = %v, want io.EOF", err)
	}
}

func TestDecoder_SentinelStops(t *testing.T) {
	dec := NewDecoder(lines(
		"event: response.output_text.delta",
		`data: {"delta":"Hello"}`,
		"",
		"data: [DONE]",
		"event: response.output_text.delta",
		`data: {"delta":"never decoded"}`,
	))

	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindTextDelta {
		t.Errorf("Kind = %v, want %v", ev.Kind, KindTextDelta)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("Next at sentinel = %v, want io.EOF", err)
	}
	// Content after the sentinel is dead; the decoder stays stopped.
	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next after sentinel = %v, want io.EOF", err)
	}
}

func TestDecoder_Classification(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		kind     EventKind
		terminal bool
	}{
		{name: "text delta", event: "response.output_text.delta", kind: KindTextDelta, terminal: false},
		{name: "response error", event: "response.error", kind: KindError, terminal: true},
		{name: "bare error", event: "error", kind: KindError, terminal: true},
		{name: "done", event: "response.done", kind: KindDone, terminal: true},
		{name: "completed", event: "response.completed", kind: KindDone, terminal: true},
		{name: "unknown kind ignored", event: "response.output_item.added", kind: KindOther, terminal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(lines(
				"event: "+tt.event,
				`data: {}`,
			))

			ev, err := dec.Next()
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if ev.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", ev.Kind, tt.kind)
			}
			if ev.Name != tt.event {
				t.Errorf("Name = %q, want %q", ev.Name, tt.event)
			}
			if ev.Kind.IsTerminal() != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", ev.Kind.IsTerminal(), tt.terminal)
			}
		})
	}
}

func TestDecoder_StopsAfterTerminalEvent(t *testing.T) {
	dec := NewDecoder(lines(
		"event: response.error",
		`data: {"error":{"message":"rate limited"}}`,
		"event: response.output_text.delta",
		`data: {"delta":"never decoded"}`,
	))

	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindError {
		t.Fatalf("Kind = %v, want %v", ev.Kind, KindError)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next after terminal event = %v, want io.EOF", err)
	}
}

func TestDecoder_TypeInference(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		kind    EventKind
		evName  string
	}{
		{
			name:    "delta from type field",
			payload: `{"type":"response.output_text.delta","delta":"hi"}`,
			kind:    KindTextDelta,
			evName:  "response.output_text.delta",
		},
		{
			name:    "error from type field",
			payload: `{"type":"error","message":"boom"}`,
			kind:    KindError,
			evName:  "error",
		},
		{
			name:    "completed from type field",
			payload: `{"type":"response.completed","response":{}}`,
			kind:    KindDone,
			evName:  "response.completed",
		},
		{
			name:    "no type field",
			payload: `{"delta":"hi"}`,
			kind:    KindOther,
			evName:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(lines("data: " + tt.payload))

			ev, err := dec.Next()
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if ev.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", ev.Kind, tt.kind)
			}
			if ev.Name != tt.evName {
				t.Errorf("Name = %q, want %q", ev.Name, tt.evName)
			}
		})
	}
}

func TestDecoder_EventNameConsumedOnce(t *testing.T) {
	dec := NewDecoder(lines(
		"event: response.output_text.delta",
		`data: {"delta":"a"}`,
		`data: {"type":"response.completed"}`,
	))

	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindTextDelta {
		t.Errorf("first Kind = %v, want %v", ev.Kind, KindTextDelta)
	}

	// The event name was consumed by the first data line; the second falls
	// back to payload type inference.
	ev, err = dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindDone {
		t.Errorf("second Kind = %v, want %v", ev.Kind, KindDone)
	}
}

func TestDecoder_BlankLinesAndCarriageReturns(t *testing.T) {
	dec := NewDecoder(strings.NewReader(
		"event: response.output_text.delta\r\n" +
			"\r\n" +
			"data: {\"delta\":\"hi\"}\r\n" +
			"\r\n" +
			"data: [DONE]\r\n",
	))

	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindTextDelta {
		t.Errorf("Kind = %v, want %v", ev.Kind, KindTextDelta)
	}
	if got := string(ev.Payload); got != `{"delta":"hi"}` {
		t.Errorf("Payload = %q, want %q", got, `{"delta":"hi"}`)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next at sentinel = %v, want io.EOF", err)
	}
}

func TestDecoder_MalformedLinesAccumulate(t *testing.T) {
	dec := NewDecoder(lines(
		`{"error":{"message":"oo`,
		`ps"`,
		"event: response.output_text.delta",
		`data: {"delta":"still works"}`,
	))

	// Malformed lines are swallowed, not surfaced as events or errors.
	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindTextDelta {
		t.Errorf("Kind = %v, want %v", ev.Kind, KindTextDelta)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Fatalf("Next after end = %v, want io.EOF", err)
	}

	want := `{"error":{"message":"oops"`
	if got := dec.Leftover(); got != want {
		t.Errorf("Leftover() = %q, want %q", got, want)
	}
}

func TestDecoder_FinalLineWithoutNewline(t *testing.T) {
	dec := NewDecoder(strings.NewReader(
		"event: response.output_text.delta\ndata: {\"delta\":\"tail\"}",
	))

	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got := string(ev.Payload); got != `{"delta":"tail"}` {
		t.Errorf("Payload = %q, want %q", got, `{"delta":"tail"}`)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next after end = %v, want io.EOF", err)
	}
}

// failAfterReader yields its content, then a non-EOF error.
type failAfterReader struct {
	r   io.Reader
	err error
}

func (f *failAfterReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err == io.EOF {
		return n, f.err
	}
	return n, err
}

func TestDecoder_ReadErrorSurfacedOnce(t *testing.T) {
	cut := errors.New("connection reset")
	dec := NewDecoder(&failAfterReader{
		r:   strings.NewReader("event: response.output_text.delta\ndata: {\"delta\":\"partial\"}\n"),
		err: cut,
	})

	ev, err := dec.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Kind != KindTextDelta {
		t.Fatalf("Kind = %v, want %v", ev.Kind, KindTextDelta)
	}

	_, err = dec.Next()
	if !errors.Is(err, cut) {
		t.Fatalf("Next = %v, want wrapped %v", err, cut)
	}

	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next after read error = %v, want io.EOF", err)
	}
}

func TestDecoder_PartialLineKeptOnReadError(t *testing.T) {
	// A prematurely closed body hands bufio the fragment together with the
	// error; the fragment must survive into the recovery buffer.
	dec := NewDecoder(&failAfterReader{
		r:   strings.NewReader(`{"error":{"message":"oops"`),
		err: io.ErrUnexpectedEOF,
	})

	_, err := dec.Next()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Next = %v, want wrapped %v", err, io.ErrUnexpectedEOF)
	}

	want := `{"error":{"message":"oops"`
	if got := dec.Leftover(); got != want {
		t.Errorf("Leftover() = %q, want %q", got, want)
	}
}

func TestDecoder_PartialDataLineKeptOnReadError(t *testing.T) {
	dec := NewDecoder(&failAfterReader{
		r:   strings.NewReader("event: response.error\ndata: {\"error\":{\"message\":\"oops\""),
		err: io.ErrUnexpectedEOF,
	})

	_, err := dec.Next()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Next = %v, want wrapped %v", err, io.ErrUnexpectedEOF)
	}

	// The data prefix is framing, not payload; only the payload portion
	// feeds recovery.
	want := `{"error":{"message":"oops"`
	if got := dec.Leftover(); got != want {
		t.Errorf("Leftover() = %q, want %q", got, want)
	}
}

func TestDecoder_EmptyStream(t *testing.T) {
	dec := NewDecoder(strings.NewReader(""))
	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next on empty stream = %v, want io.EOF", err)
	}
	if got := dec.Leftover(); got != "" {
		t.Errorf("Leftover() = %q, want empty", got)
	}
}
