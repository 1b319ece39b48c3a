// Package outcome decides the final result of one streamed exchange and
// persists the fixed-location inspection artifacts.
package outcome

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Status classifies the terminal result of one invocation.
type Status string

const (
	// StatusSuccess means the stream produced reply text.
	StatusSuccess Status = "success"
	// StatusEmpty means the stream completed without any text delta.
	StatusEmpty Status = "empty_response"
	// StatusError means the server reported an error, or the stream left
	// recoverable error bytes behind.
	StatusError Status = "error"
)

// Outcome is the immutable terminal result of one invocation.
type Outcome struct {
	Status Status
	// Text is the full reply text. Set on success.
	Text string
	// Message is the reported error message. Set on error.
	Message string
	// Payload is the raw payload backing a non-success outcome: the error
	// payload on error, the completion payload on an empty response.
	Payload string
	// Elapsed is the wall-clock duration of the exchange.
	Elapsed time.Duration
}

// StreamResult is what the decode loop observed, input to Determine.
type StreamResult struct {
	// Text is the accumulated rendered reply text.
	Text string
	// SawError and ErrorPayload record a decoded error event.
	SawError     bool
	ErrorPayload string
	// SawDone and DonePayload record a decoded done/completed event.
	SawDone     bool
	DonePayload string
	// Leftover is the decoder's unparsed-line buffer.
	Leftover string
	// Elapsed is wall-clock time from request start to stream stop.
	Elapsed time.Duration
}

// Determine applies the outcome decision table:
//
//   - error event decoded, or recovered error text non-empty -> error
//   - otherwise, empty accumulated text -> empty response
//   - otherwise -> success
//
// Leftover bytes count as an error only when the stream ended without an
// explicit terminal event; after a clean done they are stale noise.
func Determine(res StreamResult) Outcome {
	var errPayload string
	switch {
	case res.SawError:
		errPayload = res.ErrorPayload
		if errPayload == "" {
			errPayload = res.Leftover
		}
	case !res.SawDone && res.Leftover != "":
		errPayload = RecoverPayload(res.Leftover)
	}

	if res.SawError || errPayload != "" {
		return Outcome{
			Status:  StatusError,
			Message: errorMessage(errPayload),
			Payload: errPayload,
			Elapsed: res.Elapsed,
		}
	}

	if res.Text == "" {
		return Outcome{
			Status:  StatusEmpty,
			Payload: res.DonePayload,
			Elapsed: res.Elapsed,
		}
	}

	return Outcome{
		Status:  StatusSuccess,
		Text:    res.Text,
		Elapsed: res.Elapsed,
	}
}

// RecoverPayload repairs a truncated payload by appending the closing
// braces the cut stream owed. Counting is purely textual, so truncation
// inside a string literal defeats it; this is a diagnostic aid, not a
// parser.
func RecoverPayload(buf string) string {
	opens := strings.Count(buf, "{")
	closes := strings.Count(buf, "}")
	if opens > closes {
		return buf + strings.Repeat("}", opens-closes)
	}
	return buf
}

// errorMessage extracts a human-readable message from an error payload:
// nested error.message first, then a top-level message, else the payload
// itself so nothing is dropped silently.
func errorMessage(payload string) string {
	if msg := gjson.Get(payload, "error.message"); msg.Exists() {
		return msg.String()
	}
	if msg := gjson.Get(payload, "message"); msg.Exists() {
		return msg.String()
	}
	if payload == "" {
		return "stream error"
	}
	return payload
}
