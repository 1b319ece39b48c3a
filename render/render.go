// Package render reassembles streamed text deltas into terminal output.
//
// Rendering rules:
//   - Escaped control sequences in a delta are normalized exactly once.
//   - A delta starting with a hyphen gets a fresh line when the previous
//     emitted character was not a newline, so list items never continue a
//     paragraph line.
//   - A one-line model header precedes the first non-empty delta.
//   - Deltas are written immediately and in arrival order; the only
//     lookback is the single last emitted character.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// headerMarker is the visual marker prefixed to the model header line.
const headerMarker = "●"

// escapeReplacer rewrites literal two-character escape sequences delivered
// by the transport into real control characters. Carriage returns are
// dropped. Text that already contains real control characters passes
// through unchanged, so applying it again is a no-op.
var escapeReplacer = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "")

// NormalizeEscapes normalizes the escape sequences inside one delta.
func NormalizeEscapes(s string) string {
	return escapeReplacer.Replace(s)
}

// State is the mutable render state for one invocation, owned by its
// Renderer. Accumulated text always equals the reply bytes written to the
// terminal since the header, including inserted newlines; the epilogue
// (EndLine's closing newline, the elapsed line) is not reply text and
// stays out of it.
type State struct {
	text        strings.Builder
	headerShown bool
	last        byte
}

// Text returns the accumulated normalized text.
func (s *State) Text() string { return s.text.String() }

// HeaderShown reports whether the model header was printed, which happens
// exactly when any content was.
func (s *State) HeaderShown() bool { return s.headerShown }

// Renderer writes streamed reply text to a terminal as it arrives.
type Renderer struct {
	out    io.Writer
	model  string
	styles Styles
	state  State
}

// New creates a renderer writing to out, announcing model in the header.
func New(out io.Writer, model string, styles Styles) *Renderer {
	return &Renderer{out: out, model: model, styles: styles}
}

// HandleDelta renders the text carried by one delta event payload. A
// missing or empty delta field is a no-op.
func (r *Renderer) HandleDelta(payload []byte) {
	r.Write(gjson.GetBytes(payload, "delta").String())
}

// Write renders one raw delta fragment.
func (r *Renderer) Write(delta string) {
	normalized := NormalizeEscapes(delta)
	if normalized == "" {
		return
	}

	if !r.state.headerShown {
		r.printHeader()
	}

	if normalized[0] == '-' && r.state.last != '\n' {
		normalized = "\n" + normalized
	}

	fmt.Fprint(r.out, normalized)
	r.state.text.WriteString(normalized)
	r.state.last = normalized[len(normalized)-1]
}

// Text returns the accumulated reply text rendered so far.
func (r *Renderer) Text() string { return r.state.Text() }

// printHeader emits the model header that precedes any content.
func (r *Renderer) printHeader() {
	fmt.Fprintln(r.out, r.styles.Header.Render(headerMarker+" "+r.model))
	r.state.headerShown = true
	r.state.last = '\n'
}

// EndLine terminates the current output line if the stream left it open.
// The closing newline is epilogue formatting and is not appended to the
// accumulated reply text.
func (r *Renderer) EndLine() {
	if r.state.headerShown && r.state.last != '\n' {
		fmt.Fprintln(r.out)
		r.state.last = '\n'
	}
}

// PrintElapsed writes the elapsed-time line that closes a successful reply.
func (r *Renderer) PrintElapsed(elapsed time.Duration) {
	r.EndLine()
	fmt.Fprintln(r.out, r.styles.Meta.Render(fmt.Sprintf("(%.1fs)", elapsed.Seconds())))
}
