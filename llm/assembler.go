package llm

import (
	"fmt"
	"strings"
)

// MalformedStreamError reports a tool-call delta that cannot be attributed
// to any invocation: it carried no positional index while no invocation was
// open. The stream cannot be trusted past this point.
type MalformedStreamError struct {
	Reason string
}

func (e *MalformedStreamError) Error() string {
	return fmt.Sprintf("malformed stream: %s", e.Reason)
}

// Assembler folds an ordered sequence of stream fragments into the
// accumulated assistant text and the completed tool calls. It is
// single-pass and trusts fragment order as delivered by the transport:
// out-of-order or duplicated fragments are not corrected.
type Assembler struct {
	text strings.Builder
	done []ToolCall

	open      ToolCall
	openIndex int
	hasOpen   bool

	err error
}

// NewAssembler returns an empty assembler ready to consume a stream.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Feed consumes one fragment. The first error is sticky: once a fragment
// cannot be attributed, later fragments are ignored and Finish reports it.
func (a *Assembler) Feed(f Fragment) error {
	if a.err != nil {
		return a.err
	}

	if f.TextDelta != "" {
		a.text.WriteString(f.TextDelta)
	}

	for _, delta := range f.ToolCalls {
		if err := a.feedToolCall(delta); err != nil {
			a.err = err
			return err
		}
	}
	return nil
}

func (a *Assembler) feedToolCall(delta ToolCallDelta) error {
	switch {
	case delta.Index == nil && !a.hasOpen:
		return &MalformedStreamError{Reason: "tool-call delta without index and no open invocation"}
	case delta.Index != nil && (!a.hasOpen || *delta.Index != a.openIndex):
		// A new index closes the invocation being built.
		if a.hasOpen {
			a.done = append(a.done, a.open)
		}
		a.open = ToolCall{ID: delta.ID, Type: delta.Type}
		a.openIndex = *delta.Index
		a.hasOpen = true
	}

	// Indexless deltas with an open invocation, and repeated deltas for the
	// open index, both continue the current invocation.
	if a.open.ID == "" && delta.ID != "" {
		a.open.ID = delta.ID
	}
	if a.open.Type == "" && delta.Type != "" {
		a.open.Type = delta.Type
	}
	a.open.Function.Name += delta.NameDelta
	a.open.Function.Arguments += delta.ArgumentsDelta
	return nil
}

// Text returns the text accumulated so far. Safe to call mid-stream for
// incremental rendering.
func (a *Assembler) Text() string {
	return a.text.String()
}

// Finish closes any still-open invocation and returns the final text and
// the completed tool calls in arrival order.
func (a *Assembler) Finish() (string, []ToolCall, error) {
	if a.err != nil {
		return "", nil, a.err
	}
	if a.hasOpen {
		a.done = append(a.done, a.open)
		a.hasOpen = false
	}
	for i := range a.done {
		if a.done[i].Type == "" {
			a.done[i].Type = "function"
		}
	}
	return a.text.String(), a.done, nil
}
