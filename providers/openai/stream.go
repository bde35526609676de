package openai

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kenzoyan/kalacode/llm"
)

// sseStream decodes server-sent events from a chat-completions stream
// into llm.Fragments. Recv returns io.EOF after the [DONE] sentinel.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

func newSSEStream(body io.ReadCloser) *sseStream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &sseStream{body: body, scanner: sc}
}

func (s *sseStream) Recv() (llm.Fragment, error) {
	if s.done {
		return llm.Fragment{}, io.EOF
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			s.done = true
			return llm.Fragment{}, io.EOF
		}
		var chunk chunkResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return llm.Fragment{}, fmt.Errorf("decode stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		frag := fragmentFromChunk(chunk)
		if frag.TextDelta == "" && len(frag.ToolCalls) == 0 {
			continue
		}
		return frag, nil
	}
	if err := s.scanner.Err(); err != nil {
		return llm.Fragment{}, err
	}
	s.done = true
	return llm.Fragment{}, io.EOF
}

func (s *sseStream) Close() error {
	return s.body.Close()
}

func fragmentFromChunk(chunk chunkResponse) llm.Fragment {
	delta := chunk.Choices[0].Delta
	frag := llm.Fragment{TextDelta: delta.Content}
	for _, call := range delta.ToolCalls {
		frag.ToolCalls = append(frag.ToolCalls, llm.ToolCallDelta{
			Index:          call.Index,
			ID:             call.ID,
			Type:           call.Type,
			NameDelta:      call.Function.Name,
			ArgumentsDelta: call.Function.Arguments,
		})
	}
	return frag
}
