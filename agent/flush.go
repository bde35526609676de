package agent

import (
	"context"

	"github.com/kenzoyan/kalacode/llm"
	"github.com/kenzoyan/kalacode/memory"
)

const extractionInstruction = `You distill conversations into durable notes.
Read the transcript and extract only facts worth remembering across sessions:
user preferences, decisions made, and stable facts about the user or their
projects. Skip transient detail, questions, errors and code. Reply with a
markdown bullet list, one "- " line per item, and nothing else. Reply with an
empty message when nothing is worth keeping.`

// Flush extracts durable items from the buffered turns and persists
// them. The buffer is cleared no matter how extraction or persistence
// goes; only persistence faults are returned.
func (e *Engine) Flush(ctx context.Context) error {
	if e.buffer.Empty() {
		return nil
	}
	turns := e.buffer.Snapshot()
	transcript := e.buffer.Transcript()
	e.buffer.Clear()

	if e.longTerm == nil {
		return nil
	}

	// One extraction call covers the whole buffered transcript. An empty
	// reply means nothing durable came up; only a failed call falls back
	// to the local heuristic.
	result, err := e.client.Chat(ctx, llm.Request{
		Model: e.cfg.Model,
		Messages: []llm.Message{
			{Role: "system", Content: extractionInstruction},
			{Role: "user", Content: transcript},
		},
	})
	if err != nil {
		e.log.Warn("memory_extraction_failed", "error", err.Error())
		return e.flushHeuristic(turns)
	}
	items := memory.ParseBulletItems(result.Content)
	if len(items) == 0 {
		return nil
	}
	e.log.Debug("memory_flush", "items", len(items))
	return e.longTerm.StoreItems(items)
}

// flushHeuristic extracts and stores durable items turn by turn, so
// each turn's survivors land in their own dated block.
func (e *Engine) flushHeuristic(turns []Turn) error {
	for _, t := range turns {
		items := memory.ExtractDurableItems(t.User, t.Assistant)
		if len(items) == 0 {
			continue
		}
		if err := e.longTerm.StoreItems(items); err != nil {
			return err
		}
	}
	return nil
}
