package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/kenzoyan/kalacode/agent"
	"github.com/kenzoyan/kalacode/internal/clifmt"
	"github.com/kenzoyan/kalacode/internal/pathutil"
	"github.com/kenzoyan/kalacode/memory"
	"github.com/kenzoyan/kalacode/providers/openai"
)

func clientFromViper() *openai.Client {
	return openai.New(openai.Config{
		Provider:       strings.TrimSpace(viper.GetString("llm.provider")),
		Endpoint:       strings.TrimSpace(viper.GetString("llm.endpoint")),
		APIKey:         strings.TrimSpace(viper.GetString("llm.api_key")),
		Model:          strings.TrimSpace(viper.GetString("llm.model")),
		RequestTimeout: viper.GetDuration("llm.request_timeout"),
	})
}

func windowFromViper() *memory.Window {
	if !viper.GetBool("memory.short_term.enabled") {
		// Disabled means no eviction: ceilings high enough to never trip.
		return memory.NewWindow(math.MaxInt, math.MaxInt)
	}
	return memory.NewWindow(
		viper.GetInt("memory.short_term.max_messages"),
		viper.GetInt("memory.short_term.max_tokens"),
	)
}

// storeFromViper returns nil when long-term memory is disabled.
func storeFromViper() *memory.LongTermStore {
	if !viper.GetBool("memory.long_term.enabled") {
		return nil
	}
	return memory.NewLongTermStore(memory.LongTermConfig{
		FilePath:        pathutil.ExpandHomePath(viper.GetString("memory.long_term.file_path")),
		MaxSummaryChars: viper.GetInt("memory.long_term.max_summary_chars"),
		MaxEntries:      viper.GetInt("memory.long_term.max_entries"),
		DedupThreshold:  viper.GetFloat64("memory.long_term.dedup_threshold"),
	})
}

func engineFromViper(log *slog.Logger) *agent.Engine {
	cfg := agent.Config{
		Model:        strings.TrimSpace(viper.GetString("llm.model")),
		Temperature:  viper.GetFloat64("llm.temperature"),
		MaxTokens:    viper.GetInt("llm.max_completion_tokens"),
		Limits:       agent.Limits{MaxIterations: viper.GetInt("agent.max_iterations")},
		Streaming:    viper.GetBool("llm.streaming"),
		SummaryChars: viper.GetInt("memory.long_term.max_summary_chars"),
		Hooks: agent.Hooks{
			OnText: func(delta string) {
				fmt.Print(delta)
			},
			OnToolCall: func(name, arguments string) {
				fmt.Println(clifmt.ToolCallLine(name, arguments))
			},
			OnToolResult: func(name, result string) {
				fmt.Println(clifmt.ToolResultLine(name, result))
			},
		},
	}
	return agent.New(clientFromViper(), registryFromViper(), windowFromViper(), storeFromViper(), cfg, log)
}
