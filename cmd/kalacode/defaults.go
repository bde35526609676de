package main

import (
	"time"

	"github.com/spf13/viper"
)

func initViperDefaults() {
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.endpoint", "https://api.openai.com")
	viper.SetDefault("llm.model", "gpt-4o")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.request_timeout", 90*time.Second)
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.max_completion_tokens", 4096)
	viper.SetDefault("llm.streaming", true)

	viper.SetDefault("agent.max_iterations", 10)

	viper.SetDefault("file_state_dir", "~/.kalacode")

	viper.SetDefault("memory.short_term.enabled", true)
	viper.SetDefault("memory.short_term.max_messages", 20)
	viper.SetDefault("memory.short_term.max_tokens", 100_000)

	viper.SetDefault("memory.long_term.enabled", true)
	viper.SetDefault("memory.long_term.file_path", "~/.kalacode/memory.md")
	viper.SetDefault("memory.long_term.max_summary_chars", 2000)
	viper.SetDefault("memory.long_term.max_entries", 500)
	viper.SetDefault("memory.long_term.dedup_threshold", 0.82)

	viper.SetDefault("transcripts.dir_name", "transcripts")
}
