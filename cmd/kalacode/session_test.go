package main

import (
	"fmt"
	"testing"

	"github.com/spf13/viper"

	"github.com/kenzoyan/kalacode/llm"
)

func TestWindowFromViperDisabledNeverEvicts(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	initViperDefaults()
	viper.Set("memory.short_term.enabled", false)

	w := windowFromViper()
	for i := 0; i < 100; i++ {
		w.Append(llm.Message{Role: "user", Content: fmt.Sprintf("message %d", i)})
	}
	if got := w.Stats().Count; got != 100 {
		t.Fatalf("disabled window evicted: %d messages retained, want 100", got)
	}
}

func TestWindowFromViperEnabledUsesConfiguredBounds(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	initViperDefaults()
	viper.Set("memory.short_term.max_messages", 3)

	w := windowFromViper()
	for i := 0; i < 10; i++ {
		w.Append(llm.Message{Role: "user", Content: fmt.Sprintf("message %d", i)})
	}
	if got := w.Stats().Count; got != 3 {
		t.Fatalf("retained %d messages, want 3", got)
	}
}
