package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const DefaultBashTimeout = 30 * time.Second

type BashTool struct {
	Timeout time.Duration
}

func NewBashTool(timeout time.Duration) *BashTool {
	if timeout <= 0 {
		timeout = DefaultBashTimeout
	}
	return &BashTool{Timeout: timeout}
}

func (t *BashTool) Name() string { return "bash" }

func (t *BashTool) Description() string {
	return fmt.Sprintf("Runs a shell command and returns combined stdout and stderr (timeout: %s).", t.Timeout)
}

func (t *BashTool) ParameterSchema() string {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cmd": map[string]any{"type": "string", "description": "Shell command to run."},
		},
		"required": []string{"cmd"},
	}
	b, _ := json.MarshalIndent(s, "", "  ")
	return string(b)
}

func (t *BashTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	cmdText, _ := params["cmd"].(string)
	if strings.TrimSpace(cmdText) == "" {
		return "", fmt.Errorf("missing required param: cmd")
	}

	ctx, cancel := context.WithTimeout(ctx, t.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", cmdText)
	out, err := cmd.CombinedOutput()

	text := strings.TrimSpace(string(out))
	if ctx.Err() == context.DeadlineExceeded {
		if text != "" {
			text += "\n"
		}
		text += fmt.Sprintf("(timed out after %s)", t.Timeout)
		return text, nil
	}
	if err != nil {
		// Non-zero exit is an observation for the model, not a fault.
		if text != "" {
			text += "\n"
		}
		text += fmt.Sprintf("(exit: %v)", err)
	}
	if text == "" {
		return "(empty)", nil
	}
	return text, nil
}
