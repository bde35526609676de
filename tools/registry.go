package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Tool is a single capability the agent can invoke by name.
// ParameterSchema returns a JSON Schema object describing the accepted
// parameters.
type Tool interface {
	Name() string
	Description() string
	ParameterSchema() string
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// Registry holds the tools available to a session, keyed by name.
// Registration order is preserved so schema listings are deterministic.
type Registry struct {
	byName map[string]Tool
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Tool)}
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *Registry) Register(tool Tool) {
	name := tool.Name()
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = tool
}

func (r *Registry) Get(name string) (Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

func (r *Registry) Len() int { return len(r.order) }

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Execute dispatches to a tool by name. Failures are returned as
// "error: ..." result strings, never as raised faults: the model sees the
// failure as an observation and can adjust its next action.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) string {
	tool, ok := r.Get(name)
	if !ok {
		return fmt.Sprintf("error: tool %q not found", name)
	}
	out, err := tool.Execute(ctx, params)
	if err != nil {
		return "error: " + err.Error()
	}
	return out
}

// OpenAISchemas renders the registered tools as OpenAI function-calling
// schema objects.
func (r *Registry) OpenAISchemas() []map[string]any {
	out := make([]map[string]any, 0, len(r.order))
	for _, tool := range r.List() {
		var params map[string]any
		if err := json.Unmarshal([]byte(tool.ParameterSchema()), &params); err != nil || len(params) == 0 {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		out = append(out, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        tool.Name(),
				"description": strings.TrimSpace(tool.Description()),
				"parameters":  params,
			},
		})
	}
	return out
}
