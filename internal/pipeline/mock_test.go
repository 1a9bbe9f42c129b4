package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/sells-group/callqa-cli/internal/llm"
)

// mockInvoker routes prompts to per-stage handlers based on the prompt's
// instruction text and records every call for assertion.
type mockInvoker struct {
	mu    sync.Mutex
	calls []llm.Request

	onExtract   func(req llm.Request) (*llm.Result, error)
	onSynthesis func(req llm.Request) (*llm.Result, error)
	onAssign    func(req llm.Request) (*llm.Result, error)
	onRootCause func(req llm.Request) (*llm.Result, error)
}

func (m *mockInvoker) Invoke(_ context.Context, req llm.Request) (*llm.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	switch {
	case strings.Contains(req.Prompt, "Identify every deviation"):
		return m.onExtract(req)
	case strings.Contains(req.Prompt, "Group them into at most"):
		return m.onSynthesis(req)
	case strings.Contains(req.Prompt, "Assign each finding"):
		return m.onAssign(req)
	case strings.Contains(req.Prompt, "root cause"):
		return m.onRootCause(req)
	default:
		panic("mockInvoker: unrecognized prompt")
	}
}

func (m *mockInvoker) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockInvoker) callsMatching(substr string) []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []llm.Request
	for _, c := range m.calls {
		if strings.Contains(c.Prompt, substr) {
			out = append(out, c)
		}
	}
	return out
}

func jsonResult(v any) (*llm.Result, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &llm.Result{JSON: data, Raw: string(data), Attempts: 1}, nil
}
