// Package llm is the invocation adapter between the analysis pipeline and
// the text-generation API: client-side throttling, bounded retry with
// exponential backoff, and extraction of structured JSON from untrusted
// free-text model output.
package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/callqa-cli/internal/resilience"
	"github.com/sells-group/callqa-cli/pkg/anthropic"
)

// Request is one prompt to send to the model. System text is attached as
// a cached system block when present.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int64
}

// Result carries the parsed JSON payload of a successful invocation along
// with the raw text and attempt count for diagnostics.
type Result struct {
	JSON     json.RawMessage
	Raw      string
	Attempts int
	Usage    anthropic.TokenUsage
}

// Decode unmarshals the extracted JSON payload into v.
func (r *Result) Decode(v any) error {
	if err := json.Unmarshal(r.JSON, v); err != nil {
		return eris.Wrap(err, "llm: decode payload")
	}
	return nil
}

// Invoker is the pipeline's view of the model: one prompt in, one parsed
// JSON object out. Implementations must be safe for sequential use within
// a single batch; they are not required to support concurrent batches.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (*Result, error)
}

// Options configures an Adapter.
type Options struct {
	Model          string
	MaxTokens      int64
	Temperature    float64
	RequestTimeout time.Duration
	MinInterval    time.Duration
	PostDelay      time.Duration
	Retry          resilience.RetryConfig
	Clock          Clock
}

// Adapter implements Invoker over an anthropic.Client with throttling and
// retry. One Adapter serves one batch; its throttle state must not be
// shared across concurrently running batches.
type Adapter struct {
	client   anthropic.Client
	opts     Options
	throttle *Throttle
}

// NewAdapter wires a throttled, retried adapter around the given client.
func NewAdapter(client anthropic.Client, opts Options) *Adapter {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 4096
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	return &Adapter{
		client:   client,
		opts:     opts,
		throttle: NewThrottle(opts.MinInterval, opts.PostDelay, opts.Clock),
	}
}

// Invoke sends the prompt, retrying transient failures (timeouts, 429s,
// malformed output) with exponential backoff. Authentication failures are
// fatal and returned immediately. On retry exhaustion the last failure is
// returned as a typed error.
func (a *Adapter) Invoke(ctx context.Context, req Request) (*Result, error) {
	attempts := 0

	retry := a.opts.Retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger("anthropic", "invoke")
	}

	res, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*Result, error) {
		attempts++
		return a.invokeOnce(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	res.Attempts = attempts
	return res, nil
}

func (a *Adapter) invokeOnce(ctx context.Context, req Request) (*Result, error) {
	if err := a.throttle.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "llm: throttle wait")
	}

	callCtx, cancel := context.WithTimeout(ctx, a.opts.RequestTimeout)
	defer cancel()

	msgReq := anthropic.MessageRequest{
		Model:     a.opts.Model,
		MaxTokens: a.opts.MaxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: req.Prompt},
		},
	}
	if a.opts.Temperature > 0 {
		msgReq.Temperature = &a.opts.Temperature
	}
	if req.System != "" {
		msgReq.System = anthropic.BuildCachedSystemBlocks(req.System)
	}

	resp, err := a.client.CreateMessage(callCtx, msgReq)
	if err != nil {
		return nil, err
	}

	text := extractText(resp)
	payload, err := ExtractJSON(text)
	if err != nil {
		zap.L().Warn("llm: malformed model output",
			zap.String("model", a.opts.Model),
			zap.Int("output_len", len(text)),
		)
		return nil, err
	}

	return &Result{
		JSON:  payload,
		Raw:   text,
		Usage: resp.Usage,
	}, nil
}

// extractText concatenates all text content blocks from a message response.
func extractText(resp *anthropic.MessageResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, block := range resp.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}
