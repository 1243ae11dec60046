// Package assistant issues structured requests to a generative text
// model: one shared invoker handles caching, bounded retry, and strict
// JSON parsing; typed variants build the prompts for each review stage.
package assistant

import (
	"context"
	"log/slog"

	"PaperReview/internal/metrics"
	"PaperReview/internal/ports"
)

// Invoker is the uniform entry point for all assistant calls. The
// cache is injected, never ambient: swap in NopCache to disable it.
type Invoker struct {
	client          ports.ModelClient
	cache           ports.PromptCache
	policy          RetryPolicy
	maxOutputTokens int
	logger          *slog.Logger
}

// NewInvoker wires the model client with a shared cache and retry
// policy.
func NewInvoker(client ports.ModelClient, cache ports.PromptCache, policy RetryPolicy, maxOutputTokens int, logger *slog.Logger) *Invoker {
	if cache == nil {
		cache = NopCache{}
	}
	if policy.MaxAttempts < 1 {
		policy = DefaultRetryPolicy()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		client:          client,
		cache:           cache,
		policy:          policy,
		maxOutputTokens: maxOutputTokens,
		logger:          logger,
	}
}

// Invoke returns the parsed JSON response for one instruction/prompt
// pair. A cache hit on the exact instruction and prompt text skips the
// external call entirely; the instruction is part of the key because
// assistants share prompt templates. On a miss the model is called up
// to the policy's attempt budget; call failures and unparseable
// payloads are both retried. Exhausting the budget yields an
// InvocationError with the last cause.
func (inv *Invoker) Invoke(ctx context.Context, cfg Config, instruction, prompt string) (map[string]any, error) {
	key := instruction + "\x00" + prompt
	if parsed, ok := inv.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		inv.logger.Debug("prompt cache hit", "assistant", cfg.Name)
		return parsed, nil
	}
	metrics.CacheMisses.Inc()

	var lastErr error
	for attempt := 1; attempt <= inv.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			metrics.ModelRetries.Inc()
			if err := sleep(ctx, inv.policy.Backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		metrics.ModelCalls.Inc()
		raw, err := inv.client.Submit(ctx, cfg.Model, instruction, prompt, inv.maxOutputTokens)
		if err != nil {
			lastErr = err
			inv.logger.Warn("model call failed",
				"assistant", cfg.Name, "attempt", attempt, "error", err)
			continue
		}

		parsed, err := parseResponse(raw)
		if err != nil {
			lastErr = err
			inv.logger.Warn("model response unparseable",
				"assistant", cfg.Name, "attempt", attempt, "error", err)
			continue
		}

		inv.cache.Put(key, parsed)
		return parsed, nil
	}

	return nil, &InvocationError{
		Assistant: cfg.Name,
		Model:     cfg.Model,
		Attempts:  inv.policy.MaxAttempts,
		Err:       lastErr,
	}
}
