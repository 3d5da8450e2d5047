package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"worklog/internal/cache"
	"worklog/internal/core"
)

// Service coordinates summary generation for week windows. Concurrent
// requests for the same window collapse into one upstream call, and
// successful summaries are cached per window so a repeat view does not
// trigger another call.
type Service struct {
	gen   Generator
	cache *cache.LRUCache[string]
	group singleflight.Group
}

// NewService wraps a generator. gen may be nil when no credential is
// configured; every request then fails with ErrNotConfigured.
func NewService(gen Generator, ttl time.Duration) *Service {
	return &Service{
		gen:   gen,
		cache: cache.NewLRUCache[string](32, ttl),
	}
}

// Enabled reports whether a generator is configured.
func (s *Service) Enabled() bool {
	return s.gen != nil
}

// Cache exposes the window cache for lifecycle management.
func (s *Service) Cache() *cache.LRUCache[string] {
	return s.cache
}

// WeeklySummary produces the narrative for the given window and items.
// The result, once obtained, is cached under the window; errors are not.
func (s *Service) WeeklySummary(ctx context.Context, window core.Window, items []core.WorkItem, categories []core.Category) (string, error) {
	if s.gen == nil {
		return "", ErrNotConfigured
	}
	if len(items) == 0 {
		return "", ErrNoSummary
	}

	key := fmt.Sprintf("week:%d:%d", window.Start, window.End)
	if text, ok := s.cache.Get(key); ok {
		return text, nil
	}

	text, err, shared := s.group.Do(key, func() (any, error) {
		prompt, err := BuildPrompt(items, categories)
		if err != nil {
			return "", err
		}

		start := time.Now()
		out, err := s.gen.Generate(ctx, prompt)
		if err != nil {
			slog.ErrorContext(ctx, "Summary generation failed",
				"window_start", window.Start,
				"window_end", window.End,
				"error", err)
			return "", err
		}

		slog.InfoContext(ctx, "Summary generated",
			"window_start", window.Start,
			"window_end", window.End,
			"items", len(items),
			"duration_ms", time.Since(start).Milliseconds())

		s.cache.Set(key, out)
		return out, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		slog.DebugContext(ctx, "Summary request deduplicated", "key", key)
	}
	return text.(string), nil
}
