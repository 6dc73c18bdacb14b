package cache

import (
	"context"
	"testing"
	"time"
)

func TestNoOpCache(t *testing.T) {
	cache := NewNoOpCache()
	ctx := context.Background()

	summary, ok, err := cache.GetSummary(ctx, "test-key")
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if ok || summary != "" {
		t.Errorf("Expected cache miss, got %q", summary)
	}

	if err := cache.SetSummary(ctx, "test-key", "a summary", time.Hour); err != nil {
		t.Errorf("Expected no error on SetSummary, got %v", err)
	}

	// Still a miss: nothing is stored.
	if _, ok, _ := cache.GetSummary(ctx, "test-key"); ok {
		t.Errorf("Expected miss after SetSummary on no-op cache")
	}

	if err := cache.Close(); err != nil {
		t.Errorf("Expected no error on Close, got %v", err)
	}
}

func TestKey(t *testing.T) {
	base := Key("gpt-4o-mini", "brief", "some chunk")

	if len(base) != 64 {
		t.Fatalf("expected hex sha256, got %q", base)
	}
	if base != Key("gpt-4o-mini", "brief", "some chunk") {
		t.Errorf("Key is not deterministic")
	}

	variants := []string{
		Key("gpt-4o-mini", "detailed", "some chunk"),
		Key("claude-3-5-haiku-latest", "brief", "some chunk"),
		Key("gpt-4o-mini", "brief", "some chunk!"),
		// field boundaries are not ambiguous
		Key("gpt-4o-minib", "rief", "some chunk"),
	}
	for _, v := range variants {
		if v == base {
			t.Errorf("expected distinct key, got collision %q", v)
		}
	}
}
