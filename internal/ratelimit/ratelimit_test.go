package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-summarizer/internal/config"
)

func TestBurstServedImmediately(t *testing.T) {
	for _, checkEvery := range []time.Duration{0, 5 * time.Millisecond} {
		l := New(config.RateConfig{RequestsPerSecond: 0.001, CheckInterval: checkEvery, Burst: 3})

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, l.Wait(context.Background()))
		}
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	}
}

func TestDrainedBucketBlocksUntilCancel(t *testing.T) {
	tests := []struct {
		name       string
		checkEvery time.Duration
	}{
		{"reservation", 0},
		{"polling", 5 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(config.RateConfig{RequestsPerSecond: 0.001, CheckInterval: tt.checkEvery, Burst: 1})
			require.NoError(t, l.Wait(context.Background()))

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()

			assert.Error(t, l.Wait(ctx))
		})
	}
}

func TestBucketRefills(t *testing.T) {
	tests := []struct {
		name       string
		checkEvery time.Duration
	}{
		{"reservation", 0},
		{"polling", time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(config.RateConfig{RequestsPerSecond: 100, CheckInterval: tt.checkEvery, Burst: 1})
			require.NoError(t, l.Wait(context.Background()))

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			require.NoError(t, l.Wait(ctx))
		})
	}
}

func TestUnlimited(t *testing.T) {
	l := Unlimited()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
}
