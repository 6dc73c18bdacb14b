package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoffDoubles(t *testing.T) {
	base := 200 * time.Millisecond

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{-1, 200 * time.Millisecond},
		{0, 200 * time.Millisecond},
		{1, 400 * time.Millisecond},
		{2, 800 * time.Millisecond},
		{3, 1600 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := ExponentialBackoff(tt.attempt, base); got != tt.expected {
			t.Errorf("attempt %d: got %v, want %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestExponentialBackoffIsCapped(t *testing.T) {
	capped := ExponentialBackoff(maxBackoffShift, time.Second)

	for _, attempt := range []int{maxBackoffShift + 1, 40, 1000} {
		got := ExponentialBackoff(attempt, time.Second)
		if got != capped {
			t.Errorf("attempt %d: got %v, want cap %v", attempt, got, capped)
		}
		if got <= 0 {
			t.Errorf("attempt %d: overflowed to %v", attempt, got)
		}
	}
	if capped != 1024*time.Second {
		t.Errorf("cap: got %v, want %v", capped, 1024*time.Second)
	}
}
