package retry

import "time"

// maxBackoffShift bounds the doubling so large redelivery counts cannot
// overflow the duration.
const maxBackoffShift = 10

// ExponentialBackoff returns base * 2^attempt, with the exponent capped at
// maxBackoffShift. Negative attempts are treated as zero.
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxBackoffShift {
		attempt = maxBackoffShift
	}
	return base << attempt
}
