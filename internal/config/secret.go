package config

import (
	"log/slog"
	"strings"
)

// Secret is a credential that never prints its value.
type Secret string

const redacted = "[REDACTED]"

// UnmarshalText lets env parse secrets from plain variables.
func (s *Secret) UnmarshalText(text []byte) error {
	*s = Secret(text)
	return nil
}

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

// LogValue keeps secrets out of structured logs.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Reveal returns the raw credential for handing to an SDK.
func (s Secret) Reveal() string {
	return string(s)
}

func (s Secret) Empty() bool {
	return strings.TrimSpace(string(s)) == ""
}
