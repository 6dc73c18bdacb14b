package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Provider enumerates the supported model vendors.
type Provider int

const (
	ProviderOpenAI Provider = iota + 1
	ProviderAnthropic
)

func (p Provider) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	default:
		return fmt.Sprintf("provider(%d)", int(p))
	}
}

// ErrInvalidProvider matches every InvalidProviderError.
var ErrInvalidProvider = errors.New("invalid model provider")

// InvalidProviderError reports a provider identifier that matches no variant.
type InvalidProviderError struct {
	Name string
}

func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("invalid model provider %q (valid options: openai, anthropic)", e.Name)
}

func (e *InvalidProviderError) Is(target error) bool {
	return target == ErrInvalidProvider
}

// ParseProvider maps a configuration string to a Provider.
func ParseProvider(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openai":
		return ProviderOpenAI, nil
	case "anthropic":
		return ProviderAnthropic, nil
	default:
		return 0, &InvalidProviderError{Name: name}
	}
}
