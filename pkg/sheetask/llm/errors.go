package llm

import (
	"errors"
	"fmt"
)

// ErrUnknownModel indicates a model id absent from the registry.
var ErrUnknownModel = errors.New("unknown model")

// ErrUnknownProvider indicates a registry entry whose provider has no backend.
var ErrUnknownProvider = errors.New("unknown provider")

// MissingKeyError reports that no API key is stored for a provider.
// It is returned before any network call is made.
type MissingKeyError struct {
	Provider Provider
	Key      string
	Err      error
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing %s API key: set %s", e.Provider, e.Key)
}

func (e *MissingKeyError) Unwrap() error {
	return e.Err
}

// ProviderError is a failed provider call. Status and Body carry the
// upstream HTTP response when one was received.
type ProviderError struct {
	Provider Provider
	Status   int
	Body     string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s API error %d: %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
