package sheetask

import (
	"errors"
	"fmt"
)

// ErrNoMetadata indicates a question was asked before metadata was loaded.
var ErrNoMetadata = errors.New("spreadsheet metadata not loaded")

// ErrEmptyQuestion indicates a blank question.
var ErrEmptyQuestion = errors.New("empty question")

// FetchError represents a failed metadata or range fetch. It aborts the
// whole submission.
type FetchError struct {
	// Address is the A1 range being fetched; empty for metadata.
	Address string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Address == "" {
		return fmt.Sprintf("failed to load metadata: %v", e.Err)
	}
	return fmt.Sprintf("failed to fetch range %s: %v", e.Address, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
