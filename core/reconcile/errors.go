package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks a failed source or destination read. It aborts the pass.
	ErrTransport = errors.New("transport error")

	// ErrSinkWrite marks a rejected destination create or update.
	ErrSinkWrite = errors.New("sink write error")
)

// TransportError represents a non-success response or a failed round trip
// while reading the source board or listing destination rows.
type TransportError struct {
	Source     string
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s returned %d: %s", e.Source, e.Method, e.URL, e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s: %v", e.Source, e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s %s failed", e.Source, e.Method, e.URL)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// SinkWriteError represents a single rejected destination write.
type SinkWriteError struct {
	Action   ActionType
	Key      string
	RecordID string
	Err      error
}

// Error implements the error interface
func (e *SinkWriteError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("%s card %s (record %s): %v", e.Action, e.Key, e.RecordID, e.Err)
	}
	return fmt.Sprintf("%s card %s: %v", e.Action, e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SinkWriteError) Is(target error) bool {
	return target == ErrSinkWrite
}

// asTransportError wraps err as a TransportError unless it already is one.
func asTransportError(source, method string, err error) error {
	if err == nil || errors.Is(err, ErrTransport) {
		return err
	}
	return &TransportError{Source: source, Method: method, Err: err}
}
