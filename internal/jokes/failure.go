package jokes

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a request failed.
type FailureKind int

const (
	// NetworkOrParse covers transport errors, HTTP error statuses and payloads
	// that are not JSON or do not match the endpoint schema.
	NetworkOrParse FailureKind = iota
	// EmptySearchResult is returned by Search when the result list is empty.
	EmptySearchResult
)

// NoJokeFoundMessage is the user-facing message carried by EmptySearchResult.
const NoJokeFoundMessage = "No joke found for this query"

func (k FailureKind) String() string {
	switch k {
	case EmptySearchResult:
		return "empty_search_result"
	default:
		return "network_or_parse"
	}
}

// Failure is the error type returned by every Client operation.
type Failure struct {
	Kind    FailureKind
	Op      string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch {
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Op, f.Err)
	case f.Message != "":
		return fmt.Sprintf("%s: %s", f.Op, f.Message)
	default:
		return f.Op + ": request failed"
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// UserMessage returns the message a failure wants shown to the user, or ""
// when the failure carries no specific message and callers should fall back
// to a generic one.
func UserMessage(err error) string {
	var f *Failure
	if !errors.As(err, &f) {
		return ""
	}
	if f.Kind != EmptySearchResult {
		return ""
	}
	return f.Message
}

func networkFailure(op string, err error) error {
	return &Failure{Kind: NetworkOrParse, Op: op, Err: err}
}
