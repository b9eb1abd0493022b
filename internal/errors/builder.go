package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const safeDetailsPrefix = "__json__:"

// ErrorBuilder provides a fluent interface for building errors
// but does not implement the error interface.
// Mark must be the last call in the chain when using the builder.
type ErrorBuilder struct {
	err     error
	details map[string]any
}

// NewError starts a new error builder chain
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// NewErrorf starts a new error builder chain with a formatted message
func NewErrorf(format string, args ...any) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Newf(format, args...)}
}

// WithError starts a builder chain with an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessage adds context for logs; it is never shown to the caller
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithMessagef is the formatted form of WithMessage
func (b *ErrorBuilder) WithMessagef(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithMessagef(b.err, format, args...)
	return b
}

// WithHint sets the message shown to the caller
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is a helper for WithHint that allows for formatting
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails adds structured details that are safe to return to the caller.
// Repeated calls merge; later keys win.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	if b.details == nil {
		b.details = make(map[string]any, len(details))
	}
	for k, v := range details {
		b.details[k] = v
	}
	return b
}

// WithDetail adds a single reportable detail
func (b *ErrorBuilder) WithDetail(key string, value any) *ErrorBuilder {
	return b.WithReportableDetails(map[string]any{key: value})
}

// Mark marks the error with a sentinel error
// should be the last call in the chain
func (b *ErrorBuilder) Mark(reference error) error {
	b.flushDetails()
	b.err = errors.Mark(b.err, reference)
	return b.err
}

// Error returns the built error without marking it
func (b *ErrorBuilder) Error() error {
	b.flushDetails()
	return b.err
}

func (b *ErrorBuilder) flushDetails() {
	if len(b.details) == 0 {
		return
	}
	marshaled, err := json.Marshal(b.details)
	b.details = nil
	if err != nil {
		return
	}
	b.err = errors.WithSafeDetails(b.err, safeDetailsPrefix+"%s", errors.Safe(string(marshaled)))
}

// GetDisplayMessage returns the first non-empty hint attached to err
func GetDisplayMessage(err error) string {
	// GetAllHints is a post-order traversal, so the innermost hint wins
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return ""
}

// GetReportableDetails collects every detail attached with WithReportableDetails
func GetReportableDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, safeDetailsPrefix)
			if !ok {
				continue
			}
			var jsonDetails map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &jsonDetails); err == nil {
				for k, v := range jsonDetails {
					if _, exists := details[k]; !exists {
						details[k] = v
					}
				}
			}
		}
	}

	return details
}
