// Package intake provides the filter chain applied to media before it
// enters the queue.
package intake

import "github.com/panebox/panebox/internal/domain/media"

// Result represents the result of a filter check.
type Result struct {
	Accepted bool
	Code     string // e.g., "duplicate_source", "empty_source"
}

// Accept returns an accepted result.
func Accept() Result {
	return Result{Accepted: true}
}

// Reject returns a rejected result with the given code.
func Reject(code string) Result {
	return Result{Accepted: false, Code: code}
}

// Filter is the interface for intake filters.
type Filter interface {
	// Name returns the filter name.
	Name() string
	// Check decides whether the spec may join the existing queue items.
	Check(spec media.Spec, existing []media.Item) Result
}
