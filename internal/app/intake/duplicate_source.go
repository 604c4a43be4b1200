package intake

import (
	"strings"

	"github.com/panebox/panebox/internal/domain/media"
)

// DuplicateSourceFilter keeps the queue de-duplicated: a source already in
// the queue is rejected, comparing normalized forms so trivially different
// spellings of the same path or URL match.
type DuplicateSourceFilter struct{}

// Name returns the filter name.
func (f *DuplicateSourceFilter) Name() string {
	return "duplicate_source"
}

// Check rejects specs whose normalized source already exists in the queue.
func (f *DuplicateSourceFilter) Check(spec media.Spec, existing []media.Item) Result {
	normalized := normalizeSource(spec.Source)
	for _, item := range existing {
		if normalizeSource(item.Source) == normalized {
			return Reject("duplicate_source")
		}
	}
	return Accept()
}

// normalizeSource canonicalizes a source for comparison.
func normalizeSource(source string) string {
	s := strings.ToLower(strings.TrimSpace(source))
	s = strings.TrimPrefix(s, "file://")
	s = strings.TrimRight(s, "/")
	return s
}

// EmptySourceFilter rejects specs with a blank source.
type EmptySourceFilter struct{}

// Name returns the filter name.
func (f *EmptySourceFilter) Name() string {
	return "empty_source"
}

// Check rejects blank sources.
func (f *EmptySourceFilter) Check(spec media.Spec, _ []media.Item) Result {
	if strings.TrimSpace(spec.Source) == "" {
		return Reject("empty_source")
	}
	return Accept()
}
