package intake

import "github.com/panebox/panebox/internal/domain/media"

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a chain with the default filters.
func NewChain() *Chain {
	c := &Chain{filters: make([]Filter, 0)}
	c.Add(&EmptySourceFilter{})
	c.Add(&DuplicateSourceFilter{})
	return c
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence, returning the first rejection.
func (c *Chain) Execute(spec media.Spec, existing []media.Item) Result {
	for _, f := range c.filters {
		result := f.Check(spec, existing)
		if !result.Accepted {
			return result
		}
	}
	return Accept()
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
