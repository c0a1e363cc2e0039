package toplinks

import "sort"

// Keys under which pipeline stages publish their output to a RunContext.
const (
	KeyTopLinks        = "top_links"
	KeyTransformedData = "transformed_data"
)

// RunContext is a run-scoped channel that records the dataset each stage
// hands to the next. Stages pass datasets to each other directly; the
// RunContext only observes them. A nil *RunContext discards everything.
//
// RunContext is not safe for concurrent use.
type RunContext struct {
	runID  string
	values map[string]Dataset
}

// NewRunContext returns an empty RunContext for the given run.
func NewRunContext(runID string) *RunContext {
	return &RunContext{runID: runID, values: make(map[string]Dataset)}
}

// RunID returns the identifier of the run this context belongs to.
func (c *RunContext) RunID() string {
	if c == nil {
		return ""
	}
	return c.runID
}

// Put stores d under key, replacing any previous value.
func (c *RunContext) Put(key string, d Dataset) {
	if c == nil {
		return
	}
	c.values[key] = d
}

// Get returns the dataset stored under key.
func (c *RunContext) Get(key string) (Dataset, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.values[key]
	return d, ok
}

// Keys returns the populated keys in sorted order.
func (c *RunContext) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
