package knowledge

import (
	"sync/atomic"
	"time"
)

// Container holds the active Knowledge behind atomic pointers so reloads
// swap the whole dataset with zero downtime. Requests in flight keep the
// snapshot they started with; the dataset is read-only per request.
type Container struct {
	kb          atomic.Value // *Knowledge
	report      atomic.Value // *QualityReport
	lastUpdated atomic.Value // time.Time
	updating    atomic.Bool
	startTime   time.Time
}

// NewContainer returns a container primed with the built-in tables so the
// engine is usable before the first overlay load completes.
func NewContainer() *Container {
	c := &Container{startTime: time.Now()}
	kb := Builtin()
	c.kb.Store(kb)
	c.report.Store(Validate(kb))
	c.lastUpdated.Store(time.Now())
	return c
}

// Get returns the active Knowledge snapshot.
func (c *Container) Get() *Knowledge {
	if v := c.kb.Load(); v != nil {
		if kb, ok := v.(*Knowledge); ok {
			return kb
		}
	}
	return Builtin()
}

// Report returns the data-quality report for the active snapshot.
func (c *Container) Report() *QualityReport {
	if v := c.report.Load(); v != nil {
		if r, ok := v.(*QualityReport); ok {
			return r
		}
	}
	return &QualityReport{}
}

// Swap atomically replaces the active snapshot and its quality report.
func (c *Container) Swap(kb *Knowledge, report *QualityReport) {
	c.kb.Store(kb)
	c.report.Store(report)
	c.lastUpdated.Store(time.Now())
}

// LastUpdated returns the time of the last successful swap.
func (c *Container) LastUpdated() time.Time {
	if v := c.lastUpdated.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// BeginUpdate claims the updating flag; false means a reload is already
// running and the caller should skip.
func (c *Container) BeginUpdate() bool {
	return c.updating.CompareAndSwap(false, true)
}

// EndUpdate releases the updating flag.
func (c *Container) EndUpdate() {
	c.updating.Store(false)
}

// IsUpdating reports whether a reload is in progress.
func (c *Container) IsUpdating() bool {
	return c.updating.Load()
}

// StartTime returns when the container was created (process start, in
// practice), used by the health endpoint for uptime reporting.
func (c *Container) StartTime() time.Time {
	return c.startTime
}
