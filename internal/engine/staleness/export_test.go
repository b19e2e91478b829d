package staleness

import "time"

// SetNow overrides the checker's clock. Used for testing.
func (c *Checker) SetNow(now func() time.Time) {
	c.now = now
}
