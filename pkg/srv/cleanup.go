package srv

import "context"

// cleanup wraps a closer so resources like the archive DB or the
// readline terminal shut down with the rest of the services.
type cleanup struct {
	fn func() error
}

func (c *cleanup) Start(context.Context) error {
	// Nothing to run, shutdown-only
	return nil
}

func (c *cleanup) Shutdown(context.Context) error {
	if c.fn != nil {
		return c.fn()
	}
	return nil
}

func NewCleanup(fn func() error) Service {
	return &cleanup{fn: fn}
}
