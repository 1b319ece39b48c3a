// Package iox holds small I/O cleanup helpers.
package iox

import "io"

// DiscardClose closes c, ignoring the error. Meant for defers on response
// bodies and files whose close failure has no recovery path:
//
//	defer iox.DiscardClose(body)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc wraps c's Close for t.Cleanup registration:
//
//	t.Cleanup(iox.CloseFunc(body))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// DiscardErr calls fn, ignoring the returned error. For cleanup calls
// that are not io.Closers, like flushing a logger:
//
//	defer iox.DiscardErr(logger.Sync)
func DiscardErr(fn func() error) { _ = fn() }
