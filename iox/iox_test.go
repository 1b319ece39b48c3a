package iox

import (
	"errors"
	"testing"
)

type closeRecorder struct{ calls int }

func (c *closeRecorder) Close() error { c.calls++; return errors.New("ignored") }

func TestDiscardClose(t *testing.T) {
	rec := &closeRecorder{}
	DiscardClose(rec)
	if rec.calls != 1 {
		t.Fatalf("Close called %d times, want 1", rec.calls)
	}
}

func TestCloseFunc(t *testing.T) {
	rec := &closeRecorder{}
	fn := CloseFunc(rec)
	if rec.calls != 0 {
		t.Fatal("Close called before invoking returned func")
	}
	fn()
	if rec.calls != 1 {
		t.Fatalf("Close called %d times, want 1", rec.calls)
	}
}

func TestDiscardErr(t *testing.T) {
	called := false
	DiscardErr(func() error {
		called = true
		return errors.New("ignored")
	})
	if !called {
		t.Fatal("fn was not called")
	}
}
