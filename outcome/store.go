package outcome

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact names at the fixed store location, overwritten each run.
const (
	// LastOutputName holds the full text of the last successful reply.
	LastOutputName = "last-output.md"
	// LastErrorName holds the raw payload of the last error or empty run.
	LastErrorName = "last-error.json"
)

// Store persists run artifacts. Writes are best-effort: callers report
// failures and keep going, they never change the run outcome.
type Store interface {
	// Put overwrites the named artifact with data.
	Put(name string, data []byte) error
	// Get reads the named artifact back.
	Get(name string) ([]byte, error)
}

// DirStore is a Store backed by a single directory, created on demand.
type DirStore struct {
	dir string
}

// Verify DirStore implements Store.
var _ Store = (*DirStore)(nil)

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Put implements Store.
func (s *DirStore) Put(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("artifact dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", name, err)
	}
	return nil
}

// Get implements Store.
func (s *DirStore) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	return data, nil
}

// Persist writes the artifact for o: the reply text on success, the raw
// payload on error, and the completion payload (when present) on an empty
// response. The returned error is advisory.
func Persist(o Outcome, store Store) error {
	switch o.Status {
	case StatusSuccess:
		return store.Put(LastOutputName, []byte(o.Text))
	case StatusError:
		return store.Put(LastErrorName, []byte(o.Payload))
	case StatusEmpty:
		if o.Payload == "" {
			return nil
		}
		return store.Put(LastErrorName, []byte(o.Payload))
	default:
		return nil
	}
}

// StubStore records Put calls and serves Get from memory, for tests.
type StubStore struct {
	Files  map[string][]byte
	PutErr error
}

// Verify StubStore implements Store.
var _ Store = (*StubStore)(nil)

// NewStubStore creates an empty stub store.
func NewStubStore() *StubStore {
	return &StubStore{Files: map[string][]byte{}}
}

// Put implements Store by recording the write.
func (s *StubStore) Put(name string, data []byte) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.Files[name] = append([]byte(nil), data...)
	return nil
}

// Get implements Store from recorded writes.
func (s *StubStore) Get(name string) ([]byte, error) {
	data, ok := s.Files[name]
	if !ok {
		return nil, fmt.Errorf("artifact %s not found", name)
	}
	return data, nil
}
