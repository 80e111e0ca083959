// Package jobs manages per-request work areas under a build directory.
// Each job gets a fresh directory named by a short random identifier; the
// oldest directories are swept so at most a fixed number remain.
package jobs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for job operations.
var (
	ErrInvalidJobID = errors.New("invalid job id")
	ErrCreateJob    = errors.New("failed to create job directory")
)

// IDLength is the number of characters kept from a UUID.
const IDLength = 8

// Store allocates job directories under Root.
type Store struct {
	root    string
	maxJobs int // 0 disables the sweep
	newID   func() string
	mu      sync.Mutex
}

// Job is one allocated work area.
type Job struct {
	ID  string
	Dir string
}

// Path returns name joined to the job directory.
func (j *Job) Path(name string) string {
	return filepath.Join(j.Dir, name)
}

// NewStore creates a Store rooted at root, creating the directory if needed.
// maxJobs bounds how many work areas are kept; zero keeps all of them.
func NewStore(root string, maxJobs int) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateJob, err)
	}
	return &Store{root: root, maxJobs: maxJobs, newID: newID}, nil
}

// Root returns the build directory.
func (s *Store) Root() string {
	return s.root
}

// Create sweeps old work areas, then allocates a new one.
// A failed sweep is reported through swept but never blocks the job.
func (s *Store) Create() (job *Job, swept []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	swept, _ = s.sweep()

	for range 3 {
		id := s.newID()
		dir := filepath.Join(s.root, id)
		err = os.Mkdir(dir, 0o750)
		if err == nil {
			return &Job{ID: id, Dir: dir}, swept, nil
		}
		if !errors.Is(err, os.ErrExist) {
			break
		}
	}
	return nil, swept, fmt.Errorf("%w: %v", ErrCreateJob, err)
}

// Lookup returns the job with the given id if its directory exists.
func (s *Store) Lookup(id string) (*Job, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJobID, id)
	}
	dir := filepath.Join(s.root, id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q not found", ErrInvalidJobID, id)
	}
	return &Job{ID: id, Dir: dir}, nil
}

type area struct {
	path    string
	modTime time.Time
}

// sweep removes the oldest directories (by modification time) beyond
// maxJobs. It returns the removed paths.
func (s *Store) sweep() ([]string, error) {
	if s.maxJobs <= 0 {
		return nil, nil
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	areas := make([]area, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		areas = append(areas, area{path: filepath.Join(s.root, e.Name()), modTime: info.ModTime()})
	}
	if len(areas) <= s.maxJobs {
		return nil, nil
	}

	slices.SortFunc(areas, func(a, b area) int {
		return a.modTime.Compare(b.modTime)
	})

	var removed []string
	var errs []error
	for _, a := range areas[:len(areas)-s.maxJobs] {
		if err := os.RemoveAll(a.path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, a.path)
	}
	return removed, errors.Join(errs...)
}

// ValidID reports whether id looks like an identifier this package issues:
// exactly IDLength lowercase hex digits.
func ValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func newID() string {
	return uuid.NewString()[:IDLength]
}
