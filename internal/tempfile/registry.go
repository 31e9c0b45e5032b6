// SPDX-License-Identifier: MPL-2.0

package tempfile

import (
	"errors"
	"os"
	"slices"
	"sync"

	"github.com/spf13/afero"
)

// Registry tracks live temporary files. It is safe for concurrent use so
// that a signal handler may call Live or Cleanup while a sort runs.
type Registry struct {
	mu    sync.Mutex
	fs    afero.Fs
	paths []string
}

// NewRegistry returns an empty registry for files on fs.
func NewRegistry(fs afero.Fs) *Registry {
	return &Registry{fs: fs}
}

// Add records path as live.
func (r *Registry) Add(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Remove deletes path and forgets it. A file that is already gone is not an
// error.
func (r *Registry) Remove(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = slices.DeleteFunc(r.paths, func(p string) bool { return p == path })
	if err := r.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Live returns the live files in creation order.
func (r *Registry) Live() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.paths)
}

// Len returns the number of live files.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// Cleanup deletes every live file and empties the registry. Errors from
// individual removals are joined; removal continues past them.
func (r *Registry) Cleanup() error {
	r.mu.Lock()
	paths := r.paths
	r.paths = nil
	r.mu.Unlock()

	var errs []error
	for _, p := range paths {
		if err := r.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
