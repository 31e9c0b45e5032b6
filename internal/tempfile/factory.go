// SPDX-License-Identifier: MPL-2.0

package tempfile

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Prefix starts the base name of every temporary run file.
const Prefix = "xsort-"

// Factory creates temporary run files. It is used from a single goroutine.
type Factory struct {
	fs       afero.Fs
	dirs     []string
	next     int
	registry *Registry
}

// NewFactory returns a factory that places files in dirs in turn. With no
// dirs the system temporary directory is used. The registry must track
// files on the same filesystem.
func NewFactory(fs afero.Fs, dirs []string, registry *Registry) *Factory {
	if len(dirs) == 0 {
		dirs = []string{os.TempDir()}
	}
	return &Factory{fs: fs, dirs: dirs, registry: registry}
}

// Registry returns the registry that records the files this factory creates.
func (f *Factory) Registry() *Registry { return f.registry }

// Fs returns the filesystem the factory creates files on.
func (f *Factory) Fs() afero.Fs { return f.fs }

// Dirs returns the directories files are created in.
func (f *Factory) Dirs() []string { return f.dirs }

// Create makes a new file in the next directory of the round-robin.
func (f *Factory) Create() (string, afero.File, error) {
	dir := f.dirs[f.next%len(f.dirs)]
	f.next++
	return f.CreateIn(dir)
}

// CreateIn makes a new uniquely named file in dir, opened for reading and
// writing. The file is registered before it is returned. On failure the
// attempted path is still returned for error reporting.
func (f *Factory) CreateIn(dir string) (string, afero.File, error) {
	path := filepath.Join(dir, Prefix+uuid.NewString())
	file, err := f.fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return path, nil, err
	}
	f.registry.Add(path)
	return path, file, nil
}
