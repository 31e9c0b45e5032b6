// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// lazyFile is the -o sink. It truncates the target on the first Write,
// after every input of a sort has been consumed.
type lazyFile struct {
	fs   afero.Fs
	path string
	f    afero.File
	err  error
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil && l.err == nil {
		l.f, l.err = l.fs.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	}
	if l.err != nil {
		return 0, l.err
	}
	return l.f.Write(p)
}

// finish closes the file. When ok is set and nothing was written, the
// file is still created (empty input sorts to empty output).
func (l *lazyFile) finish(ok bool) error {
	if l.err != nil {
		return l.err
	}
	if l.f == nil {
		if !ok {
			return nil
		}
		if _, err := l.Write(nil); err != nil {
			return err
		}
	}
	return l.f.Close()
}

// cleanPath is used to recognize an input given under another spelling
// of the output path when the file system cannot compare inodes.
func cleanPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
