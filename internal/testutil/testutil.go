// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"

	"github.com/xsort/xsort/internal/tempfile"
)

// MustWriteFile writes content to path on fs, creating parent directories.
// The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustReadFile returns the contents of path on fs.
// The test fails immediately if the read fails.
func MustReadFile(t testing.TB, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// MustClose closes the given io.Closer.
// The test fails immediately if the close fails.
func MustClose(t testing.TB, c io.Closer) {
	t.Helper()
	if err := c.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}
}

// LeftoverRuns lists temporary run files remaining in dirs, or in the
// system temporary directory when no dirs are given. Directories that
// do not exist hold no runs.
func LeftoverRuns(t testing.TB, fs afero.Fs, dirs ...string) []string {
	t.Helper()
	if len(dirs) == 0 {
		dirs = []string{os.TempDir()}
	}
	var files []string
	for _, dir := range dirs {
		matches, err := afero.Glob(fs, filepath.Join(dir, tempfile.Prefix+"*"))
		if err != nil {
			t.Fatalf("failed to list runs in %s: %v", dir, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return files
}
