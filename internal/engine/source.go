// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"io"

	"github.com/spf13/afero"
)

// StdinName is the input and output name of the standard streams.
const StdinName = "-"

// Input is a named byte source opened on demand, so that a merge holds
// open only the inputs of its current group.
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileInput reads path from fs.
func FileInput(fs afero.Fs, path string) Input {
	return Input{Name: path, Open: func() (io.ReadCloser, error) { return fs.Open(path) }}
}

// ReaderInput reads from r, which is not closed.
func ReaderInput(name string, r io.Reader) Input {
	return Input{Name: name, Open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil }}
}
