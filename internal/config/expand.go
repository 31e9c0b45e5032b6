// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ExpandPath applies shell parameter expansion to path using environ
// ("KEY=value" pairs), so "${TMPDIR:-/tmp}/xsort" works in temp_dirs.
// Quotes are kept literally and command substitution is rejected.
func ExpandPath(path string, environ []string) (string, error) {
	if !strings.ContainsRune(path, '$') {
		return path, nil
	}

	word, err := syntax.NewParser().Document(strings.NewReader(path))
	if err != nil {
		return "", fmt.Errorf("failed to parse path %q: %w", path, err)
	}

	cfg := &expand.Config{Env: expand.ListEnviron(environ...)}
	expanded, err := expand.Literal(cfg, word)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	return expanded, nil
}
