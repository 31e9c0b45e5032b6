// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/xsort/xsort/internal/issue"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.BufferSize != DefaultBufferSize {
		t.Errorf("expected default buffer size %q, got %q", DefaultBufferSize, cfg.BufferSize)
	}
	if n, err := cfg.BufferSize.Bytes(); err != nil || n != 64<<20 {
		t.Errorf("default buffer size = %d, %v; want %d", n, err, 64<<20)
	}
	if cfg.BatchSize != 16 {
		t.Errorf("expected default batch size 16, got %d", cfg.BatchSize)
	}
	if len(cfg.TempDirs) != 0 {
		t.Errorf("expected no default temp dirs, got %v", cfg.TempDirs)
	}
	if cfg.DecimalPoint != "." || cfg.ThousandsSeparator != "" {
		t.Errorf("expected C number format, got %q/%q", cfg.DecimalPoint, cfg.ThousandsSeparator)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}

	SetConfigDirOverride("/custom/dir")
	t.Cleanup(Reset)
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() with override returned error: %v", err)
	}
	if dir != "/custom/dir" {
		t.Errorf("ConfigDir() with override = %q, want /custom/dir", dir)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no resolved path, got %q", path)
	}
	if cfg.BatchSize != DefaultBatchSize || cfg.BufferSize != DefaultBufferSize {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_CUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.cue"), `
buffer_size: "1MiB"
batch_size:  4
temp_dirs: ["/var/tmp", "/scratch"]
locale: "en_US.UTF-8"
thousands_separator: ","
ui: {
	verbose: true
}
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}
	if n, _ := cfg.BufferSize.Bytes(); n != 1<<20 {
		t.Errorf("buffer size = %d, want %d", n, 1<<20)
	}
	if cfg.BatchSize != 4 {
		t.Errorf("batch size = %d, want 4", cfg.BatchSize)
	}
	if len(cfg.TempDirs) != 2 || cfg.TempDirs[1] != "/scratch" {
		t.Errorf("temp dirs = %v", cfg.TempDirs)
	}
	if cfg.Locale != "en_US.UTF-8" {
		t.Errorf("locale = %q", cfg.Locale)
	}
	if cfg.ThousandsSeparator != "," || cfg.DecimalPoint != "." {
		t.Errorf("separators = %q/%q", cfg.DecimalPoint, cfg.ThousandsSeparator)
	}
	if !cfg.UI.Verbose || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ui = %+v", cfg.UI)
	}
}

func TestLoad_TOMLFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
batch_size = 3
temp_dirs = ["/a"]

[ui]
color_scheme = "dark"
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("resolved path = %q, want config.toml", path)
	}
	if cfg.BatchSize != 3 || cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.BufferSize != DefaultBufferSize {
		t.Errorf("buffer size should keep default, got %q", cfg.BufferSize)
	}
}

func TestLoad_CUEPreferredOverTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.cue"), "batch_size: 5\n")
	writeFile(t, filepath.Join(dir, "config.toml"), "batch_size = 7\n")

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if cfg.BatchSize != 5 {
		t.Errorf("batch size = %d, want 5 from config.cue", cfg.BatchSize)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"batch size too small", "config.cue", "batch_size: 1\n"},
		{"unknown field", "config.cue", "buffer: \"1M\"\n"},
		{"bad color scheme", "config.cue", "ui: color_scheme: \"neon\"\n"},
		{"multi-char decimal point", "config.cue", "decimal_point: \"..\"\n"},
		{"NUL thousands separator", "config.cue", "thousands_separator: \"\\u0000\"\n"},
		{"digit thousands separator", "config.cue", "thousands_separator: \"1\"\n"},
		{"blank decimal point", "config.cue", "decimal_point: \" \"\n"},
		{"toml minus thousands separator", "config.toml", "thousands_separator = \"-\"\n"},
		{"invalid CUE syntax", "config.cue", "batch_size: [\n"},
		{"toml wrong type", "config.toml", "batch_size = \"many\"\n"},
		{"invalid TOML syntax", "config.toml", "batch_size = = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
			}
			if ae.Operation != "load configuration" {
				t.Errorf("operation = %q, want load configuration", ae.Operation)
			}
		})
	}
}

func TestLoad_GoValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.cue"), "buffer_size: \"12 parsecs\"\n")

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected error for unparseable buffer size")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_SameSeparators(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.cue"), "decimal_point: \",\"\nthousands_separator: \",\"\n")

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sort.toml")
	writeFile(t, path, "buffer_size = \"2k\"\n")

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if n, _ := cfg.BufferSize.Bytes(); n != 2048 {
		t.Errorf("buffer size = %d, want 2048", n)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("resource = %q, want %q", ae.Resource, missing)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.cue"), "batch_size: 5\n")

	t.Setenv("XSORT_BATCH_SIZE", "9")
	t.Setenv("XSORT_UI_VERBOSE", "true")
	t.Setenv("XSORT_TEMP_DIRS", "/one,/two")

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if cfg.BatchSize != 9 {
		t.Errorf("batch size = %d, want env override 9", cfg.BatchSize)
	}
	if !cfg.UI.Verbose {
		t.Error("expected XSORT_UI_VERBOSE to enable verbose")
	}
	if len(cfg.TempDirs) != 2 || cfg.TempDirs[0] != "/one" {
		t.Errorf("temp dirs = %v", cfg.TempDirs)
	}
}

func TestLoad_ExpandsTempDirs(t *testing.T) {
	t.Setenv("XSORT_TEST_SCRATCH", "/fast")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.cue"), `temp_dirs: ["${XSORT_TEST_SCRATCH}/runs", "${XSORT_TEST_UNSET:-/slow}"]`+"\n")

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	want := []TempDir{"/fast/runs", "/slow"}
	if len(cfg.TempDirs) != len(want) {
		t.Fatalf("temp dirs = %v, want %v", cfg.TempDirs, want)
	}
	for i := range want {
		if cfg.TempDirs[i] != want[i] {
			t.Errorf("temp dirs[%d] = %q, want %q", i, cfg.TempDirs[i], want[i])
		}
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	// The generated file must load back to the defaults.
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.BatchSize != DefaultBatchSize || cfg.BufferSize != DefaultBufferSize {
		t.Errorf("generated config = %+v", cfg)
	}

	// A second call keeps the existing file.
	writeFile(t, path, "batch_size: 8\n")
	again, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("second CreateDefaultConfig() returned error: %v", err)
	}
	if again != path {
		t.Errorf("second call path = %q, want %q", again, path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "batch_size: 8\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestGenerateTOML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.BatchSize = 6
	cfg.TempDirs = []TempDir{"/x"}

	doc, err := GenerateTOML(cfg)
	if err != nil {
		t.Fatalf("GenerateTOML() returned error: %v", err)
	}
	if !strings.Contains(doc, "batch_size = 6") {
		t.Errorf("TOML output missing batch_size:\n%s", doc)
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), doc)
	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated TOML does not load: %v", err)
	}
	if loaded.BatchSize != 6 || len(loaded.TempDirs) != 1 || loaded.TempDirs[0] != "/x" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	env := []string{"HOME=/home/ada", "TMPDIR=/var/tmp"}
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"/plain/path", "/plain/path", false},
		{"$TMPDIR/xsort", "/var/tmp/xsort", false},
		{"${TMPDIR}/runs", "/var/tmp/runs", false},
		{"${SCRATCH:-/scratch}", "/scratch", false},
		{"$HOME/.cache", "/home/ada/.cache", false},
		{"$(rm -rf /)", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ExpandPath(tt.in, env)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExpandPath(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandPath(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"batch_size"}, "batch_size"},
		{[]string{"temp_dirs", "1"}, "temp_dirs[1]"},
		{[]string{"ui", "color_scheme"}, "ui.color_scheme"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.in); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
