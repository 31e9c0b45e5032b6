// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config dir in tests, where
// os.UserHomeDir does not always honor a patched HOME.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir until Reset is called.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides.
func Reset() {
	configDirOverride = ""
}
