// SPDX-License-Identifier: MPL-2.0

package collate

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	xcollate "golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownLocale is the sentinel error wrapped by UnknownLocaleError.
var ErrUnknownLocale = errors.New("unknown locale")

type (
	// Collator orders two byte strings. Compare returns a negative number,
	// zero or a positive number when a sorts before, equal to or after b.
	Collator interface {
		Compare(a, b []byte) int
		// Ordinal reports whether Compare is plain byte order.
		Ordinal() bool
		Name() string
	}

	// UnknownLocaleError is returned by ForLocale when a locale name cannot
	// be parsed as a BCP 47 tag.
	UnknownLocaleError struct {
		Locale string
		Cause  error
	}

	ordinal struct{}

	// Locale collates according to a language tag. The underlying
	// x/text collator keeps scratch buffers, so calls are serialized.
	Locale struct {
		mu   sync.Mutex
		tag  language.Tag
		coll *xcollate.Collator
	}
)

// Error implements the error interface.
func (e *UnknownLocaleError) Error() string {
	return fmt.Sprintf("unknown locale %q: %v", e.Locale, e.Cause)
}

// Unwrap returns ErrUnknownLocale for errors.Is() compatibility.
func (e *UnknownLocaleError) Unwrap() error { return ErrUnknownLocale }

// Ordinal returns the byte-order collator.
func Ordinal() Collator { return ordinal{} }

func (ordinal) Compare(a, b []byte) int { return bytes.Compare(a, b) }

func (ordinal) Ordinal() bool { return true }

func (ordinal) Name() string { return "C" }

// NewLocale returns a collator for tag.
func NewLocale(tag language.Tag) *Locale {
	return &Locale{tag: tag, coll: xcollate.New(tag)}
}

// Compare implements Collator. Byte strings that collate equal are ordered
// by their bytes so that the result is a total order.
func (l *Locale) Compare(a, b []byte) int {
	l.mu.Lock()
	c := l.coll.Compare(a, b)
	l.mu.Unlock()
	if c != 0 {
		return c
	}
	return bytes.Compare(a, b)
}

// Ordinal implements Collator.
func (l *Locale) Ordinal() bool { return false }

// Name implements Collator.
func (l *Locale) Name() string { return l.tag.String() }

// ForLocale selects the collator for a POSIX locale name such as
// "en_US.UTF-8". The names "", "C" and "POSIX" (with any codeset suffix)
// select ordinal order.
func ForLocale(name string) (Collator, error) {
	base := trimLocale(name)
	if IsPOSIX(base) {
		return Ordinal(), nil
	}
	tag, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	if err != nil {
		return nil, &UnknownLocaleError{Locale: name, Cause: err}
	}
	return NewLocale(tag), nil
}

// IsPOSIX reports whether name denotes the C locale.
func IsPOSIX(name string) bool {
	switch trimLocale(name) {
	case "", "C", "POSIX":
		return true
	default:
		return false
	}
}

// FromEnvironment resolves the collation locale from LC_ALL, LC_COLLATE
// and LANG, in that order of precedence. lookup is usually os.LookupEnv.
func FromEnvironment(lookup func(string) (string, bool)) string {
	for _, name := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		if v, ok := lookup(name); ok && v != "" {
			return v
		}
	}
	return ""
}

// trimLocale drops the ".codeset" and "@modifier" parts of a locale name.
func trimLocale(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	return name
}
