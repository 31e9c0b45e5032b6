// SPDX-License-Identifier: MPL-2.0

package keys

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidKeySpec is the sentinel error wrapped by InvalidKeySpecError.
var ErrInvalidKeySpec = errors.New("invalid key specification")

// InvalidKeySpecError is returned by Parse for a malformed -k argument.
type InvalidKeySpecError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidKeySpecError) Error() string {
	return fmt.Sprintf("invalid key specification %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrInvalidKeySpec for errors.Is() compatibility.
func (e *InvalidKeySpecError) Unwrap() error { return ErrInvalidKeySpec }

// Parse parses a POSIX key definition "F[.C][OPTS][,F[.C][OPTS]]".
//
// Field and character numbers are 1-origin. A missing end position extends
// the key to the end of the line; an end character of 0 (or none) means the
// end of the end field. OPTS are any of "bdfgiMnr"; "b" applies to the
// position it follows. A key without options inherits the global options
// when passed through Resolve.
func Parse(s string) (Spec, error) {
	p := keyParser{input: s}
	return p.parse()
}

// ParseOptions builds the global options from option letters such as
// "nr" or "bf", applying the same compatibility rules as key options.
func ParseOptions(letters string) (Options, error) {
	p := keyParser{input: letters}
	var k Spec
	seen := false
	if err := p.options(&k, true, &seen); err != nil {
		return Options{}, err
	}
	if p.pos < len(p.input) {
		return Options{}, p.fail("unknown ordering option")
	}
	return Options{
		Ordering:   k.Ordering,
		FoldCase:   k.FoldCase,
		Ignore:     k.Ignore,
		Reverse:    k.Reverse,
		SkipBlanks: k.SkipStartBlanks,
	}, nil
}

type keyParser struct {
	input string
	pos   int
}

func (p *keyParser) fail(reason string) error {
	return &InvalidKeySpecError{Input: p.input, Reason: reason}
}

func (p *keyParser) parse() (Spec, error) {
	k := Spec{EndField: NoField}

	field, err := p.number("invalid number at field start")
	if err != nil {
		return Spec{}, err
	}
	if field == 0 {
		return Spec{}, p.fail("field number is zero")
	}
	k.StartField = field - 1

	if p.peek() == '.' {
		p.pos++
		char, err := p.number("invalid number after '.'")
		if err != nil {
			return Spec{}, err
		}
		if char == 0 {
			return Spec{}, p.fail("character offset is zero")
		}
		k.StartChar = char - 1
	}
	if k.StartField == 0 && k.StartChar == 0 {
		k.StartField = NoField
	}

	seen := false
	if err := p.options(&k, true, &seen); err != nil {
		return Spec{}, err
	}

	if p.peek() == ',' {
		p.pos++
		field, err := p.number("invalid number after ','")
		if err != nil {
			return Spec{}, err
		}
		if field == 0 {
			return Spec{}, p.fail("field number is zero")
		}
		k.EndField = field - 1
		if p.peek() == '.' {
			p.pos++
			char, err := p.number("invalid number after '.'")
			if err != nil {
				return Spec{}, err
			}
			k.EndChar = char
		}
		if err := p.options(&k, false, &seen); err != nil {
			return Spec{}, err
		}
	}

	if p.pos < len(p.input) {
		return Spec{}, p.fail("stray character in field spec")
	}
	k.inherit = !seen
	return k, nil
}

// options consumes ordering option letters. start selects whether "b"
// applies to the start or the end position.
func (p *keyParser) options(k *Spec, start bool, seen *bool) error {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case 'b':
			if start {
				k.SkipStartBlanks = true
			} else {
				k.SkipEndBlanks = true
			}
		case 'd':
			if k.Ignore == IgnoreNonprinting {
				return p.fail("options 'd' and 'i' are incompatible")
			}
			k.Ignore = IgnoreNondictionary
		case 'i':
			if k.Ignore == IgnoreNondictionary {
				return p.fail("options 'd' and 'i' are incompatible")
			}
			k.Ignore = IgnoreNonprinting
		case 'f':
			k.FoldCase = true
		case 'g':
			if err := p.setOrdering(k, OrderGeneralNumeric); err != nil {
				return err
			}
		case 'M':
			if err := p.setOrdering(k, OrderMonth); err != nil {
				return err
			}
		case 'n':
			if err := p.setOrdering(k, OrderNumeric); err != nil {
				return err
			}
		case 'r':
			k.Reverse = true
		default:
			return nil
		}
		*seen = true
		p.pos++
	}
	return nil
}

func (p *keyParser) setOrdering(k *Spec, o Ordering) error {
	if k.Ordering != OrderDefault && k.Ordering != o {
		return p.fail("options 'g', 'M' and 'n' are incompatible")
	}
	k.Ordering = o
	return nil
}

func (p *keyParser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

// number consumes a run of decimal digits. Values too large for an int are
// clamped, which places the position past the end of any real line.
func (p *keyParser) number(reason string) (int, error) {
	begin := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == begin {
		return 0, p.fail(reason)
	}
	n, err := strconv.Atoi(p.input[begin:p.pos])
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return math.MaxInt, nil
		}
		return 0, p.fail(reason)
	}
	return n, nil
}
