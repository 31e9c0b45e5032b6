// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/xsort/xsort/internal/keys"
)

type (
	// sortFlags holds the root command's flag values.
	sortFlags struct {
		ignoreBlanks      bool
		dictionary        bool
		foldCase          bool
		generalNumeric    bool
		ignoreNonprinting bool
		month             bool
		numeric           bool
		reverse           bool

		keys           keyList
		separator      string
		zeroTerminated bool

		stable bool
		unique bool

		check      bool
		checkQuiet bool
		checkAll   bool
		merge      bool

		output     string
		bufferSize string
		tempDirs   []string
		batchSize  int
		locale     string
	}

	// keyList is a repeatable -k flag. Each value is parsed when the flag is
	// set, so a malformed key fails before any input is opened.
	keyList struct {
		specs []keys.Spec
		// err is the last parse failure, used to attach key guidance to
		// the flag error.
		err error
	}
)

// String implements pflag.Value.
func (k *keyList) String() string {
	parts := make([]string, len(k.specs))
	for i, s := range k.specs {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// Set implements pflag.Value.
func (k *keyList) Set(value string) error {
	spec, err := keys.Parse(value)
	if err != nil {
		k.err = err
		return err
	}
	k.specs = append(k.specs, spec)
	return nil
}

// Type implements pflag.Value.
func (k *keyList) Type() string { return "KEYDEF" }

func (f *sortFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.ignoreBlanks, "ignore-leading-blanks", "b", false, "ignore leading blanks")
	fs.BoolVarP(&f.dictionary, "dictionary-order", "d", false, "consider only blanks and alphanumeric characters")
	fs.BoolVarP(&f.foldCase, "ignore-case", "f", false, "fold lower case to upper case characters")
	fs.BoolVarP(&f.generalNumeric, "general-numeric-sort", "g", false, "compare according to general numerical value")
	fs.BoolVarP(&f.ignoreNonprinting, "ignore-nonprinting", "i", false, "consider only printable characters")
	fs.BoolVarP(&f.month, "month-sort", "M", false, "compare (unknown) < 'JAN' < ... < 'DEC'")
	fs.BoolVarP(&f.numeric, "numeric-sort", "n", false, "compare according to string numerical value")
	fs.BoolVarP(&f.reverse, "reverse", "r", false, "reverse the result of comparisons")

	fs.VarP(&f.keys, "key", "k", "sort via a key; KEYDEF gives location and type (repeatable)")
	fs.StringVarP(&f.separator, "field-separator", "t", "", "use SEP instead of non-blank to blank transition")
	fs.BoolVarP(&f.zeroTerminated, "zero-terminated", "z", false, "line delimiter is NUL, not newline")

	fs.BoolVarP(&f.stable, "stable", "s", false, "stabilize sort by disabling last-resort comparison")
	fs.BoolVarP(&f.unique, "unique", "u", false, "output only the first of an equal run")

	fs.BoolVarP(&f.check, "check", "c", false, "check for sorted input; do not sort")
	fs.BoolVarP(&f.checkQuiet, "check-quiet", "C", false, "like -c, but do not report the first bad line")
	fs.BoolVar(&f.checkAll, "check-all", false, "like -c, but report every bad line")
	fs.BoolVarP(&f.merge, "merge", "m", false, "merge already sorted files; do not sort")

	fs.StringVarP(&f.output, "output", "o", "", "write result to FILE instead of standard output")
	fs.StringVarP(&f.bufferSize, "buffer-size", "S", "", "use SIZE for the main memory buffer (e.g. 512K, 64M)")
	fs.StringArrayVarP(&f.tempDirs, "temporary-directory", "T", nil, "use DIR for temporaries (repeatable)")
	fs.IntVar(&f.batchSize, "batch-size", 0, "merge at most N inputs at once")
	fs.StringVar(&f.locale, "locale", "", "collation locale (default from LC_ALL, LC_COLLATE, LANG)")
}

// globalLetters renders the global ordering flags as key option letters.
func (f *sortFlags) globalLetters() string {
	var b strings.Builder
	for _, opt := range []struct {
		set    bool
		letter byte
	}{
		{f.ignoreBlanks, 'b'},
		{f.dictionary, 'd'},
		{f.foldCase, 'f'},
		{f.generalNumeric, 'g'},
		{f.ignoreNonprinting, 'i'},
		{f.month, 'M'},
		{f.numeric, 'n'},
		{f.reverse, 'r'},
	} {
		if opt.set {
			b.WriteByte(opt.letter)
		}
	}
	return b.String()
}

// checking reports whether any check flag was given.
func (f *sortFlags) checking() bool {
	return f.check || f.checkQuiet || f.checkAll
}
