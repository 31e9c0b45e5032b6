// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	InvalidKeySpecId
	InvalidOptionId
	InputUnreadableId
	TempDirUnavailableId
	LineTooLongId
	WriteFailedId
	UnknownLocaleId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external references that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guidance with the glamour style at stylePath
// ("dark", "light", "notty", ...), appending a "See also" list of links.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

const (
	posixSortLink HttpLink = "https://pubs.opengroup.org/onlinepubs/9699919799/utilities/sort.html"
	gnuSortLink   HttpLink = "https://www.gnu.org/software/coreutils/manual/html_node/sort-invocation.html"
)

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

xsort reads ` + "`config.cue`" + ` (or ` + "`config.toml`" + `) from its config directory,
then applies ` + "`XSORT_*`" + ` environment variables and command-line flags.

## Things you can try:
- Print the file xsort is reading:
~~~
$ xsort config path
~~~
- Compare it against the defaults:
~~~
$ xsort config show
~~~
- Start over from a commented default file:
~~~
$ xsort config init
~~~`,
	}

	invalidKeySpecIssue = &Issue{
		id: InvalidKeySpecId,
		mdMsg: `
# Invalid sort key!

Keys use the POSIX form ` + "`-k F[.C][OPTS][,F[.C][OPTS]]`" + `. Fields and characters
count from 1, and ` + "`F.0`" + ` in the second position means the end of field F.

## Examples:
~~~
$ xsort -k2,2n data.txt        # second field, numeric
$ xsort -t: -k3,3 -k1,1r /etc/passwd
$ xsort -k1.3b,1.5 codes.txt   # characters 3 to 5 of field 1
~~~

## Common mistakes:
- Field or start character 0 (both are 1-origin)
- Combining ` + "`n`" + `, ` + "`g`" + ` and ` + "`M`" + ` in one key
- Option letters other than ` + "`bdfgiMnr`" + ``,
		extLinks: []HttpLink{posixSortLink},
	}

	invalidOptionIssue = &Issue{
		id: InvalidOptionId,
		mdMsg: `
# Conflicting or invalid options!

## Things to check:
- ` + "`-t`" + ` takes exactly one character
- ` + "`--batch-size`" + ` must be at least 2
- ` + "`-S`" + ` takes a size such as ` + "`512K`" + `, ` + "`64M`" + ` or ` + "`2G`" + `
- ` + "`-c`" + ` checks exactly one file`,
		extLinks: []HttpLink{gnuSortLink},
	}

	inputUnreadableIssue = &Issue{
		id: InputUnreadableId,
		mdMsg: `
# Cannot read an input!

## Things you can try:
- Check the path and that you have read permission
- Use ` + "`-`" + ` to read standard input explicitly`,
	}

	tempDirUnavailableIssue = &Issue{
		id: TempDirUnavailableId,
		mdMsg: `
# Cannot create temporary files!

Inputs larger than the memory budget are sorted in runs that are spilled to
temporary files and merged afterwards.

## Things you can try:
- Point xsort at a writable directory with enough space:
~~~
$ xsort -T /scratch -T /var/tmp big.txt
~~~
- Raise the memory budget so fewer runs are spilled:
~~~
$ xsort -S 2G big.txt
~~~
- Set ` + "`temp_dirs`" + ` in the config file`,
	}

	lineTooLongIssue = &Issue{
		id: LineTooLongId,
		mdMsg: `
# Line too long!

A single line is larger than the biggest buffer xsort can allocate.
xsort never truncates lines, so the input cannot be sorted as is.

## Things you can try:
- Check the line terminator: binary or NUL-separated data needs ` + "`-z`" + `
- Split the oversized records before sorting`,
	}

	writeFailedIssue = &Issue{
		id: WriteFailedId,
		mdMsg: `
# Failed to write output!

## Things you can try:
- Check free space on the output device and on the temp directories
- Check write permission for the ` + "`-o`" + ` target
- A partially written output file is left in place; remove it before retrying`,
	}

	unknownLocaleIssue = &Issue{
		id: UnknownLocaleId,
		mdMsg: `
# Unknown locale!

xsort falls back to byte order (the C locale) when the collation locale cannot be
parsed. Use a BCP 47 tag or a POSIX locale name such as ` + "`de_DE.UTF-8`" + `.

## Things you can try:
~~~
$ xsort --locale en_US data.txt
$ LC_ALL=C xsort data.txt
~~~`,
	}

	catalog = []*Issue{
		configLoadFailedIssue,
		invalidKeySpecIssue,
		invalidOptionIssue,
		inputUnreadableIssue,
		tempDirUnavailableIssue,
		lineTooLongIssue,
		writeFailedIssue,
		unknownLocaleIssue,
	}

	issues = indexCatalog(catalog)
)

func indexCatalog(list []*Issue) map[Id]*Issue {
	m := make(map[Id]*Issue, len(list))
	for _, i := range list {
		m[i.id] = i
	}
	return m
}

// Values returns every catalog entry in Id order.
func Values() []*Issue {
	out := slices.Clone(catalog)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
