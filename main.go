// SPDX-License-Identifier: MPL-2.0

// xsort sorts, merges and checks lines of text files of any size.
package main

import cmd "github.com/xsort/xsort/cmd/xsort"

func main() {
	cmd.Execute()
}
