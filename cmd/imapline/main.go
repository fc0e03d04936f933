// Command imapline inspects a single IMAP line: it parses it and
// prints the resulting tag, command, and attribute tree.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
