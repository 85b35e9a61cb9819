// Command domshell is the runnable demonstration of the whatwgdom core:
// it builds a small document, defines a custom element, mutates the
// tree and its attributes, dispatches an event, and prints what
// happened. It plays the same role the teacher's debug/examples
// packages play for its own library, just fronted by a cobra/viper CLI
// instead of a browser page.
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
