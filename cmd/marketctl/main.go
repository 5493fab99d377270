// Command marketctl runs engine operations from a shell: statistics, the daily reset, and
// replaying or publishing change events.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(newServices).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
