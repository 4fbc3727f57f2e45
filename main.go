// Command disk-usage shows the size of every entry of a directory tree,
// largest first, and lets the user drill into subdirectories.
package main

import (
	"fmt"
	"os"

	"github.com/TheIndifferent/disk-usage/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
