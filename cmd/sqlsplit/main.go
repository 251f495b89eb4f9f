// Command sqlsplit splits SQL scripts into individual statements with
// dialect-aware handling of strings, identifiers, and comments.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlsplit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
