// Command csvrelay watches a directory tree for CSV drops and forwards
// matched files to their tables on the remote host.
package main

import (
	"os"

	"github.com/datamoor/csvrelay/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
