// ChronoLog - Evidence Timeline Builder
//
// ChronoLog turns heterogeneous evidence files into a uniform, filterable
// timeline of events, with export to JSON, CSV, and print-ready HTML.
package main

import (
	"os"

	"github.com/ccollicutt/chronolog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
