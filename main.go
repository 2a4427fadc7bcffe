// JobRadar is a console for the JobRadar job aggregation backend: it watches
// crawl jobs live, searches the aggregated index and manages data sources.
package main

import (
	"fmt"
	"os"

	"github.com/vietjobs/jobradar-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
