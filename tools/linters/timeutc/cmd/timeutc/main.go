// Command timeutc reports time.Now() calls that skip .UTC().
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/rezkam/listly/tools/linters/timeutc"
)

func main() {
	singlechecker.Main(timeutc.Analyzer)
}
