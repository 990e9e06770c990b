// plothistory converts one or more training history files (parquet, saved by the trainer with --history)
// to an HTML page with the plots of the training.
//
// Example:
//
//	$ go run ./cmd/plothistory --output=history.html run1.parquet run2.parquet
package main

import (
	"flag"
	"fmt"
	"github.com/janpfeifer/dropfour/internal/history"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
	"path/filepath"
	"strings"
)

var (
	flagOutput = flag.String("output", "history.html", "HTML file to write the plots to. "+
		"With more than one input file, the input base name is added as a suffix.")
	flagTitle = flag.String("title", "", "Title of the plots. Defaults to the run id.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() == 0 {
		klog.Exitf("Usage: plothistory [--output=history.html] <history.parquet> [<history.parquet> ...]")
	}
	for _, input := range flag.Args() {
		records := must.M1(history.ReadParquet(input))
		if len(records) == 0 {
			klog.Warningf("%s has no records, skipping", input)
			continue
		}
		title := *flagTitle
		if title == "" {
			title = fmt.Sprintf("Training %s", records[0].RunID)
		}
		output := *flagOutput
		if flag.NArg() > 1 {
			ext := filepath.Ext(output)
			base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			output = strings.TrimSuffix(output, ext) + "_" + base + ext
		}
		must.M(history.WritePlotFile(output, records, title))
		fmt.Printf("%s: %d records -> %s\n", input, len(records), output)
	}
}
