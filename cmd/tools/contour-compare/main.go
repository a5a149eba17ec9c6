// Command contour-compare measures how far a generated contour file is
// from a reference contour file. Both inputs use the per-slice text
// format: one point per line, whitespace-separated coordinates.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/contour.report/internal/contour"
	"github.com/banshee-data/contour.report/internal/export"
)

var threshold = flag.Float64("threshold", 0, "Exit non-zero when the mean distance exceeds this value (0 disables)")

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <generated-contour> <reference-contour>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	generated, err := export.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to load generated contour: %v", err)
	}
	reference, err := export.ReadFile(flag.Arg(1))
	if err != nil {
		log.Fatalf("failed to load reference contour: %v", err)
	}
	if len(generated) == 0 || len(reference) == 0 {
		log.Fatal("both contours must contain at least one point")
	}

	cmp := contour.Compare(generated, reference)
	fmt.Printf("points: %d generated, %d reference\n", len(generated), len(reference))
	fmt.Printf("mean distance:      %.4f px\n", cmp.MeanDistance)
	fmt.Printf("hausdorff distance: %.4f px\n", cmp.HausdorffDistance)

	if *threshold > 0 && cmp.MeanDistance > *threshold {
		log.Fatalf("mean distance %.4f exceeds threshold %.4f", cmp.MeanDistance, *threshold)
	}
}
