// Command import normalises a diagram file: it applies the load-time fixes
// and writes the model back out as canonical JSON.
package main

import (
	"flag"
	"fmt"
	"os"

	"isoedit/export"
	"isoedit/importer"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Input file path")
		output    = flag.String("o", "", "Output file path (default: stdout)")
		quiet     = flag.Bool("q", false, "Do not report applied fixes")
	)

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	m, fixes, err := importer.LoadWithFixes(content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing diagram: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		for _, fix := range fixes {
			fmt.Fprintf(os.Stderr, "fixed: %s\n", fix)
		}
	}

	jsonData, err := export.NewJSONExporter().Export(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting to JSON: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, jsonData, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully imported diagram to %s (%d fix(es))\n", *output, len(fixes))
	} else {
		os.Stdout.Write(jsonData)
	}
}
