// cmd/tools/filterconfig-lint/main.go
//
// Validates category filter configuration documents against the schema
// before they are loaded into the catalog database.
//
// Usage:
//
//	filterconfig-lint config1.json [config2.json ...]
package main

import (
	"flag"
	"fmt"
	"os"

	"storefront-filters/pkg/filterconfig"
)

func main() {
	quiet := flag.Bool("quiet", false, "suppress per-file OK output")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: filterconfig-lint [-quiet] <file.json> [...]")
		os.Exit(2)
	}

	failed := 0
	for _, path := range files {
		doc, err := filterconfig.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		if !*quiet {
			fmt.Printf("%s: OK (%d filters)\n", path, len(doc.Filters))
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files invalid\n", failed, len(files))
		os.Exit(1)
	}
}
