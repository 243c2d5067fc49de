// Package main provides the catty-iri binary entry point.
// catty-iri manages the Catty ontology IRI registry and rewrites
// JSON-LD documents so they are consistent with exactly one of the two
// deployment environments (localhost or production).
package main

import (
	"fmt"
	"os"
	"runtime"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
