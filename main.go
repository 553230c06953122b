// Package main provides the entry point for bvbench.
// bvbench generates benchmark programs for dynamic bit vectors.
//
// For the generator, use: go run ./cmd/bvgen
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("bvbench - Dynamic Bit Vector Benchmark Generator")
	fmt.Println("")
	fmt.Println("Usage: bvgen [--bindings file.yaml] <id> <output.go>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list           List the configurations")
	fmt.Println("  plan           Print the growth schedule of a run")
	fmt.Println("  all <dir>      Generate every configuration")
	fmt.Println("  check <file>   Validate the output of a generated program")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/bvgen --help' for details.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/bvgen' instead.")
	}
}
