// Command bvgen generates bit-vector benchmark programs.
//
// Usage:
//
//	bvgen <id> <output.go>
//
// writes the benchmark program for configuration <id> to <output.go>. Run
// "bvgen list" to see the configurations and "bvgen --help" for the other
// commands.
//
// Example:
//
//	# Generate, build and run the dynamic reference benchmark
//	bvgen 0 bench/dyn/main.go
//	go run ./bench/dyn 42 10000000 5 > dyn.tsv
//	bvgen check dyn.tsv
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
