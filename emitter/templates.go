package emitter

import "text/template"

var funcs = template.FuncMap{
	"quote": func(s string) string {
		return quoteGo(s)
	},
}

var preambleTemplate = template.Must(template.New("preamble").Funcs(funcs).Parse(`// Code generated by bvgen. DO NOT EDIT.

// Benchmark program for configuration {{ .ID }}: {{ .Label }} bit vector,
// simd={{ .SIMD }} buffer={{ .BufferSize }} branch={{ .BranchFactor }} leaf={{ .LeafSize }}.
//
// Usage: program <seed> [total_size] [steps]
package {{ .PackageName }}

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"strconv"
	"syscall"
	"time"

	{{ .ImportName }} {{ quote .ImportPath }}
)

type bitVector = {{ .TypeExpr }}

func newBitVector() bitVector {
	return {{ .Constructor }}
}
`))

var protocolTemplate = template.Must(template.New("protocol").Funcs(funcs).Parse(`
const (
	startSize     = {{ .StartSize }}
	warmupInserts = {{ .WarmupInserts }}
	batchOps      = {{ .BatchOps }}
	selectOffset  = {{ .SelectOffset }}
)

const (
	benchType    = {{ quote .Label }}
	benchSIMD    = {{ .SIMD }}
	bufferSize   = {{ .BufferSize }}
	branchFactor = {{ .BranchFactor }}
	leafSize     = {{ .LeafSize }}
)

const (
	header    = {{ quote .Header }}
	rowFormat = {{ quote .RowFormat }}
)

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// latency returns the average time of one of batchOps operations in
// microseconds.
func latency(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Microseconds())/batchOps, {{ .LatencyFmt }}, {{ .LatencyPrec }}, 64)
}

// maxRSSBytes returns the peak resident set size. It returns 0 and reports
// to diag when getrusage fails.
func maxRSSBytes(diag io.Writer) uint64 {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		fmt.Fprintf(diag, "getrusage failed, resident_bytes is 0: %v\n", err)
		return 0
	}
	if runtime.GOOS == "darwin" {
		return uint64(ru.Maxrss)
	}
	return uint64(ru.Maxrss) * 1024
}

func run(w, diag io.Writer, seed, size, steps uint64) {
	v := newBitVector()
	rng := rand.New(rand.NewPCG(seed, seed))

	startExp := math.Log2(startSize)
	delta := (math.Log2(float64(size)) - startExp) / float64(steps)
	fmt.Fprintf(diag, "startexp: %g. delta: %g\n", startExp, delta)

	loc := make([]uint64, 0, batchOps)
	val := make([]bool, 0, batchOps)

	fmt.Fprintln(w, header)

	for i := uint64(0); i < warmupInserts; i++ {
		pos := rng.Uint64() % (i + 1)
		v.Insert(pos, rng.Uint64()%2 == 1)
	}

	for step := uint64(1); step <= steps; step++ {
		target := uint64(math.Round(math.Pow(2, startExp+delta*float64(step))))
		var checksum uint64

		for i := v.Size(); i < target; i++ {
			pos := rng.Uint64() % (i + 1)
			v.Insert(pos, rng.Uint64()%2 == 1)
		}

		loc = loc[:0]
		for i := target; i > target-batchOps; i-- {
			loc = append(loc, rng.Uint64()%i)
		}
		start := time.Now()
		for _, p := range loc {
			v.Remove(p)
		}
		removeLatency := latency(time.Since(start))

		loc, val = loc[:0], val[:0]
		for i := v.Size(); i < target; i++ {
			loc = append(loc, rng.Uint64()%(i+1))
			val = append(val, rng.Uint64()%2 == 1)
		}
		start = time.Now()
		for j, p := range loc {
			v.Insert(p, val[j])
		}
		insertLatency := latency(time.Since(start))

		loc, val = loc[:0], val[:0]
		for i := uint64(0); i < batchOps; i++ {
			loc = append(loc, rng.Uint64()%target)
			val = append(val, rng.Uint64()%2 == 1)
		}
		start = time.Now()
		for j, p := range loc {
			v.Set(p, val[j])
		}
		setLatency := latency(time.Since(start))

		loc = loc[:0]
		for i := uint64(0); i < batchOps; i++ {
			loc = append(loc, rng.Uint64()%target)
		}
		start = time.Now()
		for _, p := range loc {
			checksum += boolBit(v.At(p))
		}
		accessLatency := latency(time.Since(start))

		loc = loc[:0]
		for i := uint64(0); i < batchOps; i++ {
			loc = append(loc, rng.Uint64()%target)
		}
		start = time.Now()
		for _, p := range loc {
			checksum += v.Rank(p)
		}
		rankLatency := latency(time.Since(start))

		limit := v.Rank(target - 1)
		loc = loc[:0]
		for i := uint64(0); i < batchOps; i++ {
			loc = append(loc, rng.Uint64()%limit)
		}
		start = time.Now()
		for _, p := range loc {
			checksum += v.Select(p + selectOffset)
		}
		selectLatency := latency(time.Since(start))

		fmt.Fprintf(w, rowFormat+"\n",
			benchType, benchSIMD, bufferSize, branchFactor, leafSize, seed, target,
			removeLatency, insertLatency, setLatency, accessLatency, rankLatency, selectLatency,
			v.BitSize(), maxRSSBytes(diag), checksum)
	}
}
`))

var entryPointTemplate = template.Must(template.New("entry").Funcs(funcs).Parse(`
func main() {
	if len(os.Args) < 2 {
		return
	}

	var seed uint64
	size := uint64({{ .DefaultTotalSize }})
	steps := uint64({{ .DefaultSteps }})

	if n, ok := scanUint(os.Args[1]); ok {
		seed = n
	}
	if len(os.Args) > 2 {
		if n, ok := scanUint(os.Args[2]); ok {
			size = n
		}
		if size < {{ .MinTotalSize }} {
			fmt.Fprintln(os.Stderr, "Invalid size argument")
			os.Exit(1)
		}
	}
	if len(os.Args) > 3 {
		if n, ok := scanUint(os.Args[3]); ok {
			steps = n
		}
	}

	run(os.Stdout, os.Stderr, seed, size, steps)
}

// scanUint parses the leading unsigned decimal number of s.
{{ .ScanUint }}
`))
