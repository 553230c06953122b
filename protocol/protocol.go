// Package protocol defines the benchmark procedure that every generated
// program runs: its fixed sizes, its growth schedule, its command-line
// rules, and the layout of the rows it prints.
//
// The emitter renders these values into generated source, so a change here
// changes every program generated afterwards.
package protocol

import (
	"errors"
	"fmt"
	"math"
)

const (
	// StartSize is the population the growth schedule starts from.
	StartSize uint64 = 1_000_000

	// WarmupInserts is the number of random inserts done before the first
	// step, independent of the requested size and step count.
	WarmupInserts uint64 = 900_000

	// BatchOps is the number of operations timed per measured operation
	// kind and step.
	BatchOps uint64 = 100_000

	// MinTotalSize is the smallest accepted final population.
	MinTotalSize uint64 = 10_000_000

	// DefaultTotalSize is used when no size argument is given.
	DefaultTotalSize uint64 = 10_000_000

	// DefaultSteps is used when no step argument is given.
	DefaultSteps uint64 = 100
)

var (
	// ErrNoArgs means the program was started without a seed. Generated
	// programs treat it as a successful no-op.
	ErrNoArgs = errors.New("no seed argument")

	// ErrInvalidSize means the requested final population is below
	// MinTotalSize.
	ErrInvalidSize = errors.New("invalid size argument")
)

// Params are the run-time inputs of one benchmark run.
type Params struct {
	Seed      uint64
	TotalSize uint64
	Steps     uint64
}

// DefaultParams returns params with the documented defaults and a zero seed.
func DefaultParams() Params {
	return Params{
		TotalSize: DefaultTotalSize,
		Steps:     DefaultSteps,
	}
}

// Validate checks the size lower bound.
func (p Params) Validate() error {
	if p.TotalSize < MinTotalSize {
		return fmt.Errorf("%w: %d < %d", ErrInvalidSize, p.TotalSize, MinTotalSize)
	}
	return nil
}

// ParseArgs reads "program <seed> [total_size] [steps]" the way generated
// programs do. args includes the program name, as in os.Args.
//
// A number is read from its leading decimal digits; an argument without any
// leaves the corresponding value at its default.
func ParseArgs(args []string) (Params, error) {
	p := DefaultParams()
	if len(args) < 2 {
		return p, ErrNoArgs
	}

	if v, ok := ScanUint(args[1]); ok {
		p.Seed = v
	}
	if len(args) > 2 {
		if v, ok := ScanUint(args[2]); ok {
			p.TotalSize = v
		}
		if err := p.Validate(); err != nil {
			return p, err
		}
	}
	if len(args) > 3 {
		if v, ok := ScanUint(args[3]); ok {
			p.Steps = v
		}
	}
	return p, nil
}

// StartExp is log2(StartSize).
func StartExp() float64 {
	return math.Log2(float64(StartSize))
}

// Delta is the per-step increase of log2(population).
func Delta(totalSize, steps uint64) float64 {
	return (math.Log2(float64(totalSize)) - StartExp()) / float64(steps)
}

// Target returns the population to reach at the given step.
func Target(startExp, delta float64, step uint64) uint64 {
	return uint64(math.Round(math.Pow(2, startExp+delta*float64(step))))
}

// Checkpoint is one measured step of a run.
type Checkpoint struct {
	Step   uint64
	Target uint64
}

// Schedule returns the checkpoints for steps 1..steps. Targets are spaced
// evenly in log2, ending at totalSize.
func Schedule(totalSize, steps uint64) ([]Checkpoint, error) {
	if totalSize < MinTotalSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidSize, totalSize, MinTotalSize)
	}
	if steps == 0 {
		return nil, nil
	}

	startExp := StartExp()
	delta := Delta(totalSize, steps)

	out := make([]Checkpoint, 0, steps)
	for step := uint64(1); step <= steps; step++ {
		out = append(out, Checkpoint{Step: step, Target: Target(startExp, delta, step)})
	}
	return out, nil
}
