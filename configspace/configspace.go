// Package configspace enumerates the bit-vector configurations that bvbench
// can generate benchmark programs for.
//
// Ids 0 to 2 are hand-picked reference configurations. The rest is the cross
// product of Branches, Leaves, Buffers and SIMDFlags, iterated with the
// branch factor outermost and the SIMD flag innermost, so an id always maps
// to the same configuration.
package configspace

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOutOfRange is returned when an id does not name a configuration.
var ErrOutOfRange = errors.New("configuration id out of range")

// Value lists of the generic cross product, in enumeration order.
var (
	branches  = []int{8, 16, 32, 64, 128}
	leaves    = []int{1 << 12, 1 << 13, 1 << 14}
	buffers   = []int{8, 16, 32}
	simdFlags = []bool{true, false}
)

// Branches returns the branch factors of the cross product.
func Branches() []int { return append([]int(nil), branches...) }

// Leaves returns the leaf sizes of the cross product.
func Leaves() []int { return append([]int(nil), leaves...) }

// Buffers returns the buffer sizes of the cross product.
func Buffers() []int { return append([]int(nil), buffers...) }

// SIMDFlags returns the SIMD flags of the cross product.
func SIMDFlags() []bool { return append([]bool(nil), simdFlags...) }

// Record is one benchmark configuration.
type Record struct {
	// ID is the dense index of the record in the table.
	ID int `json:"id" yaml:"id"`

	// Variant selects the implementation family.
	Variant Variant `json:"variant" yaml:"variant"`

	// SIMD selects the SIMD specialization of the generic variant.
	SIMD bool `json:"simd" yaml:"simd"`

	// BranchFactor is the internal node fan-out of the generic variant.
	BranchFactor int `json:"branch_factor" yaml:"branch_factor"`

	// LeafSize is the maximum number of bits in a leaf block.
	LeafSize int `json:"leaf_size" yaml:"leaf_size"`

	// BufferSize is the write buffer capacity per leaf. Zero means unbuffered.
	BufferSize int `json:"buffer_size" yaml:"buffer_size"`
}

// Label is the value of the "type" output column.
func (r Record) Label() string {
	return r.Variant.String()
}

// Buffered reports whether leaves carry a write buffer.
func (r Record) Buffered() bool {
	return r.BufferSize > 0
}

// Validate checks that the record's parameters are usable.
func (r Record) Validate() error {
	if !r.Variant.Valid() {
		return fmt.Errorf("record %d: unknown variant %d", r.ID, int(r.Variant))
	}
	if r.BranchFactor <= 0 {
		return fmt.Errorf("record %d: branch_factor must be > 0", r.ID)
	}
	if r.LeafSize <= 0 {
		return fmt.Errorf("record %d: leaf_size must be > 0", r.ID)
	}
	if r.BufferSize < 0 {
		return fmt.Errorf("record %d: buffer_size must be >= 0", r.ID)
	}
	return nil
}

func (r Record) String() string {
	return fmt.Sprintf("%d\t%s\t%t\t%d\t%d\t%d",
		r.ID, r.Label(), r.SIMD, r.BranchFactor, r.LeafSize, r.BufferSize)
}

var (
	tableOnce sync.Once
	table     []Record
)

func records() []Record {
	tableOnce.Do(func() {
		table = build()
	})
	return table
}

func build() []Record {
	n := 3 + len(branches)*len(leaves)*len(buffers)*len(simdFlags)
	t := make([]Record, 0, n)

	t = append(t,
		Record{Variant: DynamicReference, BranchFactor: 8, LeafSize: 8192},
		Record{Variant: LeafReference, BranchFactor: 8, LeafSize: 8192},
		Record{Variant: LeafReference, BranchFactor: 8, LeafSize: 8192, BufferSize: 8},
	)

	for _, branch := range branches {
		for _, leaf := range leaves {
			for _, buffer := range buffers {
				for _, simd := range simdFlags {
					t = append(t, Record{
						Variant:      Generic,
						SIMD:         simd,
						BranchFactor: branch,
						LeafSize:     leaf,
						BufferSize:   buffer,
					})
				}
			}
		}
	}

	for i := range t {
		t[i].ID = i
	}
	return t
}

// Len returns the number of configurations.
func Len() int {
	return len(records())
}

// Resolve returns the configuration with the given id.
func Resolve(id int) (Record, error) {
	t := records()
	if id < 0 || id >= len(t) {
		return Record{}, fmt.Errorf("%w: %d not in [0..%d]", ErrOutOfRange, id, len(t)-1)
	}
	return t[id], nil
}

// All returns a copy of every configuration in id order.
func All() []Record {
	t := records()
	out := make([]Record, len(t))
	copy(out, t)
	return out
}

// Same reports whether r equals the table entry with r's id.
func Same(r Record) bool {
	t := records()
	return r.ID >= 0 && r.ID < len(t) && t[r.ID] == r
}

// Find returns the configurations accepted by keep, in id order.
func Find(keep func(Record) bool) []Record {
	var out []Record
	for _, r := range records() {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
