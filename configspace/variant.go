package configspace

import "fmt"

// Variant identifies which family of bit-vector implementation a
// configuration benchmarks.
type Variant int

const (
	// DynamicReference is the plain succinct bit vector from the reference
	// library.
	DynamicReference Variant = iota

	// LeafReference is the reference library's leaf-buffered bit vector.
	// Its buffered or unbuffered form is picked by the buffer size.
	LeafReference

	// Generic is the tree-shaped bit vector parameterized by buffer size,
	// leaf size, branch factor, and SIMD flag.
	Generic
)

var variantLabels = map[Variant]string{
	DynamicReference: "dyn",
	LeafReference:    "leaf",
	Generic:          "generic",
}

// String returns the label written in the "type" column of benchmark output.
func (v Variant) String() string {
	if label, ok := variantLabels[v]; ok {
		return label
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant converts a label produced by String back into a Variant.
func ParseVariant(label string) (Variant, error) {
	for v, l := range variantLabels {
		if l == label {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q", label)
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	_, ok := variantLabels[v]
	return ok
}

// IsReference reports whether v comes from the reference library. Reference
// variants ignore the SIMD flag and the branch factor.
func (v Variant) IsReference() bool {
	switch v {
	case DynamicReference, LeafReference:
		return true
	case Generic:
		return false
	}
	panic(fmt.Sprintf("configspace: unhandled variant %d", int(v)))
}

// SelectOffset is added to a 0-based rank before calling Select. The
// reference library numbers set bits from 0; the generic bit vector numbers
// them from 1.
func (v Variant) SelectOffset() uint64 {
	switch v {
	case DynamicReference, LeafReference:
		return 0
	case Generic:
		return 1
	}
	panic(fmt.Sprintf("configspace: unhandled variant %d", int(v)))
}

// MarshalText encodes the variant as its label.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("unknown variant %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a label written by MarshalText.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
