package emitter

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidBindings is returned when a Bindings value cannot produce a
// compilable program.
var ErrInvalidBindings = errors.New("invalid bindings")

// Bindings tells generated programs where the bit-vector implementations
// live.
type Bindings struct {
	// PackageName is the package clause of generated programs.
	// Default: main.
	PackageName string `yaml:"package_name"`

	// GenericImport is the import path of the tree-shaped bit vector.
	GenericImport string `yaml:"generic_import"`

	// GenericPackage is the identifier the generic package is imported as.
	// Default: bv.
	GenericPackage string `yaml:"generic_package"`

	// ReferenceImport is the import path of the reference library that
	// provides the dynamic and leaf reference bit vectors.
	ReferenceImport string `yaml:"reference_import"`

	// ReferencePackage is the identifier the reference package is imported
	// as. Default: dyn.
	ReferencePackage string `yaml:"reference_package"`
}

// DefaultBindings returns the bindings used when no bindings file is given.
func DefaultBindings() *Bindings {
	return &Bindings{
		PackageName:      "main",
		GenericImport:    "github.com/sarchlab/bvbench-impl/bv",
		GenericPackage:   "bv",
		ReferenceImport:  "github.com/sarchlab/bvbench-impl/dyn",
		ReferencePackage: "dyn",
	}
}

// LoadBindings loads Bindings from a YAML file. Keys missing from the file
// keep their default values.
func LoadBindings(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bindings file: %w", err)
	}

	b := DefaultBindings()
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to parse bindings: %w", err)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Save writes the bindings to a YAML file.
func (b *Bindings) Save(path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to serialize bindings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bindings file: %w", err)
	}

	return nil
}

// Validate checks that every name is a Go identifier and every import path
// is non-empty.
func (b *Bindings) Validate() error {
	idents := []struct{ key, value string }{
		{"package_name", b.PackageName},
		{"generic_package", b.GenericPackage},
		{"reference_package", b.ReferencePackage},
	}
	for _, id := range idents {
		if !token.IsIdentifier(id.value) {
			return fmt.Errorf("%w: %s %q is not an identifier", ErrInvalidBindings, id.key, id.value)
		}
	}

	paths := []struct{ key, value string }{
		{"generic_import", b.GenericImport},
		{"reference_import", b.ReferenceImport},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" || strings.ContainsAny(p.value, "\"` \t\n") {
			return fmt.Errorf("%w: %s %q is not an import path", ErrInvalidBindings, p.key, p.value)
		}
	}
	return nil
}

// Clone returns a copy of the bindings.
func (b *Bindings) Clone() *Bindings {
	c := *b
	return &c
}
