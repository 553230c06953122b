// Package emitter renders a self-contained Go benchmark program for one
// bit-vector configuration.
//
// A program is rendered in three phases, always in this order: the preamble
// binds the bitVector alias to a concrete type, the protocol defines run, and
// the entry point defines main. The result is gofmt'ed, so rendering the same
// record twice gives identical bytes.
package emitter

import (
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/bvbench/configspace"
)

// ErrAlteredRecord is returned when a record does not match the table entry
// with its id.
var ErrAlteredRecord = errors.New("record differs from its configuration")

// Emitter renders benchmark programs.
type Emitter struct {
	bindings *Bindings
}

// New creates an Emitter. A nil bindings value selects DefaultBindings.
func New(bindings *Bindings) (*Emitter, error) {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	if err := bindings.Validate(); err != nil {
		return nil, err
	}
	return &Emitter{bindings: bindings.Clone()}, nil
}

// Bindings returns a copy of the emitter's bindings.
func (e *Emitter) Bindings() *Bindings {
	return e.bindings.Clone()
}

// Render returns the formatted source of the program for rec.
func (e *Emitter) Render(rec configspace.Record) ([]byte, error) {
	if rec.ID < 0 || rec.ID >= configspace.Len() {
		return nil, fmt.Errorf("%w: %d not in [0..%d]",
			configspace.ErrOutOfRange, rec.ID, configspace.Len()-1)
	}
	if !configspace.Same(rec) {
		return nil, fmt.Errorf("%w: %v", ErrAlteredRecord, rec)
	}

	phases := []func(configspace.Record) (string, error){
		e.Preamble,
		e.Protocol,
		e.EntryPoint,
	}

	var src strings.Builder
	for _, phase := range phases {
		text, err := phase(rec)
		if err != nil {
			return nil, err
		}
		src.WriteString(text)
	}

	out, err := format.Source([]byte(src.String()))
	if err != nil {
		return nil, fmt.Errorf("generated source for configuration %d does not parse: %w", rec.ID, err)
	}
	return out, nil
}

// Emit writes the program for rec to w.
func (e *Emitter) Emit(rec configspace.Record, w io.Writer) error {
	src, err := e.Render(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("failed to write program: %w", err)
	}
	return nil
}

// EmitFile writes the program for rec to path, creating parent directories
// as needed.
func (e *Emitter) EmitFile(rec configspace.Record, path string) error {
	src, err := e.Render(rec)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, src, 0644); err != nil {
		return fmt.Errorf("failed to write program file: %w", err)
	}
	return nil
}

// EmitAll writes one program per configuration to dir/<id>/main.go, in id
// order, and returns the written paths.
func (e *Emitter) EmitAll(dir string) ([]string, error) {
	records := configspace.All()
	paths := make([]string, 0, len(records))
	for _, rec := range records {
		path := filepath.Join(dir, fmt.Sprintf("%d", rec.ID), "main.go")
		if err := e.EmitFile(rec, path); err != nil {
			return paths, fmt.Errorf("configuration %d: %w", rec.ID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
