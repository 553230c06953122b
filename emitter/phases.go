package emitter

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/sarchlab/bvbench/configspace"
	"github.com/sarchlab/bvbench/protocol"
)

func quoteGo(s string) string {
	return strconv.Quote(s)
}

type preambleData struct {
	ID           int
	Label        string
	SIMD         bool
	BufferSize   int
	BranchFactor int
	LeafSize     int
	PackageName  string
	ImportName   string
	ImportPath   string
	TypeExpr     string
	Constructor  string
}

type protocolData struct {
	StartSize     uint64
	WarmupInserts uint64
	BatchOps      uint64
	SelectOffset  uint64
	Label         string
	SIMD          bool
	BufferSize    int
	BranchFactor  int
	LeafSize      int
	Header        string
	RowFormat     string
	LatencyFmt    string
	LatencyPrec   int
}

type entryPointData struct {
	DefaultTotalSize uint64
	DefaultSteps     uint64
	MinTotalSize     uint64
	ScanUint         string
}

// typeBinding picks the concrete bit-vector type and its constructor.
func (e *Emitter) typeBinding(rec configspace.Record) (importName, importPath, typeExpr, ctor string) {
	b := e.bindings
	switch rec.Variant {
	case configspace.DynamicReference:
		return b.ReferencePackage, b.ReferenceImport,
			"*" + b.ReferencePackage + ".SucBV",
			b.ReferencePackage + ".NewSucBV()"
	case configspace.LeafReference:
		name := "UnbufferedSucBV"
		if rec.Buffered() {
			name = "BufferedSucBV"
		}
		return b.ReferencePackage, b.ReferenceImport,
			"*" + b.ReferencePackage + "." + name,
			b.ReferencePackage + ".New" + name + "()"
	case configspace.Generic:
		return b.GenericPackage, b.GenericImport,
			"*" + b.GenericPackage + ".SimpleBV",
			fmt.Sprintf("%s.NewSimpleBV(%d, %d, %d, %t)",
				b.GenericPackage, rec.BufferSize, rec.LeafSize, rec.BranchFactor, rec.SIMD)
	}
	panic(fmt.Sprintf("emitter: unhandled variant %d", int(rec.Variant)))
}

// Preamble renders the package clause, the imports, and the bitVector alias
// that the rest of the program is written against.
func (e *Emitter) Preamble(rec configspace.Record) (string, error) {
	importName, importPath, typeExpr, ctor := e.typeBinding(rec)
	return execute(preambleTemplate, preambleData{
		ID:           rec.ID,
		Label:        rec.Label(),
		SIMD:         rec.SIMD,
		BufferSize:   rec.BufferSize,
		BranchFactor: rec.BranchFactor,
		LeafSize:     rec.LeafSize,
		PackageName:  e.bindings.PackageName,
		ImportName:   importName,
		ImportPath:   importPath,
		TypeExpr:     typeExpr,
		Constructor:  ctor,
	})
}

// Protocol renders the run function that performs the benchmark.
func (e *Emitter) Protocol(rec configspace.Record) (string, error) {
	return execute(protocolTemplate, protocolData{
		StartSize:     protocol.StartSize,
		WarmupInserts: protocol.WarmupInserts,
		BatchOps:      protocol.BatchOps,
		SelectOffset:  rec.Variant.SelectOffset(),
		Label:         rec.Label(),
		SIMD:          rec.SIMD,
		BufferSize:    rec.BufferSize,
		BranchFactor:  rec.BranchFactor,
		LeafSize:      rec.LeafSize,
		Header:        protocol.Header(),
		RowFormat:     protocol.RowFormat(),
		LatencyFmt:    strconv.QuoteRune(rune(protocol.LatencyFmt)),
		LatencyPrec:   protocol.LatencyPrec,
	})
}

// EntryPoint renders main, which parses the command line and calls run.
func (e *Emitter) EntryPoint(configspace.Record) (string, error) {
	scan, err := protocol.ScanUintSource()
	if err != nil {
		return "", err
	}
	return execute(entryPointTemplate, entryPointData{
		DefaultTotalSize: protocol.DefaultTotalSize,
		DefaultSteps:     protocol.DefaultSteps,
		MinTotalSize:     protocol.MinTotalSize,
		ScanUint:         scan,
	})
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
