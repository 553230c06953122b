package protocol

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"sync"
)

//go:embed scan.go
var scanSource []byte

var (
	scanOnce sync.Once
	scanFunc string
	scanErr  error
)

// ScanUintSource returns the source of ScanUint renamed to scanUint, without
// its doc comment, for inclusion in generated programs.
func ScanUintSource() (string, error) {
	scanOnce.Do(func() {
		scanFunc, scanErr = extractFunc(scanSource, "ScanUint", "scanUint")
	})
	return scanFunc, scanErr
}

func extractFunc(src []byte, name, rename string) (string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "scan.go", src, 0)
	if err != nil {
		return "", fmt.Errorf("failed to parse embedded source: %w", err)
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name.Name != name {
			continue
		}
		fn.Name.Name = rename

		var buf bytes.Buffer
		if err := format.Node(&buf, fset, fn); err != nil {
			return "", fmt.Errorf("failed to print %s: %w", name, err)
		}
		return buf.String(), nil
	}
	return "", fmt.Errorf("function %s not found in embedded source", name)
}
