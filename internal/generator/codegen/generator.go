// Package codegen emits capability declarations for the types collected by
// the source scanner. It produces one gofmt-formatted Go file per package,
// containing a Pointee declaration for every marked aggregate and interface.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wideptr/wideptr/internal/generator/errors"
	"github.com/wideptr/wideptr/internal/generator/source"
)

// DefaultOutput is the file name generated code is written to unless the
// configuration overrides it.
const DefaultOutput = "wideptr_gen.go"

const wideptrImport = "github.com/wideptr/wideptr"

// Generator assembles the generated source for one package.
type Generator struct {
	buf     *bytes.Buffer
	indent  int
	imports map[string]bool
	log     *zap.Logger
}

// NewGenerator creates a code generator. A nil logger disables tracing.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		buf:     &bytes.Buffer{},
		imports: make(map[string]bool),
		log:     log,
	}
}

// File generates the complete output file for the package. The result is
// gofmt-formatted; a formatting failure indicates a generator bug and is
// reported as a GEN200 diagnostic.
func (g *Generator) File(pkg *source.Package) (string, *errors.GenError) {
	g.buf.Reset()
	g.imports = map[string]bool{wideptrImport: true}

	for _, decl := range pkg.Decls {
		for _, path := range decl.Imports {
			g.imports[path] = true
		}
	}

	g.writeLine("// Code generated by wideptr. DO NOT EDIT.")
	g.writeLine("")
	g.writeLine("package %s", pkg.Name)
	g.writeLine("")
	g.writeImports()

	for _, decl := range pkg.Decls {
		g.writeLine("")
		switch decl.Kind {
		case source.KindAggregate:
			g.log.Debug("emitting aggregate capability", zap.String("type", decl.Name))
			g.aggregate(decl)
		case source.KindInterface:
			g.log.Debug("emitting interface capability", zap.String("type", decl.Name))
			g.iface(decl)
		}
	}

	formatted, err := format.Source(g.buf.Bytes())
	if err != nil {
		return "", errors.NewEmitFailed(err.Error())
	}
	return string(formatted), nil
}

func (g *Generator) writeImports() {
	paths := make([]string, 0, len(g.imports))
	for path := range g.imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	if len(paths) == 1 {
		g.writeLine("import %q", paths[0])
		return
	}
	g.writeLine("import (")
	g.indent++
	for _, path := range paths {
		g.writeLine("%q", path)
	}
	g.indent--
	g.writeLine(")")
}

func (g *Generator) writeLine(format string, args ...interface{}) {
	if format == "" {
		g.buf.WriteString("\n")
		return
	}
	g.buf.WriteString(strings.Repeat("\t", g.indent))
	fmt.Fprintf(g.buf, format, args...)
	g.buf.WriteString("\n")
}
