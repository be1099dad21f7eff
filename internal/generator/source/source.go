// Package source loads a target package and finds the type declarations
// marked with the //wideptr:pointee directive. It parses every Go file in
// the directory, type-checks the package, and classifies each marked
// declaration into one of the two generation modes: aggregate composition
// for structs, dynamic-interface registration for interfaces.
package source

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wideptr/wideptr/internal/generator/errors"
)

// Directive marks a type declaration for capability generation.
const Directive = "//wideptr:pointee"

// Kind selects the generation mode, determined by the declared kind.
type Kind int

const (
	// KindAggregate is a struct whose trailing field is dynamically sized.
	KindAggregate Kind = iota
	// KindInterface is a method-set interface registered for dynamic
	// decomposition.
	KindInterface
)

// TailCategory classifies an aggregate's trailing field.
type TailCategory int

const (
	// TailSlice is a homogeneous sequence; the token is an element count.
	TailSlice TailCategory = iota
	// TailString is a text buffer; the token is a byte count.
	TailString
	// TailInterface is a dynamic-interface handle; the token is a
	// dispatch-table reference.
	TailInterface
)

// TypeParam is one type parameter of a generic declaration.
type TypeParam struct {
	Name       string
	Constraint string
}

// Decl is one validated capability declaration ready for emission.
type Decl struct {
	Name       string
	Exported   bool
	Kind       Kind
	Pos        token.Position
	TypeParams []TypeParam

	// Aggregate mode only.
	TailField string
	TailCat   TailCategory
	TailElem  string // slice element type, TailSlice only
	TailType  string // interface type of the tail, TailInterface only

	// Imports are extra packages referenced by the emitted type text.
	Imports []string
}

// Package is the analyzed target package.
type Package struct {
	Name  string
	Dir   string
	Fset  *token.FileSet
	Types *types.Package
	Decls []Decl
}

// Load parses and type-checks the Go package in dir and returns its
// validated capability declarations. The previously generated output file,
// if present, is excluded so a rerun never sees its own declarations.
// The returned list carries every diagnostic of the run; generation must
// not proceed when List.HasErrors reports true.
func Load(dir, output string, log *zap.Logger) (*Package, errors.List) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &scanner{
		dir:    dir,
		output: output,
		fset:   token.NewFileSet(),
		log:    log,
	}
	return s.load()
}

type scanner struct {
	dir    string
	output string
	fset   *token.FileSet
	log    *zap.Logger

	typesPkg *types.Package
	diags    errors.List
}

func (s *scanner) load() (*Package, errors.List) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.go"))
	if err != nil {
		s.diags = append(s.diags, errors.NewNoGoFiles(s.dir))
		return nil, s.diags
	}

	var files []*ast.File
	for _, path := range paths {
		base := filepath.Base(path)
		if strings.HasSuffix(base, "_test.go") || base == s.output {
			continue
		}

		file, err := parser.ParseFile(s.fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			s.diags = append(s.diags, errors.NewParseFailed(
				errors.Position{File: path}, err.Error()))
			continue
		}
		files = append(files, file)
		s.log.Debug("parsed file", zap.String("file", base))
	}

	if len(files) == 0 {
		s.diags = append(s.diags, errors.NewNoGoFiles(s.dir))
		return nil, s.diags
	}
	if s.diags.HasErrors() {
		return nil, s.diags
	}

	// Function bodies are irrelevant to capability analysis, so their
	// checking is skipped and any stray type errors inside them are
	// reported as warnings rather than blocking generation.
	conf := types.Config{
		Importer:         importer.ForCompiler(s.fset, "source", nil),
		IgnoreFuncBodies: true,
		Error: func(err error) {
			if terr, ok := err.(types.Error); ok && terr.Soft {
				s.log.Debug("soft type error", zap.String("err", terr.Msg))
				return
			}
			s.diags = append(s.diags, softTypeError(err))
		},
	}

	pkg, _ := conf.Check(files[0].Name.Name, s.fset, files, nil)
	s.typesPkg = pkg

	decls := s.collect(files)
	if s.diags.HasErrors() {
		return nil, s.diags
	}

	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })

	return &Package{
		Name:  pkg.Name(),
		Dir:   s.dir,
		Fset:  s.fset,
		Types: pkg,
		Decls: decls,
	}, s.diags
}

// softTypeError downgrades a type-check failure to a warning. The package
// may still carry enough information to classify the marked declarations;
// classification reports its own hard error when it does not.
func softTypeError(err error) *errors.GenError {
	e := errors.NewTypeCheckFailed(errors.Position{}, err.Error())
	if terr, ok := err.(types.Error); ok {
		e.Pos = errors.At(terr.Fset.Position(terr.Pos))
	}
	e.Severity = errors.SeverityWarning
	return e
}

// collect walks every declaration, gathers directive-marked type specs, and
// rejects directives placed on anything else.
func (s *scanner) collect(files []*ast.File) []Decl {
	var decls []Decl
	seen := make(map[string]token.Position)

	for _, file := range files {
		for _, d := range file.Decls {
			switch d := d.(type) {
			case *ast.FuncDecl:
				if hasDirective(d.Doc) {
					s.diags = append(s.diags, errors.NewBadDeclKind(
						errors.At(s.fset.Position(d.Pos())), d.Name.Name))
				}
			case *ast.GenDecl:
				declMarked := hasDirective(d.Doc)
				if declMarked && d.Tok != token.TYPE {
					s.diags = append(s.diags, errors.NewBadDeclKind(
						errors.At(s.fset.Position(d.Pos())), d.Tok.String()))
					continue
				}
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if !declMarked && !hasDirective(ts.Doc) {
						continue
					}
					if decl, ok := s.analyze(ts, seen); ok {
						decls = append(decls, decl)
					}
				}
			}
		}
	}

	return decls
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(c.Text)
		if text == Directive || strings.HasPrefix(text, Directive+" ") {
			return true
		}
	}
	return false
}
