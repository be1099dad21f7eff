package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wideptr/wideptr/internal/generator/errors"
	"github.com/wideptr/wideptr/internal/generator/source"
)

func load(t *testing.T, files map[string]string) (*source.Package, errors.List) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return source.Load(dir, "wideptr_gen.go", zap.NewNop())
}

func TestLoadAggregateSlice(t *testing.T) {
	pkg, diags := load(t, map[string]string{"block.go": `package demo

//wideptr:pointee
type Block struct {
	Checksum uint64
	Elems    []int32
}
`})
	require.False(t, diags.HasErrors())
	require.NotNil(t, pkg)
	require.Equal(t, "demo", pkg.Name)
	require.Len(t, pkg.Decls, 1)

	d := pkg.Decls[0]
	require.Equal(t, "Block", d.Name)
	require.True(t, d.Exported)
	require.Equal(t, source.KindAggregate, d.Kind)
	require.Equal(t, "Elems", d.TailField)
	require.Equal(t, source.TailSlice, d.TailCat)
	require.Equal(t, "int32", d.TailElem)
	require.Empty(t, d.TypeParams)
}

func TestLoadAggregateNamedTails(t *testing.T) {
	pkg, diags := load(t, map[string]string{"named.go": `package demo

type ID string

type Names []ID

//wideptr:pointee
type Label struct {
	Kind uint8
	Text ID
}

//wideptr:pointee
type Roster struct {
	Seq   uint32
	Items Names
}
`})
	require.False(t, diags.HasErrors())
	require.Len(t, pkg.Decls, 2)

	label := pkg.Decls[0]
	require.Equal(t, "Label", label.Name)
	require.Equal(t, source.TailString, label.TailCat)

	roster := pkg.Decls[1]
	require.Equal(t, "Roster", roster.Name)
	require.Equal(t, source.TailSlice, roster.TailCat)
	require.Equal(t, "ID", roster.TailElem)
}

func TestLoadAggregateInterfaceTail(t *testing.T) {
	pkg, diags := load(t, map[string]string{"fail.go": `package demo

//wideptr:pointee
type Failure struct {
	Op    string2
	Cause error
}

type string2 = string
`})
	// Alias in a non-trailing position is fine; only the tail matters.
	require.False(t, diags.HasErrors())
	require.Len(t, pkg.Decls, 1)

	d := pkg.Decls[0]
	require.Equal(t, source.KindAggregate, d.Kind)
	require.Equal(t, source.TailInterface, d.TailCat)
	require.Equal(t, "Cause", d.TailField)
	require.Equal(t, "error", d.TailType)
}

func TestLoadGenericAggregate(t *testing.T) {
	pkg, diags := load(t, map[string]string{"pair.go": `package demo

//wideptr:pointee
type Pair[T any] struct {
	Head int
	Tail []T
}
`})
	require.False(t, diags.HasErrors())
	require.Len(t, pkg.Decls, 1)

	d := pkg.Decls[0]
	require.Equal(t, source.KindAggregate, d.Kind)
	require.Equal(t, source.TailSlice, d.TailCat)
	require.Equal(t, "T", d.TailElem)
	require.Len(t, d.TypeParams, 1)
	require.Equal(t, "T", d.TypeParams[0].Name)
	require.NotEmpty(t, d.TypeParams[0].Constraint)
}

func TestLoadInterface(t *testing.T) {
	pkg, diags := load(t, map[string]string{"shape.go": `package demo

//wideptr:pointee
type Shape interface {
	Area() float64
	Perimeter() float64
}
`})
	require.False(t, diags.HasErrors())
	require.Len(t, pkg.Decls, 1)

	d := pkg.Decls[0]
	require.Equal(t, "Shape", d.Name)
	require.Equal(t, source.KindInterface, d.Kind)
}

func TestRejections(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{
			name: "directive on var",
			src: `package demo

//wideptr:pointee
var Count int
`,
			code: errors.ErrBadDeclKind,
		},
		{
			name: "directive on func",
			src: `package demo

//wideptr:pointee
func Nop() {}
`,
			code: errors.ErrBadDeclKind,
		},
		{
			name: "directive on basic type",
			src: `package demo

//wideptr:pointee
type Count int
`,
			code: errors.ErrBadDeclKind,
		},
		{
			name: "directive on alias",
			src: `package demo

type Real struct {
	Tail []byte
}

//wideptr:pointee
type Fake = Real
`,
			code: errors.ErrAliasDecl,
		},
		{
			name: "fixed-size tail",
			src: `package demo

//wideptr:pointee
type Point struct {
	X int
	Y int
}
`,
			code: errors.ErrFixedSizeTail,
		},
		{
			name: "ambiguous generic tail",
			src: `package demo

//wideptr:pointee
type Holder[T any] struct {
	Tag  uint8
	Item T
}
`,
			code: errors.ErrAmbiguousTail,
		},
		{
			name: "no fields",
			src: `package demo

//wideptr:pointee
type Empty struct{}
`,
			code: errors.ErrNoFields,
		},
		{
			name: "constraint interface",
			src: `package demo

//wideptr:pointee
type Num interface {
	~int | ~int64
}
`,
			code: errors.ErrConstraintInterface,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, diags := load(t, map[string]string{"in.go": tt.src})
			require.Nil(t, pkg)
			require.True(t, diags.HasErrors())

			found := false
			for _, d := range diags {
				if d.Code == tt.code {
					found = true
					require.NotEmpty(t, d.Message)
					require.Positive(t, d.Pos.Line)
				}
			}
			require.True(t, found, "expected diagnostic %s, got %v", tt.code, diags)
		})
	}
}

func TestConflictWithHandwritten(t *testing.T) {
	pkg, diags := load(t, map[string]string{
		"block.go": `package demo

//wideptr:pointee
type Block struct {
	Elems []int32
}
`,
		"manual.go": `package demo

var BlockPointee = 1
`,
	})
	require.Nil(t, pkg)
	require.True(t, diags.HasErrors())
	require.Equal(t, errors.ErrDuplicateDecl, diags[0].Code)
}

func TestGeneratedFileExcluded(t *testing.T) {
	pkg, diags := load(t, map[string]string{
		"block.go": `package demo

//wideptr:pointee
type Block struct {
	Elems []int32
}
`,
		// A stale output from a previous run must not count as a conflict.
		"wideptr_gen.go": `package demo

var BlockPointee = 1
`,
	})
	require.False(t, diags.HasErrors())
	require.Len(t, pkg.Decls, 1)
}

func TestTestFilesExcluded(t *testing.T) {
	pkg, diags := load(t, map[string]string{
		"demo.go": `package demo

//wideptr:pointee
type Shape interface{ Area() float64 }
`,
		"demo_test.go": `package demo

//wideptr:pointee
type TestOnly struct {
	Elems []int
}
`,
	})
	require.False(t, diags.HasErrors())
	require.Len(t, pkg.Decls, 1)
	require.Equal(t, "Shape", pkg.Decls[0].Name)
}

func TestEmptyDir(t *testing.T) {
	pkg, diags := source.Load(t.TempDir(), "wideptr_gen.go", zap.NewNop())
	require.Nil(t, pkg)
	require.True(t, diags.HasErrors())
	require.Equal(t, errors.ErrNoGoFiles, diags[0].Code)
}

func TestParseError(t *testing.T) {
	pkg, diags := load(t, map[string]string{"broken.go": "package demo\n\nfunc {\n"})
	require.Nil(t, pkg)
	require.True(t, diags.HasErrors())
	require.Equal(t, errors.ErrParseFailed, diags[0].Code)
}
