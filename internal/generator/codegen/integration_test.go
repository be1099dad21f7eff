package codegen_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wideptr/wideptr/internal/generator/codegen"
	"github.com/wideptr/wideptr/internal/generator/source"
)

// Drives the full scan-analyze-emit pipeline over a package on disk, the
// way the gen command does.
func TestScanAndEmit(t *testing.T) {
	dir := t.TempDir()
	src := `package records

// Block is a checksummed run of samples.
//
//wideptr:pointee
type Block struct {
	Checksum uint64
	Samples  []float64
}

// Sink consumes finished blocks.
//
//wideptr:pointee
type Sink interface {
	Consume(b *Block) error
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.go"), []byte(src), 0o644))

	pkg, diags := source.Load(dir, codegen.DefaultOutput, zap.NewNop())
	require.False(t, diags.HasErrors())
	require.Len(t, pkg.Decls, 2)

	out, genErr := codegen.NewGenerator(zap.NewNop()).File(pkg)
	require.Nil(t, genErr)

	f, err := parser.ParseFile(token.NewFileSet(), codegen.DefaultOutput, out, parser.ParseComments)
	require.NoError(t, err)
	require.Equal(t, "records", f.Name.Name)

	require.Contains(t, out, "var BlockPointee wideptr.Pointee[*Block, wideptr.Length]")
	require.Contains(t, out, "return wideptr.Slice[float64]().Extract(ref.Samples)")
	require.Contains(t, out, "var SinkPointee wideptr.Pointee[Sink, wideptr.DynTable]")
	require.Contains(t, out, "func SinkTable[C Sink]() wideptr.DynTable")
}

// A rerun over a package that already contains generated output must see
// neither a conflict nor its own declarations.
func TestScanAndEmitIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := `package records

//wideptr:pointee
type Block struct {
	Samples []float64
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "records.go"), []byte(src), 0o644))

	pkg, diags := source.Load(dir, codegen.DefaultOutput, zap.NewNop())
	require.False(t, diags.HasErrors())
	first, genErr := codegen.NewGenerator(zap.NewNop()).File(pkg)
	require.Nil(t, genErr)
	require.NoError(t, os.WriteFile(filepath.Join(dir, codegen.DefaultOutput), []byte(first), 0o644))

	pkg, diags = source.Load(dir, codegen.DefaultOutput, zap.NewNop())
	require.False(t, diags.HasErrors())
	second, genErr := codegen.NewGenerator(zap.NewNop()).File(pkg)
	require.Nil(t, genErr)

	require.Equal(t, first, second)
}
