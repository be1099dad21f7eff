package codegen

import (
	"fmt"
	"strings"

	"github.com/wideptr/wideptr/internal/generator/source"
)

// aggregate emits the capability for a struct whose trailing field is
// dynamically sized. The aggregate inherits the trailing field's token
// shape; Extract delegates to the field's own capability and Compose is a
// plain pointer conversion with the usual unchecked precondition.
func (g *Generator) aggregate(d source.Decl) {
	ref := "*" + d.Name + paramUses(d)
	impl := implSym(d)
	token := tokenType(d)

	if len(d.TypeParams) == 0 {
		g.writeLine("// %sPointee is the capability for %s references: the aggregate", d.Name, ref)
		g.writeLine("// carries the metadata of its trailing %s field.", d.TailField)
		g.writeLine("var %sPointee wideptr.Pointee[%s, %s] = %s{}", d.Name, ref, token, impl)
	} else {
		g.writeLine("// %sPointee returns the capability for %s references: the", d.Name, ref)
		g.writeLine("// aggregate carries the metadata of its trailing %s field.", d.TailField)
		g.writeLine("func %sPointee%s wideptr.Pointee[%s, %s] {", d.Name, paramDecls(d)+"()", ref, token)
		g.indent++
		g.writeLine("return %s%s{}", impl, paramUses(d))
		g.indent--
		g.writeLine("}")
	}
	g.writeLine("")

	g.writeLine("type %s%s struct{}", impl, paramDecls(d))
	g.writeLine("")

	recv := impl + paramUses(d)

	g.writeLine("func (%s) Extract(ref %s) %s {", recv, ref, token)
	g.indent++
	g.writeLine("return %s.Extract(%s)", tailCapability(d), tailArg(d))
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.writeLine("func (%s) Address(ref %s) wideptr.Addr {", recv, ref)
	g.indent++
	g.writeLine("return wideptr.Addr(ref)")
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.writeLine("// Compose is unchecked: addr must designate storage valid for %s", d.Name)
	g.writeLine("// whose %s field is consistent with meta.", d.TailField)
	g.writeLine("func (%s) Compose(addr wideptr.Addr, meta %s) %s {", recv, token, ref)
	g.indent++
	g.writeLine("return (%s)(addr)", ref)
	g.indent--
	g.writeLine("}")
}

// tailCapability returns the built-in capability expression the trailing
// field delegates to.
func tailCapability(d source.Decl) string {
	switch d.TailCat {
	case source.TailSlice:
		return fmt.Sprintf("wideptr.Slice[%s]()", d.TailElem)
	case source.TailString:
		return "wideptr.String()"
	default:
		return fmt.Sprintf("wideptr.Dyn[%s]()", d.TailType)
	}
}

// tailArg returns the Extract argument for the trailing field. String tails
// go through a conversion so that named string types delegate cleanly.
func tailArg(d source.Decl) string {
	if d.TailCat == source.TailString {
		return fmt.Sprintf("string(ref.%s)", d.TailField)
	}
	return "ref." + d.TailField
}

// tokenType returns the wideptr token type for the trailing category.
func tokenType(d source.Decl) string {
	if d.TailCat == source.TailInterface {
		return "wideptr.DynTable"
	}
	return "wideptr.Length"
}

// implSym returns the unexported name of the generated capability struct.
// The original name is kept verbatim so exported and unexported types with
// the same spelling cannot collide.
func implSym(d source.Decl) string {
	return "wideptrPointee_" + d.Name
}

// paramDecls renders the declaration-side type parameter list, or "".
func paramDecls(d source.Decl) string {
	if len(d.TypeParams) == 0 {
		return ""
	}
	parts := make([]string, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		parts[i] = tp.Name + " " + tp.Constraint
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// paramUses renders the usage-side type argument list, or "".
func paramUses(d source.Decl) string {
	if len(d.TypeParams) == 0 {
		return ""
	}
	parts := make([]string, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		parts[i] = tp.Name
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
