package codegen

import "github.com/wideptr/wideptr/internal/generator/source"

// iface emits the registration for a user-declared dynamic interface: the
// capability declaration itself, plus glue returning the dispatch table any
// concrete implementation presents behind the interface.
//
// Related interface types (embeddings, supersets) are never registered
// automatically; each needs its own directive, because each has its own
// table shape.
func (g *Generator) iface(d source.Decl) {
	use := d.Name + paramUses(d)

	if len(d.TypeParams) == 0 {
		g.writeLine("// %sPointee is the capability for dynamic %s references.", d.Name, d.Name)
		g.writeLine("var %sPointee wideptr.Pointee[%s, wideptr.DynTable] = wideptr.Dyn[%s]()", d.Name, use, use)
		g.writeLine("")
		g.writeLine("// %sTable returns the dispatch table the concrete implementation C", d.Name)
		g.writeLine("// presents behind %s.", d.Name)
		g.writeLine("func %sTable[C %s]() wideptr.DynTable {", d.Name, use)
		g.indent++
		g.writeLine("var c C")
		g.writeLine("return %sPointee.Extract(%s(c))", d.Name, use)
		g.indent--
		g.writeLine("}")
		return
	}

	decls := paramDecls(d)
	uses := paramUses(d)

	g.writeLine("// %sPointee returns the capability for dynamic %s references.", d.Name, use)
	g.writeLine("func %sPointee%s() wideptr.Pointee[%s, wideptr.DynTable] {", d.Name, decls, use)
	g.indent++
	g.writeLine("return wideptr.Dyn[%s]()", use)
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.writeLine("// %sTable returns the dispatch table the concrete implementation C", d.Name)
	g.writeLine("// presents behind %s.", use)
	g.writeLine("func %sTable[%s, C %s]() wideptr.DynTable {", d.Name, trimBrackets(decls), use)
	g.indent++
	g.writeLine("var c C")
	g.writeLine("return %sPointee%s().Extract(%s(c))", d.Name, uses, use)
	g.indent--
	g.writeLine("}")
}

// trimBrackets strips the surrounding brackets from a type parameter list
// so it can be extended with extra parameters.
func trimBrackets(list string) string {
	return list[1 : len(list)-1]
}
