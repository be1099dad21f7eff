package source

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/wideptr/wideptr/internal/generator/errors"
)

// analyze validates one directive-marked type spec and classifies it into a
// generation mode. It appends a diagnostic and reports false when the
// declaration must be refused.
func (s *scanner) analyze(ts *ast.TypeSpec, seen map[string]token.Position) (Decl, bool) {
	pos := s.fset.Position(ts.Pos())
	name := ts.Name.Name

	if ts.Assign.IsValid() {
		s.diags = append(s.diags, errors.NewAliasDecl(errors.At(pos), name))
		return Decl{}, false
	}

	if first, dup := seen[name]; dup {
		s.diags = append(s.diags, errors.NewDuplicateDecl(
			errors.At(pos), name, errors.At(first)))
		return Decl{}, false
	}
	seen[name] = pos

	obj := s.typesPkg.Scope().Lookup(name)
	tn, ok := obj.(*types.TypeName)
	if !ok {
		s.diags = append(s.diags, errors.NewTypeCheckFailed(
			errors.At(pos), "declaration "+name+" did not resolve to a type"))
		return Decl{}, false
	}
	named, ok := tn.Type().(*types.Named)
	if !ok {
		s.diags = append(s.diags, errors.NewBadDeclKind(errors.At(pos), name))
		return Decl{}, false
	}

	// A capability for this type written by hand, or left over from another
	// tool, would collide with the one about to be generated.
	if prev := s.typesPkg.Scope().Lookup(name + "Pointee"); prev != nil {
		s.diags = append(s.diags, errors.NewDuplicateDecl(
			errors.At(pos), name, errors.At(s.fset.Position(prev.Pos()))))
		return Decl{}, false
	}

	decl := Decl{
		Name:     name,
		Exported: ast.IsExported(name),
		Pos:      pos,
	}
	s.typeParams(&decl, named.TypeParams())

	switch u := named.Underlying().(type) {
	case *types.Struct:
		decl.Kind = KindAggregate
		if !s.classifyTail(&decl, u, pos) {
			return Decl{}, false
		}
	case *types.Interface:
		decl.Kind = KindInterface
		if !u.IsMethodSet() {
			s.diags = append(s.diags, errors.NewConstraintInterface(errors.At(pos), name))
			return Decl{}, false
		}
	default:
		s.diags = append(s.diags, errors.NewBadDeclKind(errors.At(pos), name))
		return Decl{}, false
	}

	return decl, true
}

// classifyTail decides the metadata shape an aggregate inherits from its
// trailing field. Only slice, string, and interface tails are dynamically
// sized; a bare type parameter is refused because a fixed-size instantiation
// would collide with the blanket Sized capability.
func (s *scanner) classifyTail(decl *Decl, st *types.Struct, pos token.Position) bool {
	if st.NumFields() == 0 {
		s.diags = append(s.diags, errors.NewNoFields(errors.At(pos), decl.Name))
		return false
	}

	tail := st.Field(st.NumFields() - 1)
	decl.TailField = tail.Name()
	t := tail.Type()

	if tp, ok := t.(*types.TypeParam); ok {
		s.diags = append(s.diags, errors.NewAmbiguousTail(
			errors.At(pos), decl.Name, tail.Name(), tp.Obj().Name()))
		return false
	}

	switch u := t.Underlying().(type) {
	case *types.Slice:
		decl.TailCat = TailSlice
		decl.TailElem = s.typeText(decl, u.Elem())
	case *types.Basic:
		if u.Info()&types.IsString == 0 {
			s.diags = append(s.diags, errors.NewFixedSizeTail(
				errors.At(pos), decl.Name, tail.Name(), s.typeText(decl, t)))
			return false
		}
		decl.TailCat = TailString
	case *types.Interface:
		decl.TailCat = TailInterface
		decl.TailType = s.typeText(decl, t)
	default:
		s.diags = append(s.diags, errors.NewFixedSizeTail(
			errors.At(pos), decl.Name, tail.Name(), s.typeText(decl, t)))
		return false
	}

	return true
}

// typeParams records the declaration's type parameters for generic emission.
func (s *scanner) typeParams(decl *Decl, tps *types.TypeParamList) {
	for i := 0; i < tps.Len(); i++ {
		tp := tps.At(i)
		decl.TypeParams = append(decl.TypeParams, TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: s.typeText(decl, tp.Constraint()),
		})
	}
}

// typeText prints a type relative to the target package, recording any
// external packages the emitted file will have to import.
func (s *scanner) typeText(decl *Decl, t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string {
		if p == s.typesPkg {
			return ""
		}
		decl.Imports = append(decl.Imports, p.Path())
		return p.Name()
	})
}
