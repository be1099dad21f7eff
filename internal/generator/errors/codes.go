package errors

import "fmt"

// Source diagnostics (SRC000-099)
const (
	// ErrNoGoFiles indicates the target directory contains no Go source.
	ErrNoGoFiles Code = "SRC001"
	// ErrParseFailed indicates a file could not be parsed.
	ErrParseFailed Code = "SRC002"
	// ErrTypeCheckFailed indicates the package did not type-check.
	ErrTypeCheckFailed Code = "SRC003"
)

// Analysis diagnostics (ANA100-199)
const (
	// ErrBadDeclKind indicates a directive on something other than a struct
	// or interface type declaration.
	ErrBadDeclKind Code = "ANA100"
	// ErrAliasDecl indicates a directive on a type alias.
	ErrAliasDecl Code = "ANA101"
	// ErrFixedSizeTail indicates an aggregate whose trailing member is
	// fixed-size, which the blanket capability already covers.
	ErrFixedSizeTail Code = "ANA102"
	// ErrAmbiguousTail indicates an aggregate whose trailing member is a
	// bare type parameter, so its sizedness cannot be proven.
	ErrAmbiguousTail Code = "ANA103"
	// ErrNoFields indicates an aggregate with no members at all.
	ErrNoFields Code = "ANA104"
	// ErrConstraintInterface indicates an interface carrying type-set
	// constraints, which cannot back a dynamic reference.
	ErrConstraintInterface Code = "ANA105"
	// ErrDuplicateDecl indicates two capability declarations for one type.
	ErrDuplicateDecl Code = "ANA106"
)

// Codegen diagnostics (GEN200-299)
const (
	// ErrEmitFailed indicates generated source failed to format, which is a
	// generator bug rather than a user error.
	ErrEmitFailed Code = "GEN200"
)

// NewNoGoFiles creates an SRC001 error.
func NewNoGoFiles(dir string) *GenError {
	return newError(
		ErrNoGoFiles,
		CategorySource,
		SeverityError,
		fmt.Sprintf("no Go source files in %s", dir),
		Position{File: dir},
	)
}

// NewParseFailed creates an SRC002 error.
func NewParseFailed(pos Position, detail string) *GenError {
	return newError(
		ErrParseFailed,
		CategorySource,
		SeverityError,
		fmt.Sprintf("cannot parse source: %s", detail),
		pos,
	)
}

// NewTypeCheckFailed creates an SRC003 error.
func NewTypeCheckFailed(pos Position, detail string) *GenError {
	return newError(
		ErrTypeCheckFailed,
		CategorySource,
		SeverityError,
		fmt.Sprintf("package does not type-check: %s", detail),
		pos,
	)
}

// NewBadDeclKind creates an ANA100 error.
func NewBadDeclKind(pos Position, name string) *GenError {
	return newError(
		ErrBadDeclKind,
		CategoryAnalysis,
		SeverityError,
		fmt.Sprintf("//wideptr:pointee on %q: only struct and interface type declarations take the directive", name),
		pos,
	).WithSuggestion("move the directive onto a struct with a dynamically-sized trailing field, or onto an interface")
}

// NewAliasDecl creates an ANA101 error.
func NewAliasDecl(pos Position, name string) *GenError {
	return newError(
		ErrAliasDecl,
		CategoryAnalysis,
		SeverityError,
		fmt.Sprintf("//wideptr:pointee on alias %q: an alias would duplicate the capability of its target type", name),
		pos,
	).WithSuggestion("place the directive on the aliased type's own declaration")
}

// NewFixedSizeTail creates an ANA102 error.
func NewFixedSizeTail(pos Position, name, field, fieldType string) *GenError {
	return newError(
		ErrFixedSizeTail,
		CategoryAnalysis,
		SeverityError,
		fmt.Sprintf("aggregate %q: trailing field %s has fixed-size type %s, already covered by the blanket Sized capability", name, field, fieldType),
		pos,
	).WithSuggestion("make the last field a slice, string, or interface, or drop the directive")
}

// NewAmbiguousTail creates an ANA103 error.
func NewAmbiguousTail(pos Position, name, field, param string) *GenError {
	return newError(
		ErrAmbiguousTail,
		CategoryAnalysis,
		SeverityError,
		fmt.Sprintf("aggregate %q: trailing field %s has type parameter type %s, which may be fixed-size; refusing to guess", name, field, param),
		pos,
	).WithSuggestion("use a structurally dynamic tail such as []" + param + ", or declare capabilities for specific instantiations")
}

// NewNoFields creates an ANA104 error.
func NewNoFields(pos Position, name string) *GenError {
	return newError(
		ErrNoFields,
		CategoryAnalysis,
		SeverityError,
		fmt.Sprintf("aggregate %q has no fields and cannot be dynamically sized", name),
		pos,
	)
}

// NewConstraintInterface creates an ANA105 error.
func NewConstraintInterface(pos Position, name string) *GenError {
	return newError(
		ErrConstraintInterface,
		CategoryAnalysis,
		SeverityError,
		fmt.Sprintf("interface %q carries type-set constraints and cannot back a dynamic reference", name),
		pos,
	).WithSuggestion("only method-set interfaces can be used as dynamic-interface types")
}

// NewDuplicateDecl creates an ANA106 error.
func NewDuplicateDecl(pos Position, name string, first Position) *GenError {
	return newError(
		ErrDuplicateDecl,
		CategoryAnalysis,
		SeverityError,
		fmt.Sprintf("duplicate capability declaration for %q; first declared at %s:%d", name, first.File, first.Line),
		pos,
	).WithSuggestion("exactly one capability may exist per type; remove one directive")
}

// NewEmitFailed creates a GEN200 error.
func NewEmitFailed(detail string) *GenError {
	return newError(
		ErrEmitFailed,
		CategoryCodeGen,
		SeverityError,
		fmt.Sprintf("generated source failed to format: %s", detail),
		Position{},
	).WithSuggestion("this is a wideptr bug - please report it")
}
