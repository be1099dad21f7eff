// Package wideptr splits references to dynamically-sized values into an
// address and a small metadata token, and rebuilds an equivalent reference
// from a stored (address, token) pair.
//
// Go has three fat reference shapes: slices carry an element count, strings
// carry a byte count, and interface values carry a dispatch-table word.
// Fixed-size values are referenced through a plain typed pointer and carry
// no metadata at all. A Pointee capability binds each reference type to its
// token shape; the wideptr command generates capabilities for user-declared
// aggregates and interfaces so they never have to be written by hand.
//
// Decomposition is always safe. Recomposition (Compose) is the single
// unchecked operation in the package: the caller must guarantee that the
// address designates storage valid for the reference type under the supplied
// token. No runtime check is performed, because performing one would require
// exactly the information the token exists to carry.
package wideptr

import (
	"fmt"
	"unsafe"
)

// Addr is the thin half of a wide reference: a raw data address with no
// size or identity information attached.
type Addr = unsafe.Pointer

// Unit is the metadata token for fixed-size values. It is zero-sized and
// carries no information; the address alone fully describes the reference.
type Unit struct{}

// Length is the metadata token for sequences and text buffers: an element
// count for slices, a byte count for strings.
type Length int

// DynTable is the metadata token for dynamic-interface references: an opaque
// handle to the dispatch table backing a concrete implementation. Two
// DynTables compare equal exactly when they identify the same table.
type DynTable struct {
	tab unsafe.Pointer
}

// Uintptr returns the raw table word, for logging or use as a map key.
// The value carries no meaning beyond identity.
func (d DynTable) Uintptr() uintptr {
	return uintptr(d.tab)
}

func (d DynTable) String() string {
	return fmt.Sprintf("DynTable(%#x)", uintptr(d.tab))
}

// Token is the closed set of metadata shapes a capability may declare.
type Token interface {
	Unit | Length | DynTable
}

// Pointee is a capability declaration: it binds a reference type R to its
// metadata token shape M and carries the decomposition and recomposition
// rules for that category.
//
// Extract and Address must be pure and total for any valid live reference:
// they never fail and never allocate. Compose has the unchecked precondition
// described on the package-level Compose function.
type Pointee[R any, M Token] interface {
	// Extract returns the metadata token of a live reference.
	Extract(ref R) M

	// Address returns the data address of a live reference.
	Address(ref R) Addr

	// Compose rebuilds a reference from an address and a token.
	Compose(addr Addr, meta M) R
}

// MetadataOf returns the metadata token of a live reference.
//
// For a slice this is its length, for a string its byte count, for a
// dynamic-interface value the dispatch table of its concrete implementation,
// and for a fixed-size value the empty Unit token.
func MetadataOf[R any, M Token](p Pointee[R, M], ref R) M {
	return p.Extract(ref)
}

// ToRawParts decomposes a live reference into its address and metadata
// token. The two parts may be stored separately and later recombined with
// Compose.
func ToRawParts[R any, M Token](p Pointee[R, M], ref R) (Addr, M) {
	return p.Address(ref), p.Extract(ref)
}

// Compose rebuilds a reference of type R from an address and a metadata
// token.
//
// This is the package's one unchecked operation. The caller must guarantee
// that addr designates storage that is valid for R given meta: the correct
// element or byte count for sequence tokens, and a concrete value matching
// the dispatch table for DynTable tokens. Supplying a pair that does not
// describe valid storage is undefined behavior, not a catchable error.
// Validity of the storage between decomposition and recomposition is
// entirely the caller's responsibility.
func Compose[R any, M Token](p Pointee[R, M], addr Addr, meta M) R {
	return p.Compose(addr, meta)
}
