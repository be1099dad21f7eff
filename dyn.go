package wideptr

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ifaceWords is the memory layout of any Go interface value: a dispatch
// table word followed by a data word. For the empty interface the first
// word is the runtime type descriptor instead of an itab; both serve as
// the dispatch-table reference here, since identity and recomposition are
// all the protocol needs.
type ifaceWords struct {
	tab  unsafe.Pointer
	data unsafe.Pointer
}

// dynPointee is the capability for dynamic-interface references. I must be
// an interface type; Dyn checks this once at declaration time so that
// Extract, Address, and Compose can rely on the two-word layout.
type dynPointee[I any] struct{}

func (dynPointee[I]) Extract(ref I) DynTable {
	return DynTable{tab: (*ifaceWords)(unsafe.Pointer(&ref)).tab}
}

func (dynPointee[I]) Address(ref I) Addr {
	return (*ifaceWords)(unsafe.Pointer(&ref)).data
}

func (dynPointee[I]) Compose(addr Addr, meta DynTable) I {
	var out I
	w := (*ifaceWords)(unsafe.Pointer(&out))
	w.tab = meta.tab
	w.data = addr
	return out
}

// Dyn returns the capability for dynamic references through the interface
// type I. The token is the dispatch table of the concrete implementation
// behind the reference; two implementations of I always present distinct
// tables.
//
// Dyn panics if I is not an interface type. The check runs once, when the
// capability is declared, never on Extract or Compose. Declarations are
// normally emitted by the wideptr generator, which rejects non-interface
// types before this guard can ever fire.
//
// Interface types with overlapping method sets (for example an interface
// and one that embeds it) have distinct table shapes and each need their
// own declaration; no capability is ever derived for a related type.
func Dyn[I any]() Pointee[I, DynTable] {
	if t := reflect.TypeFor[I](); t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("wideptr: Dyn declared for non-interface type %s", t))
	}
	return dynPointee[I]{}
}

// Any returns the capability for the catch-all interface any. Its table
// word is the concrete type's descriptor rather than a method table, which
// still identifies the implementation uniquely.
func Any() Pointee[any, DynTable] {
	return dynPointee[any]{}
}

// Err returns the capability for the error interface.
func Err() Pointee[error, DynTable] {
	return dynPointee[error]{}
}
