package wideptr

import "unsafe"

// slicePointee is the capability for homogeneous sequences. The token is
// the element count already embedded in the slice header.
type slicePointee[E any] struct{}

func (slicePointee[E]) Extract(ref []E) Length {
	return Length(len(ref))
}

func (slicePointee[E]) Address(ref []E) Addr {
	return Addr(unsafe.SliceData(ref))
}

func (slicePointee[E]) Compose(addr Addr, meta Length) []E {
	return unsafe.Slice((*E)(addr), int(meta))
}

// Slice returns the capability for []E references. Extract reads the length
// out of the live slice header; Compose spans exactly meta elements starting
// at addr, with capacity equal to length.
func Slice[E any]() Pointee[[]E, Length] {
	return slicePointee[E]{}
}
