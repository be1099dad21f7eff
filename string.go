package wideptr

import "unsafe"

// stringPointee is the capability for text buffers. The token is the byte
// count; encoding is never validated, that is left to whoever reads the
// buffer afterwards.
type stringPointee struct{}

func (stringPointee) Extract(ref string) Length {
	return Length(len(ref))
}

func (stringPointee) Address(ref string) Addr {
	return Addr(unsafe.StringData(ref))
}

func (stringPointee) Compose(addr Addr, meta Length) string {
	return unsafe.String((*byte)(addr), int(meta))
}

// String returns the capability for string references. The token counts
// bytes, not runes.
func String() Pointee[string, Length] {
	return stringPointee{}
}
