package wideptr

// sizedPointee is the blanket capability for fixed-size values. The token
// is Unit, so decomposition reduces to the pointer itself.
type sizedPointee[T any] struct{}

func (sizedPointee[T]) Extract(ref *T) Unit {
	return Unit{}
}

func (sizedPointee[T]) Address(ref *T) Addr {
	return Addr(ref)
}

func (sizedPointee[T]) Compose(addr Addr, _ Unit) *T {
	return (*T)(addr)
}

// Sized returns the capability for references to the fixed-size type T.
//
// This is the single blanket declaration covering every fixed-size type;
// such types never need, and must not receive, a second capability. The
// wideptr generator refuses aggregate declarations that would shadow it.
func Sized[T any]() Pointee[*T, Unit] {
	return sizedPointee[T]{}
}
