package typeinfo

import (
	"fmt"
	"reflect"
)

// IsExact reports whether h is tagged with exactly d.
func IsExact(h Handle, d *Descriptor) bool {
	if d == nil {
		return false
	}
	return descriptorOf(h).id == d.id
}

// IsKindOf reports whether d is h's descriptor or one of its ancestors.
func IsKindOf(h Handle, d *Descriptor) bool {
	if d == nil {
		return false
	}
	for t := descriptorOf(h); t != nil; t = t.parent {
		if t.id == d.id {
			return true
		}
	}
	return d.id == RootID
}

// Name returns h's type name. It is never absent; Root's name is "".
func Name(h Handle) string {
	return descriptorOf(h).Name()
}

// ContextOf returns the owning context of h, or nil when no descriptor in
// the chain supplies one.
func ContextOf(h Handle) Context {
	d := resolve(descriptorOf(h), func(d *Descriptor) bool { return d.context != nil })
	return d.context(h)
}

// Equal compares a and b using the equality override nearest to a's
// descriptor.
func Equal(a, b Handle) bool {
	d := resolve(descriptorOf(a), func(d *Descriptor) bool { return d.equal != nil })
	return d.equal(a, b)
}

// Describe renders h into buf and returns the length of the full rendering.
// A result larger than len(buf) means the output was truncated.
//
// Without an override the rendering is "<Name address>". Only pointer-shaped
// handles have an address; value handles all render with 0x0 and cannot be
// told apart by their root description.
func Describe(h Handle, buf []byte) int {
	d := resolve(descriptorOf(h), func(d *Descriptor) bool { return d.describe != nil })
	return d.describe(h, buf)
}

// String returns the full description of h.
func String(h Handle) string {
	n := Describe(h, nil)
	buf := make([]byte, n)
	n = Describe(h, buf)
	if n > len(buf) {
		n = len(buf)
	}
	return string(buf[:n])
}

// Format writes the formatted text into buf, truncating to fit, and returns
// the length of the untruncated text.
func Format(buf []byte, format string, args ...any) int {
	s := fmt.Sprintf(format, args...)
	copy(buf, s)
	return len(s)
}

func rootContext(Handle) Context {
	return nil
}

// rootEqual is identity: pointer-shaped handles match when they share an
// address, value handles match field by field with reference fields again
// compared by address. It never panics on uncomparable contents.
func rootEqual(a, b Handle) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	return sameValue(va, vb)
}

func sameValue(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		return ea.Type() == eb.Type() && sameValue(ea, eb)
	case reflect.Struct:
		for i := range a.NumField() {
			if !sameValue(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := range a.Len() {
			if !sameValue(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	default:
		return a.Equal(b)
	}
}

func rootDescribe(h Handle, buf []byte) int {
	return Format(buf, "<%s %#x>", Name(h), handleAddress(h))
}

// handleAddress is the address of a pointer-shaped handle, or zero for a
// value handle.
func handleAddress(h Handle) uintptr {
	if h == nil {
		return 0
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return v.Pointer()
	default:
		return 0
	}
}
