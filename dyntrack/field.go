package dyntrack

import (
	"fmt"
	"reflect"

	"github.com/andreyvit/trackgen/bitset"
)

// Field is a typed handle to a tracked field of T, resolved once and used
// without per-call lookups or type assertions.
type Field[T, V any] struct {
	f *field
}

// FieldOf resolves a tracked field of T whose type is exactly V.
func FieldOf[T, V any](name string) (Field[T, V], error) {
	l, err := LayoutOf(reflect.TypeFor[T]())
	if err != nil {
		return Field[T, V]{}, err
	}
	f, err := l.tracked(name)
	if err != nil {
		return Field[T, V]{}, err
	}
	if ft, vt := l.typ.Field(f.index).Type, reflect.TypeFor[V](); ft != vt {
		return Field[T, V]{}, fmt.Errorf("dyntrack: %v.%s has type %v, not %v", l.typ, name, ft, vt)
	}
	return Field[T, V]{f: f}, nil
}

func MustFieldOf[T, V any](name string) Field[T, V] {
	fld, err := FieldOf[T, V](name)
	if err != nil {
		panic(err)
	}
	return fld
}

func (fld Field[T, V]) Name() string { return fld.f.spec.Name }

func (fld Field[T, V]) Mask() bitset.U128 { return fld.f.mask }

func (fld Field[T, V]) ptr(r *Record[T]) *V {
	return r.fieldValue(fld.f).Addr().Interface().(*V)
}

func (fld Field[T, V]) Get(r *Record[T]) V {
	return *fld.ptr(r)
}

func (fld Field[T, V]) GetMut(r *Record[T]) *V {
	r.mark(fld.f)
	return fld.ptr(r)
}

func (fld Field[T, V]) Set(r *Record[T], value V) {
	p := fld.ptr(r)
	if !fld.f.spec.CheckEquality || !equal(reflect.ValueOf(p).Elem(), reflect.ValueOf(&value).Elem()) {
		r.mark(fld.f)
	}
	*p = value
}

func (fld Field[T, V]) Update(r *Record[T], fn func(*V)) {
	fn(fld.GetMut(r))
}

func (fld Field[T, V]) Changed(r *Record[T]) bool {
	return r.changed.Intersects(fld.f.mask)
}
