package dyntrack

import (
	"fmt"
	"reflect"

	"github.com/andreyvit/trackgen/bitset"
)

// Record tracks changes made through it to a struct value. Changes made to
// the struct directly are not seen.
type Record[T any] struct {
	value   *T
	layout  *Layout
	changed bitset.U128
}

// Track starts tracking *v with an all-clear tracker.
func Track[T any](v *T) (*Record[T], error) {
	l, err := LayoutOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &Record[T]{value: v, layout: l}, nil
}

func MustTrack[T any](v *T) *Record[T] {
	r, err := Track(v)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Record[T]) Layout() *Layout { return r.layout }

// Value returns the tracked struct. Writes through it bypass tracking.
func (r *Record[T]) Value() *T { return r.value }

func (r *Record[T]) fieldValue(f *field) reflect.Value {
	return reflect.ValueOf(r.value).Elem().Field(f.index)
}

func (r *Record[T]) mark(f *field) {
	r.changed = r.changed.Or(f.mask)
}

// Get returns a copy of the field value without marking it.
func (r *Record[T]) Get(name string) (any, error) {
	f, err := r.layout.tracked(name)
	if err != nil {
		return nil, err
	}
	return r.fieldValue(f).Interface(), nil
}

// GetMut returns a pointer to the field and marks it changed.
func (r *Record[T]) GetMut(name string) (any, error) {
	f, err := r.layout.tracked(name)
	if err != nil {
		return nil, err
	}
	r.mark(f)
	return r.fieldValue(f).Addr().Interface(), nil
}

// Set stores value. Fields with equality checks are marked only when the
// value differs; no_eq fields are always marked.
func (r *Record[T]) Set(name string, value any) error {
	f, err := r.layout.tracked(name)
	if err != nil {
		return err
	}
	fv := r.fieldValue(f)
	nv := reflect.ValueOf(value)
	if !nv.IsValid() {
		nv = reflect.Zero(fv.Type())
	}
	if !nv.Type().AssignableTo(fv.Type()) {
		return fmt.Errorf("dyntrack: %v.%s: cannot assign %v to %v", r.layout.typ, name, nv.Type(), fv.Type())
	}
	if nv.Type() != fv.Type() {
		conv := reflect.New(fv.Type()).Elem()
		conv.Set(nv)
		nv = conv
	}
	if !f.spec.CheckEquality || !equal(fv, nv) {
		r.mark(f)
	}
	fv.Set(nv)
	return nil
}

// Update calls fn with a pointer to the field and marks it changed.
func (r *Record[T]) Update(name string, fn func(ptr any)) error {
	v, err := r.GetMut(name)
	if err != nil {
		return err
	}
	fn(v)
	return nil
}

func (r *Record[T]) Changed(mask bitset.U128) bool {
	return r.changed.Intersects(mask)
}

func (r *Record[T]) ChangedField(name string) (bool, error) {
	f, err := r.layout.tracked(name)
	if err != nil {
		return false, err
	}
	return r.changed.Intersects(f.mask), nil
}

func (r *Record[T]) ChangedAny() bool {
	return !r.changed.IsZero()
}

// ChangedFields lists changed fields in bit order.
func (r *Record[T]) ChangedFields() []string {
	var result []string
	for _, f := range r.layout.fields {
		if f.spec.Trackable && r.changed.Intersects(f.mask) {
			result = append(result, f.spec.Name)
		}
	}
	return result
}

func (r *Record[T]) Reset() {
	r.changed = bitset.U128{}
}

func (r *Record[T]) MarkAllChanged() {
	r.changed = r.layout.all
}

// Tracker returns the raw tracker bits.
func (r *Record[T]) Tracker() bitset.U128 { return r.changed }

// equal compares like == would, treating values whose dynamic type is not
// comparable as different instead of panicking.
func equal(a, b reflect.Value) bool {
	if !a.Comparable() || !b.Comparable() {
		return false
	}
	return a.Equal(b)
}
