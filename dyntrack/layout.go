// Package dyntrack tracks field changes of arbitrary structs at run time, using
// reflection instead of generated accessors. Layouts are classified and
// allocated exactly like generated code.
package dyntrack

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/andreyvit/trackgen"
	"github.com/andreyvit/trackgen/bitset"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrNotTracked   = errors.New("field is not tracked")
)

var layoutCache sync.Map

type layoutEntry struct {
	layout *Layout
	err    error
}

// Layout is the bit layout of a struct type.
type Layout struct {
	typ    reflect.Type
	rs     *trackgen.RecordSchema
	fields []*field
	byName map[string]*field
	all    bitset.U128
}

type field struct {
	spec  *trackgen.FieldSpec
	index int
	mask  bitset.U128
}

// LayoutOf returns the cached layout of a struct type. Unexported fields
// cannot be set through reflection and are left untracked.
func LayoutOf(typ reflect.Type) (*Layout, error) {
	if v, ok := layoutCache.Load(typ); ok {
		e := v.(*layoutEntry)
		return e.layout, e.err
	}
	l, err := layoutWithoutCache(typ)
	actual, _ := layoutCache.LoadOrStore(typ, &layoutEntry{l, err})
	e := actual.(*layoutEntry)
	return e.layout, e.err
}

func layoutWithoutCache(typ reflect.Type) (*Layout, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("dyntrack: %v is not a struct", typ)
	}
	name := typ.Name()
	if name == "" {
		name = typ.String()
	}
	raw := &trackgen.RawRecord{
		Schema:            typ.PkgPath(),
		Name:              name,
		SynthesizeStorage: true,
	}
	var indices []int
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		raw.Fields = append(raw.Fields, trackgen.RawField{
			Name:       sf.Name,
			Type:       sf.Type.String(),
			Markers:    trackgen.TagMarkers(string(sf.Tag)),
			Comparable: comparability(sf.Type),
			Tag:        string(sf.Tag),
			Embedded:   sf.Anonymous,
		})
		indices = append(indices, i)
	}

	rs, err := trackgen.Build(raw, trackgen.Options{})
	if err != nil {
		return nil, err
	}

	l := &Layout{
		typ:    typ,
		rs:     rs,
		byName: make(map[string]*field),
	}
	for i := range rs.Fields {
		spec := &rs.Fields[i]
		f := &field{spec: spec, index: indices[i]}
		if spec.Trackable {
			f.mask = bitset.Bit(spec.BitIndex)
			l.all = l.all.Or(f.mask)
		}
		l.fields = append(l.fields, f)
		l.byName[spec.Name] = f
	}
	return l, nil
}

func comparability(t reflect.Type) trackgen.Comparability {
	if t.Comparable() {
		return trackgen.Comparable
	}
	return trackgen.NotComparable
}

func (l *Layout) Type() reflect.Type { return l.typ }

// Schema exposes the classified record, as the generator would see it.
func (l *Layout) Schema() *trackgen.RecordSchema { return l.rs }

func (l *Layout) Width() trackgen.Width { return l.rs.Width }

// Fields lists tracked field names in bit order.
func (l *Layout) Fields() []string {
	var result []string
	for _, f := range l.fields {
		if f.spec.Trackable {
			result = append(result, f.spec.Name)
		}
	}
	return result
}

func (l *Layout) MaskAll() bitset.U128 { return l.all }

// Mask returns the union of the masks of the named fields.
func (l *Layout) Mask(names ...string) (bitset.U128, error) {
	var m bitset.U128
	for _, name := range names {
		f, err := l.tracked(name)
		if err != nil {
			return bitset.U128{}, err
		}
		m = m.Or(f.mask)
	}
	return m, nil
}

func (l *Layout) tracked(name string) (*field, error) {
	f := l.byName[name]
	if f == nil {
		return nil, fmt.Errorf("dyntrack: %v.%s: %w", l.typ, name, ErrUnknownField)
	}
	if !f.spec.Trackable {
		return nil, fmt.Errorf("dyntrack: %v.%s: %w", l.typ, name, ErrNotTracked)
	}
	return f, nil
}
