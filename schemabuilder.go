package trackgen

// RecordBuilder declares a record programmatically. Records defined this way
// are emitted in full: the generator writes the struct, including its
// tracker storage field.
type RecordBuilder struct {
	scm *Schema
	raw *RawRecord
}

// DefineRecord builds a record from the declarations made by f and adds it to
// scm.
func DefineRecord(scm *Schema, name string, opt Options, f func(b *RecordBuilder)) (*RecordSchema, error) {
	b := &RecordBuilder{
		scm: scm,
		raw: &RawRecord{
			Schema:            scm.name,
			Name:              name,
			SynthesizeStorage: true,
		},
	}
	f(b)
	rs, err := Build(b.raw, opt)
	if err != nil {
		return nil, err
	}
	scm.AddRecord(rs)
	return rs, nil
}

func (b *RecordBuilder) TypeParams(params string) {
	b.raw.TypeParams = params
}

func (b *RecordBuilder) Doc(doc string) {
	b.raw.Doc = doc
}

func (b *RecordBuilder) Import(path string) {
	b.scm.AddImport(Import{Path: path})
}

// Field declares the next field. Markers use any accepted spelling.
func (b *RecordBuilder) Field(name, typ string, markers ...string) FieldBuilder {
	b.raw.Fields = append(b.raw.Fields, RawField{
		Name:    name,
		Type:    typ,
		Markers: markers,
	})
	return FieldBuilder{b, len(b.raw.Fields) - 1}
}

type FieldBuilder struct {
	b *RecordBuilder
	i int
}

func (fb FieldBuilder) field() *RawField {
	return &fb.b.raw.Fields[fb.i]
}

func (fb FieldBuilder) Tag(tag string) FieldBuilder {
	fb.field().Tag = tag
	return fb
}

func (fb FieldBuilder) Doc(doc string) FieldBuilder {
	fb.field().Doc = doc
	return fb
}

// Comparable overrides the syntactic equality capability check, for named
// types the builder cannot see.
func (fb FieldBuilder) Comparable(v bool) FieldBuilder {
	fb.field().Comparable = boolComparability(v)
	return fb
}
