package trackgen

import (
	"fmt"
	"go/token"
	"log/slog"
	"slices"
	"strings"
)

const DefaultStorageField = "tracker"

type Comparability int8

const (
	ComparableUnknown Comparability = iota
	Comparable
	NotComparable
)

// RawField is a field as declared by a front-end, before classification.
type RawField struct {
	Name       string
	Type       string
	Markers    []string
	Track      *bool
	Eq         *bool
	Comparable Comparability
	// DynamicEq means == compiles for Type but may panic at run time.
	DynamicEq bool
	Tag        string
	Doc        string
	Pos        string
	Embedded   bool

	// Imports referenced by Type.
	Imports []Import
}

// RawRecord is a struct type as declared by a front-end (Go source, schema
// description file or DefineRecord).
type RawRecord struct {
	Schema     string
	Name       string
	TypeParams string // declaration form, e.g. "[K comparable, V any]"
	Fields     []RawField
	Doc        string
	Pos        string

	// Methods already declared on the type by the host.
	Methods []string
	// Package-level identifiers already declared by the host.
	Taken []string

	// SynthesizeStorage means the generator emits the struct itself, so the
	// storage field must not be declared by the host.
	SynthesizeStorage bool
}

func (rec *RawRecord) fieldNamed(name string) *RawField {
	for i := range rec.Fields {
		if rec.Fields[i].Name == name {
			return &rec.Fields[i]
		}
	}
	return nil
}

type FieldSpec struct {
	Name          string
	Type          string
	Trackable     bool
	CheckEquality bool
	// GuardEquality compares through trackerEqual instead of ==.
	GuardEquality bool
	BitIndex      int // -1 for untracked fields
	Tag           string
	Doc           string
	Embedded      bool
	Imports       []Import

	names fieldNames
}

func (f *FieldSpec) Exported() bool {
	return token.IsExported(f.Name)
}

type RecordSchema struct {
	Schema            string
	Name              string
	TypeParams        string
	Fields            []FieldSpec
	Width             Width
	StorageField      string
	SynthesizeStorage bool
	Doc               string
	Pos               string

	names recordNames
}

func (rs *RecordSchema) Exported() bool {
	return token.IsExported(rs.Name)
}

func (rs *RecordSchema) TrackedCount() int {
	var n int
	for i := range rs.Fields {
		if rs.Fields[i].Trackable {
			n++
		}
	}
	return n
}

func (rs *RecordSchema) Tracked() []*FieldSpec {
	var result []*FieldSpec
	for i := range rs.Fields {
		if rs.Fields[i].Trackable {
			result = append(result, &rs.Fields[i])
		}
	}
	return result
}

func (rs *RecordSchema) FieldNamed(name string) *FieldSpec {
	for i := range rs.Fields {
		if rs.Fields[i].Name == name {
			return &rs.Fields[i]
		}
	}
	return nil
}

// TrackerType is the name of the generated tracker storage type.
func (rs *RecordSchema) TrackerType() string { return rs.names.trackerType }

// MaskAll is the name of the generated all-fields mask.
func (rs *RecordSchema) MaskAll() string { return rs.names.maskAll }

// MaskName is the name of the generated mask of the given field, or "" for
// untracked and unknown fields.
func (rs *RecordSchema) MaskName(field string) string {
	f := rs.FieldNamed(field)
	if f == nil || !f.Trackable {
		return ""
	}
	return f.names.mask
}

// AllMask returns the numeric value of the all-fields mask as (lo, hi) words.
func (rs *RecordSchema) AllMask() (lo, hi uint64) {
	for _, f := range rs.Tracked() {
		if f.BitIndex < 64 {
			lo |= 1 << f.BitIndex
		} else {
			hi |= 1 << (f.BitIndex - 64)
		}
	}
	return lo, hi
}

// receiverType is the record type as written in a method receiver, including
// type parameter names for generic records.
func (rs *RecordSchema) receiverType() string {
	if rs.TypeParams == "" {
		return rs.Name
	}
	return rs.Name + "[" + strings.Join(typeParamNames(rs.TypeParams), ", ") + "]"
}

type Options struct {
	StorageField string
	Logger       *slog.Logger
}

func (o Options) storageField() string {
	if o.StorageField == "" {
		return DefaultStorageField
	}
	return o.StorageField
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Build runs classification, bit allocation and name validation for one
// record.
func Build(raw *RawRecord, opt Options) (*RecordSchema, error) {
	fields, err := Classify(raw, opt)
	if err != nil {
		return nil, err
	}
	width, err := Allocate(raw, fields)
	if err != nil {
		return nil, err
	}
	rs := &RecordSchema{
		Schema:            raw.Schema,
		Name:              raw.Name,
		TypeParams:        raw.TypeParams,
		Fields:            fields,
		Width:             width,
		StorageField:      opt.storageField(),
		SynthesizeStorage: raw.SynthesizeStorage,
		Doc:               raw.Doc,
		Pos:               raw.Pos,
	}
	if err := assignNames(raw, rs); err != nil {
		return nil, err
	}
	opt.logger().Debug("trackgen: record built", "schema", rs.Schema, "record", rs.Name, "tracked", rs.TrackedCount(), "width", int(rs.Width))
	return rs, nil
}

// Import is a Go import needed by generated code.
type Import struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"n,omitempty"`
	Path string `json:"path" yaml:"path" msgpack:"p"`
}

// Schema is a set of records generated into one Go file.
type Schema struct {
	name          string
	pkg           string
	imports       []Import
	records       []*RecordSchema
	recordsByName map[string]*RecordSchema
}

func NewSchema(name, pkg string) *Schema {
	return &Schema{
		name:          name,
		pkg:           pkg,
		recordsByName: make(map[string]*RecordSchema),
	}
}

func (scm *Schema) Name() string    { return scm.name }
func (scm *Schema) Package() string { return scm.pkg }

func (scm *Schema) Records() []*RecordSchema {
	return slices.Clone(scm.records)
}

func (scm *Schema) RecordNamed(name string) *RecordSchema {
	return scm.recordsByName[name]
}

func (scm *Schema) Imports() []Import {
	return slices.Clone(scm.imports)
}

func (scm *Schema) AddImport(imp Import) {
	for _, existing := range scm.imports {
		if existing.Path == imp.Path && existing.Name == imp.Name {
			return
		}
	}
	scm.imports = append(scm.imports, imp)
}

func (scm *Schema) AddRecord(rs *RecordSchema) {
	if scm.recordsByName[rs.Name] != nil {
		panic(fmt.Errorf("schema %s already has record named %q", scm.name, rs.Name))
	}
	scm.records = append(scm.records, rs)
	scm.recordsByName[rs.Name] = rs

	// Generated methods mention the types of tracked fields; a synthesized
	// struct mentions all of them.
	for _, f := range rs.Fields {
		if f.Trackable || rs.SynthesizeStorage {
			for _, imp := range f.Imports {
				scm.AddImport(imp)
			}
		}
	}
}

// needsEqualHelper reports whether any field compares through trackerEqual.
func (scm *Schema) needsEqualHelper() bool {
	for _, rs := range scm.records {
		if rs.guardsEquality() {
			return true
		}
	}
	return false
}

func (rs *RecordSchema) guardsEquality() bool {
	for i := range rs.Fields {
		if rs.Fields[i].GuardEquality {
			return true
		}
	}
	return false
}

// needsBitset reports whether any record uses the 128-bit tracker.
func (scm *Schema) needsBitset() bool {
	for _, rs := range scm.records {
		if !rs.Width.Native() {
			return true
		}
	}
	return false
}
