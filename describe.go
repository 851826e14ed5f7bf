package trackgen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
)

// SchemaFile is a description file: records declared outside Go source. The
// generator emits each described struct in full, storage field included.
type SchemaFile struct {
	Package      string       `json:"package" yaml:"package" msgpack:"package" jsonschema_description:"Go package name of the generated file"`
	Schema       string       `json:"schema,omitempty" yaml:"schema,omitempty" msgpack:"schema,omitempty" jsonschema_description:"Schema name used in diagnostics and the layout cache; defaults to the file name"`
	StorageField string       `json:"storage_field,omitempty" yaml:"storage_field,omitempty" msgpack:"storage_field,omitempty" jsonschema_description:"Name of the tracker storage field; defaults to tracker"`
	Imports      []Import     `json:"imports,omitempty" yaml:"imports,omitempty" msgpack:"imports,omitempty"`
	Records      []RecordDesc `json:"records" yaml:"records" msgpack:"records"`
}

type RecordDesc struct {
	Name       string      `json:"name" yaml:"name" msgpack:"name"`
	TypeParams string      `json:"type_params,omitempty" yaml:"type_params,omitempty" msgpack:"type_params,omitempty" jsonschema_description:"Type parameter list in declaration form, e.g. [K comparable, V any]"`
	Doc        string      `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
	Fields     []FieldDesc `json:"fields" yaml:"fields" msgpack:"fields"`
}

type FieldDesc struct {
	Name    string   `json:"name" yaml:"name" msgpack:"name"`
	Type    string   `json:"type" yaml:"type" msgpack:"type" jsonschema_description:"Go type expression"`
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty" msgpack:"markers,omitempty" jsonschema_description:"do_not_track and no_eq, optionally qualified as tracker::name"`
	Track   *bool    `json:"track,omitempty" yaml:"track,omitempty" msgpack:"track,omitempty" jsonschema_description:"Explicit tracking flag; must agree with markers"`
	Eq      *bool    `json:"eq,omitempty" yaml:"eq,omitempty" msgpack:"eq,omitempty" jsonschema_description:"Explicit equality check flag; must agree with markers"`
	// Comparable overrides equality capability detection for named types.
	Comparable *bool  `json:"comparable,omitempty" yaml:"comparable,omitempty" msgpack:"comparable,omitempty"`
	Tag        string `json:"tag,omitempty" yaml:"tag,omitempty" msgpack:"tag,omitempty" jsonschema_description:"Go struct tag, without backquotes"`
	Doc        string `json:"doc,omitempty" yaml:"doc,omitempty" msgpack:"doc,omitempty"`
}

// ReadSchemaFile reads a description file, picking the encoding by extension.
func ReadSchemaFile(path string) (*SchemaFile, error) {
	enc, err := EncodingForFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sf, err := DecodeSchemaFile(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sf.Schema == "" {
		sf.Schema = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sf, nil
}

func DecodeSchemaFile(raw []byte, enc Encoding) (*SchemaFile, error) {
	sf := new(SchemaFile)
	if err := enc.Decode(raw, sf); err != nil {
		return nil, err
	}
	if sf.Package == "" {
		return nil, fmt.Errorf("package is required")
	}
	return sf, nil
}

// Load builds a schema from the description. Records are independent; their
// schema errors are collected into an ErrorList.
func (sf *SchemaFile) Load(opt Options) (*Schema, error) {
	if opt.StorageField == "" {
		opt.StorageField = sf.StorageField
	}
	if sf.Schema == "" {
		sf.Schema = sf.Package
	}
	scm := NewSchema(sf.Schema, sf.Package)
	var raws []*RawRecord
	seen := make(map[string]bool)
	for i, rd := range sf.Records {
		if seen[rd.Name] {
			return nil, fmt.Errorf("trackgen: %s: duplicate record %s", sf.Schema, rd.Name)
		}
		seen[rd.Name] = true
		raws = append(raws, sf.rawRecord(i, &rd))
	}
	if err := buildRecords(scm, raws, opt); err != nil {
		return nil, err
	}
	return scm, nil
}

func (sf *SchemaFile) rawRecord(i int, rd *RecordDesc) *RawRecord {
	rec := &RawRecord{
		Schema:            sf.Schema,
		Name:              rd.Name,
		TypeParams:        rd.TypeParams,
		Doc:               rd.Doc,
		Pos:               fmt.Sprintf("records[%d]", i),
		SynthesizeStorage: true,
	}
	for j, fd := range rd.Fields {
		rf := RawField{
			Name:    fd.Name,
			Type:    fd.Type,
			Markers: fd.Markers,
			Track:   fd.Track,
			Eq:      fd.Eq,
			Tag:     fd.Tag,
			Doc:     fd.Doc,
			Pos:     fmt.Sprintf("records[%d].fields[%d]", i, j),
			Imports: sf.importsOf(fd.Type),
		}
		if fd.Comparable != nil {
			rf.Comparable = boolComparability(*fd.Comparable)
		}
		rf.Markers = append(rf.Markers, TagMarkers(fd.Tag)...)
		rec.Fields = append(rec.Fields, rf)
	}
	return rec
}

// importsOf returns the declared imports a type expression refers to. Only
// those make it into the generated file, so unused imports never break it.
func (sf *SchemaFile) importsOf(typeExpr string) []Import {
	expr, err := parser.ParseExpr(typeExpr)
	if err != nil {
		return nil
	}
	var result []Import
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			for _, imp := range sf.Imports {
				local := imp.Name
				if local == "" {
					local = guessPackageName(imp.Path)
				}
				if local == id.Name {
					result = append(result, imp)
					break
				}
			}
		}
		return false
	})
	return result
}

// SchemaFileJSONSchema describes the description file format.
func SchemaFileJSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(new(SchemaFile))
	s.Title = "trackgen schema description"
	return s
}
