package trackgen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const usersYAML = `package: model
imports:
  - path: time
  - name: uuidpkg
    path: github.com/google/uuid
records:
  - name: User
    doc: User is a tracked account.
    fields:
      - name: ID
        type: uuidpkg.UUID
      - name: Name
        type: string
        tag: 'json:"name"'
      - name: Roles
        type: "[]string"
        markers: [no_eq]
      - name: Seen
        type: time.Time
        track: false
      - name: Blob
        type: "[]byte"
        eq: false
`

func TestReadSchemaFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	ok(t, os.WriteFile(path, []byte(usersYAML), 0o644))

	sf, err := ReadSchemaFile(path)
	ok(t, err)
	deepEqual(t, sf.Package, "model")
	deepEqual(t, sf.Schema, "users")
	deepEqual(t, len(sf.Records[0].Fields), 5)
	deepEqual(t, *sf.Records[0].Fields[3].Track, false)

	scm, err := sf.Load(Options{})
	ok(t, err)
	deepEqual(t, scm.Name(), "users")
	deepEqual(t, scm.Package(), "model")

	rs := scm.RecordNamed("User")
	deepEqual(t, rs.SynthesizeStorage, true)
	deepEqual(t, rs.TrackedCount(), 4)
	deepEqual(t, rs.FieldNamed("Seen").Trackable, false)
	deepEqual(t, rs.FieldNamed("Blob").CheckEquality, false)
	deepEqual(t, rs.FieldNamed("Blob").BitIndex, 3)
	deepEqual(t, scm.Imports(), []Import{{Name: "uuidpkg", Path: "github.com/google/uuid"}, {Path: "time"}})

	src := generate(t, scm)
	for _, want := range []string{
		"// User is a tracked account.\ntype User struct {",
		"\tuuidpkg \"github.com/google/uuid\"\n",
		"Seen  time.Time",
		"func (u *User) SetID(value uuidpkg.UUID) {\n\tif u.ID != value {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source lacks %q:\n%s", want, src)
		}
	}
}

func TestSchemaFileJSONGeneratesCompilableCode(t *testing.T) {
	sf, err := DecodeSchemaFile([]byte(`{
		"package": "events",
		"storage_field": "dirty",
		"imports": [{"path": "time"}, {"path": "strings"}],
		"records": [
			{
				"name": "Event",
				"fields": [
					{"name": "At", "type": "time.Time"},
					{"name": "Payload", "type": "map[string]string", "markers": ["tracker::no_eq"]},
					{"name": "seq", "type": "uint64", "tag": "tracker:\"-\""}
				]
			},
			{
				"name": "Slot",
				"type_params": "[T comparable]",
				"fields": [{"name": "Value", "type": "T"}]
			}
		]
	}`), JSON)
	ok(t, err)
	scm, err := sf.Load(Options{})
	ok(t, err)
	deepEqual(t, scm.Name(), "events")
	deepEqual(t, scm.RecordNamed("Event").StorageField, "dirty")
	deepEqual(t, scm.RecordNamed("Event").FieldNamed("seq").Trackable, false)

	src := generate(t, scm)
	if strings.Contains(src, "\"strings\"") {
		t.Errorf("unused import emitted:\n%s", src)
	}
	typecheck(t, map[string]string{"tracker_gen.go": src})
}

func TestSchemaFileErrors(t *testing.T) {
	_, err := DecodeSchemaFile([]byte("records: []\n"), YAML)
	if err == nil || !strings.Contains(err.Error(), "package is required") {
		t.Errorf("err = %v", err)
	}

	_, err = DecodeSchemaFile([]byte("package: p\nrecrods: []\n"), YAML)
	if err == nil {
		t.Errorf("misspelled key accepted")
	}
	_, err = DecodeSchemaFile([]byte(`{"package": "p", "records": [{"name": "R", "fields": [{"name": "A", "type": "int", "marker": ["no_eq"]}]}]}`), JSON)
	if err == nil {
		t.Errorf("misspelled field key accepted")
	}

	sf, err := DecodeSchemaFile([]byte("package: p\nrecords:\n  - name: R\n  - name: R\n"), YAML)
	ok(t, err)
	_, err = sf.Load(Options{})
	if err == nil || !strings.Contains(err.Error(), "duplicate record R") {
		t.Errorf("err = %v", err)
	}
}

func TestSchemaFileSchemaErrors(t *testing.T) {
	sf, err := DecodeSchemaFile([]byte(`package: p
records:
  - name: A
    fields:
      - name: X
        type: int
        markers: [do_not_track]
        track: true
  - name: B
    fields:
      - name: M
        type: Money
        comparable: false
  - name: C
    fields:
      - name: M
        type: Money
        comparable: false
        markers: [no_eq]
`), YAML)
	ok(t, err)
	_, err = sf.Load(Options{})

	var list ErrorList
	if !errors.As(err, &list) || len(list) != 2 {
		t.Fatalf("err = %v, wanted two errors", err)
	}
	se := wantKind(t, list[0], ConflictingAnnotation)
	deepEqual(t, se.Pos, "records[0].fields[0]")
	se = wantKind(t, list[1], MissingEqualityCapability)
	deepEqual(t, se.Record, "B")
	deepEqual(t, se.Schema, "p")
}

func TestSchemaFileMsgPack(t *testing.T) {
	in := &SchemaFile{
		Package: "p",
		Records: []RecordDesc{{Name: "R", Fields: []FieldDesc{{Name: "A", Type: "int", Eq: ptr(false)}}}},
	}
	raw, err := MsgPack.Encode(in)
	ok(t, err)
	sf, err := DecodeSchemaFile(raw, MsgPack)
	ok(t, err)
	scm, err := sf.Load(Options{})
	ok(t, err)
	deepEqual(t, scm.RecordNamed("R").FieldNamed("A").CheckEquality, false)
}

func TestImportsOf(t *testing.T) {
	sf := &SchemaFile{Imports: []Import{
		{Path: "time"},
		{Path: "github.com/vmihailenco/msgpack/v5"},
		{Name: "yml", Path: "gopkg.in/yaml.v3"},
	}}
	deepEqual(t, sf.importsOf("map[string]time.Duration"), []Import{{Path: "time"}})
	deepEqual(t, sf.importsOf("*msgpack.RawMessage"), []Import{{Path: "github.com/vmihailenco/msgpack/v5"}})
	deepEqual(t, sf.importsOf("[]yml.Node"), []Import{{Name: "yml", Path: "gopkg.in/yaml.v3"}})
	deepEqual(t, sf.importsOf("yaml.Node"), nil)
	deepEqual(t, sf.importsOf("int"), nil)
	deepEqual(t, sf.importsOf("[[["), nil)
}

func TestSchemaFileJSONSchema(t *testing.T) {
	s := SchemaFileJSONSchema()
	deepEqual(t, s.Title, "trackgen schema description")
	deepEqual(t, s.Type, "object")

	pkg, found := s.Properties.Get("package")
	if !found {
		t.Fatalf("package property missing")
	}
	deepEqual(t, pkg.Description, "Go package name of the generated file")
	if _, found := s.Properties.Get("records"); !found {
		t.Errorf("records property missing")
	}
	if !strings.Contains(strings.Join(s.Required, ","), "package") {
		t.Errorf("package not required: %v", s.Required)
	}
}

func TestSchemaFileFieldNames(t *testing.T) {
	sf, err := DecodeSchemaFile([]byte(`package: p
records:
  - name: A
    fields:
      - name: X
        type: int
      - name: X
        type: string
  - name: B
    fields:
      - type: int
`), YAML)
	ok(t, err)
	_, err = sf.Load(Options{})

	var list ErrorList
	if !errors.As(err, &list) || len(list) != 2 {
		t.Fatalf("err = %v, wanted two errors", err)
	}
	se := wantKind(t, list[0], ReservedName)
	deepEqual(t, se.Pos, "records[0].fields[1]")
	if !strings.Contains(se.Error(), "duplicate field X") {
		t.Errorf("err = %v", se)
	}
	se = wantKind(t, list[1], ReservedName)
	deepEqual(t, se.Pos, "records[1].fields[0]")
	if !strings.Contains(se.Error(), "field of type int has no name") {
		t.Errorf("err = %v", se)
	}
}
