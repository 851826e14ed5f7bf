package trackgen

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

// typecheck compiles the given files as one package and fails on any error.
func typecheck(t testing.TB, files map[string]string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	var parsed []*ast.File
	for name, src := range files {
		f, err := parser.ParseFile(fset, name, src, 0)
		if err != nil {
			t.Fatalf("** %s: %v\n%s", name, err, src)
		}
		parsed = append(parsed, f)
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("example.com/p", fset, parsed, nil)
	if err != nil {
		var all strings.Builder
		for name, src := range files {
			fmt.Fprintf(&all, "--- %s\n%s\n", name, src)
		}
		t.Fatalf("** type check: %v\n%s", err, all.String())
	}
	return pkg
}

func generate(t testing.TB, scm *Schema) string {
	t.Helper()
	src, err := Generate(scm)
	if err != nil {
		t.Fatalf("** Generate: %v\n%s", err, src)
	}
	return string(src)
}

func definePoint(t testing.TB, scm *Schema) *RecordSchema {
	rs, err := DefineRecord(scm, "Point", Options{}, func(b *RecordBuilder) {
		b.Doc("Point is a tracked point.")
		b.Field("X", "int")
		b.Field("Y", "int")
		b.Field("Label", "string", "do_not_track")
		b.Field("Tags", "[]string", "no_eq").Tag(`json:"tags"`).Doc("Tags are free-form.")
	})
	ok(t, err)
	return rs
}

func TestGenerateSynthesized(t *testing.T) {
	scm := NewSchema("points", "p")
	rs := definePoint(t, scm)
	deepEqual(t, rs.Width, Width8)
	deepEqual(t, rs.MaskName("Tags"), "PointMaskTags")
	deepEqual(t, rs.MaskName("Label"), "")

	src := generate(t, scm)
	typecheck(t, map[string]string{"tracker_gen.go": src})

	for _, want := range []string{
		GeneratedHeader + "\n// Source: points\n\npackage p\n",
		"type PointTracker uint8",
		"PointMaskX    PointTracker = 1 << 0",
		"PointMaskTags PointTracker = 1 << 2",
		"PointMaskAll PointTracker = PointMaskX | PointMaskY | PointMaskTags",
		"// Tags are free-form.\n\tTags  []string `json:\"tags\"`",
		"tracker PointTracker",
		"func (p *Point) SetX(value int) {\n\tif p.X != value {\n\t\tp.tracker |= PointMaskX\n\t}\n\tp.X = value\n}",
		"func (p *Point) SetTags(value []string) {\n\tp.tracker |= PointMaskTags\n\tp.Tags = value\n}",
		"func (p *Point) GetMutY() *int {\n\tp.tracker |= PointMaskY\n\treturn &p.Y\n}",
		"func (p *Point) UpdateTags(fn func(*[]string)) {",
		"func (p *Point) ChangedX() bool {\n\treturn p.Changed(PointMaskX)\n}",
		"func (p *Point) Changed(mask PointTracker) bool {\n\treturn p.tracker&mask != 0\n}",
		"func (p *Point) Reset() {\n\tp.tracker = 0\n}",
		"func (p *Point) MarkAllChanged() {\n\tp.tracker = PointMaskAll\n}",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source lacks %q:\n%s", want, src)
		}
	}
	for _, unwanted := range []string{"GetLabel", "SetLabel", "PointMaskLabel"} {
		if strings.Contains(src, unwanted) {
			t.Errorf("generated source contains %q for an untracked field", unwanted)
		}
	}
}

// TestGeneratedBehavior compiles generated code together with a driver that
// checks the tracking semantics, and evaluates the driver's constants.
func TestGeneratedBehavior(t *testing.T) {
	scm := NewSchema("points", "p")
	definePoint(t, scm)
	src := generate(t, scm)

	pkg := typecheck(t, map[string]string{
		"tracker_gen.go": src,
		"driver.go": `package p

const (
	xy = PointMaskX | PointMaskY
	overlap = PointMaskX & PointMaskY
	all = PointMaskAll
)

func scenario() []bool {
	var p Point
	r := []bool{p.ChangedAny()}
	p.SetX(42)
	r = append(r, p.Changed(PointMaskX), p.Changed(PointMaskY))
	p.Reset()
	p.SetX(42)
	r = append(r, p.Changed(PointMaskX))
	p.SetX(7)
	r = append(r, p.Changed(PointMaskX))
	p.UpdateTags(func(*[]string) {})
	p.Label = "direct"
	r = append(r, p.ChangedTags(), p.Changed(xy))
	return r
}
`,
	})
	constInt := func(name string) string {
		c, isConst := pkg.Scope().Lookup(name).(*types.Const)
		if !isConst {
			t.Fatalf("** %s is not a constant", name)
		}
		return c.Val().ExactString()
	}
	deepEqual(t, constInt("xy"), "3")
	deepEqual(t, constInt("overlap"), "0")
	deepEqual(t, constInt("all"), "7")
}

func TestGenerateHostRecord(t *testing.T) {
	host := `package p

import "time"

type Event struct {
	At      time.Time
	Payload []byte ` + "`tracker:\"no_eq\"`" + `
	note    string

	tracker EventTracker
}

func (e *Event) Describe() string { return e.note }
`
	raw := &RawRecord{
		Schema:  "events",
		Name:    "Event",
		Methods: []string{"Describe"},
		Taken:   []string{"Event"},
		Fields: []RawField{
			{Name: "At", Type: "time.Time", Imports: []Import{{Path: "time"}}},
			{Name: "Payload", Type: "[]byte", Markers: []string{"no_eq"}},
			{Name: "note", Type: "string"},
			{Name: "tracker", Type: "EventTracker"},
		},
	}
	rs, err := Build(raw, Options{})
	ok(t, err)
	scm := NewSchema("events", "p")
	scm.AddRecord(rs)

	src := generate(t, scm)
	if strings.Contains(src, "type Event struct") {
		t.Errorf("host record was redeclared:\n%s", src)
	}
	if !strings.Contains(src, "\t\"time\"\n") {
		t.Errorf("missing time import:\n%s", src)
	}
	if !strings.Contains(src, "func (e *Event) setNote(value string)") {
		t.Errorf("missing unexported setter:\n%s", src)
	}
	typecheck(t, map[string]string{"event.go": host, "tracker_gen.go": src})
}

func TestGenerateGeneric(t *testing.T) {
	scm := NewSchema("pairs", "p")
	_, err := DefineRecord(scm, "Pair", Options{}, func(b *RecordBuilder) {
		b.TypeParams("[K comparable, V any]")
		b.Field("Key", "K")
		b.Field("Value", "V", "no_eq")
	})
	ok(t, err)
	src := generate(t, scm)
	if !strings.Contains(src, "type Pair[K comparable, V any] struct") || !strings.Contains(src, "func (p *Pair[K, V]) SetKey(value K)") {
		t.Errorf("unexpected generic output:\n%s", src)
	}
	typecheck(t, map[string]string{"tracker_gen.go": src, "use.go": "package p\n\nvar _ = (&Pair[string, []int]{}).ChangedValue\n"})

	_, err = DefineRecord(scm, "Bad", Options{}, func(b *RecordBuilder) {
		b.TypeParams("[V any]")
		b.Field("Value", "V")
	})
	wantKind(t, err, MissingEqualityCapability)
}

func TestGenerateWidths(t *testing.T) {
	for _, n := range []int{0, 1, 8, 9, 16, 17, 33, 64} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			scm := NewSchema("w", "p")
			rs, err := DefineRecord(scm, "R", Options{}, func(b *RecordBuilder) {
				for i := 0; i < n; i++ {
					b.Field(fmt.Sprintf("F%d", i), "int")
				}
				b.Field("Skipped", "[]int", "do_not_track")
			})
			ok(t, err)
			want, _ := WidthFor(n)
			deepEqual(t, rs.Width, want)
			src := generate(t, scm)
			if !strings.Contains(src, "type RTracker "+want.GoType()) {
				t.Errorf("missing tracker type %s:\n%s", want.GoType(), src)
			}
			typecheck(t, map[string]string{"tracker_gen.go": src})
		})
	}
}

func TestGenerateWide(t *testing.T) {
	scm := NewSchema("wide", "p")
	rs, err := DefineRecord(scm, "Big", Options{}, func(b *RecordBuilder) {
		for i := 0; i < 70; i++ {
			b.Field(fmt.Sprintf("F%d", i), "int")
		}
	})
	ok(t, err)
	deepEqual(t, rs.Width, Width128)
	lo, hi := rs.AllMask()
	deepEqual(t, lo, ^uint64(0))
	deepEqual(t, hi, uint64(0x3f))

	src := generate(t, scm)
	for _, want := range []string{
		"\t\"" + BitsetImportPath + "\"\n",
		"type BigTracker = bitset.U128",
		"BigMaskF69 = bitset.Bit(69)",
		"BigMaskAll = bitset.FromWords(0xffffffffffffffff, 0x3f)",
		"b.tracker = b.tracker.Or(BigMaskF0)",
		"return b.tracker.Intersects(mask)",
		"b.tracker = BigTracker{}",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source lacks %q", want)
		}
	}
}

func TestGenerateUnexportedRecord(t *testing.T) {
	scm := NewSchema("s", "p")
	_, err := DefineRecord(scm, "state", Options{StorageField: "dirty"}, func(b *RecordBuilder) {
		b.Field("Count", "int")
		b.Field("raw_text", "string")
	})
	ok(t, err)
	src := generate(t, scm)
	for _, want := range []string{
		"type stateTracker uint8",
		"stateMaskCount",
		"stateMaskRawText",
		"func (s *state) changedAny() bool",
		"func (s *state) GetCount() int",
		"func (s *state) setRawText(value string)",
		"s.dirty |= stateMaskCount",
		"dirty stateTracker",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source lacks %q:\n%s", want, src)
		}
	}
	typecheck(t, map[string]string{"tracker_gen.go": src})
}

func TestSchemaRejectsDuplicateRecord(t *testing.T) {
	scm := NewSchema("points", "p")
	definePoint(t, scm)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	definePoint(t, scm)
}

func TestGenerateGuardsDynamicEquality(t *testing.T) {
	scm := NewSchema("boxes", "p")
	rs, err := DefineRecord(scm, "Box", Options{}, func(b *RecordBuilder) {
		b.Field("V", "any")
		b.Field("Err", "error")
		b.Field("Pair", "[2]interface{ String() string }")
		b.Field("N", "int")
		b.Field("Raw", "any", "no_eq")
	})
	ok(t, err)
	var guarded []string
	for _, f := range rs.Fields {
		if f.GuardEquality {
			guarded = append(guarded, f.Name)
		}
	}
	deepEqual(t, guarded, []string{"V", "Err", "Pair"})

	src := generate(t, scm)
	for _, s := range []string{
		"\t\"reflect\"\n",
		"\tif !trackerEqual(b.V, value) {\n",
		"\tif !trackerEqual(b.Pair, value) {\n",
		"\tif b.N != value {\n",
		"func trackerEqual(a, b any) bool {\n",
	} {
		if !strings.Contains(src, s) {
			t.Errorf("missing %q:\n%s", s, src)
		}
	}
	if n := strings.Count(src, "func trackerEqual"); n != 1 {
		t.Errorf("trackerEqual emitted %d times", n)
	}
	typecheck(t, map[string]string{"tracker_gen.go": src})

	plain := NewSchema("plain", "p")
	definePoint(t, plain)
	if src := generate(t, plain); strings.Contains(src, "reflect") || strings.Contains(src, "trackerEqual") {
		t.Errorf("equality helper emitted without guarded fields:\n%s", src)
	}
}

func TestEqualHelperNameIsReserved(t *testing.T) {
	raw := hostRecord("Box", RawField{Name: "V", Type: "any"})
	raw.Taken = []string{"trackerEqual"}
	_, err := Build(raw, Options{})
	wantKind(t, err, ReservedName)

	raw = hostRecord("Box", RawField{Name: "V", Type: "any", Markers: []string{"no_eq"}})
	raw.Taken = []string{"trackerEqual"}
	_, err = Build(raw, Options{})
	ok(t, err)
}
