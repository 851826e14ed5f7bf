package trackgen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// equalHelper is the generated function comparing values whose == may panic.
const equalHelper = "trackerEqual"

const BitsetImportPath = "github.com/andreyvit/trackgen/bitset"

// GeneratedHeader starts every file written by trackgen. Front-ends skip
// files that begin with it.
const GeneratedHeader = "// Code generated by trackgen. DO NOT EDIT."

// Generate renders the Go source for every record of the schema. The result
// is gofmt-formatted. If formatting fails, the unformatted source is returned
// together with the error so callers can inspect it.
func Generate(scm *Schema) ([]byte, error) {
	buf := sourceBufPool.Get().(*bytes.Buffer)
	defer releaseSourceBuf(buf)

	e := &emitter{buf: buf}
	e.header(scm)
	for _, rs := range scm.records {
		if rs.SynthesizeStorage {
			e.structDecl(rs)
		}
		e.aggregate(rs)
		e.accessors(rs)
	}
	if scm.needsEqualHelper() {
		e.equalFunc()
	}

	src := bytes.Clone(buf.Bytes())
	formatted, err := format.Source(src)
	if err != nil {
		return src, fmt.Errorf("trackgen: formatting generated source for %s: %w", scm.name, err)
	}
	return formatted, nil
}

type emitter struct {
	buf *bytes.Buffer
}

func (e *emitter) p(format string, args ...any) {
	fmt.Fprintf(e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *emitter) nl() {
	e.buf.WriteByte('\n')
}

// doc writes a comment block, one line per entry.
func (e *emitter) doc(lines ...string) {
	for _, line := range lines {
		if line == "" {
			e.p("//")
		} else {
			e.p("// %s", line)
		}
	}
}

func (e *emitter) header(scm *Schema) {
	e.p("%s", GeneratedHeader)
	if scm.name != "" {
		e.p("// Source: %s", scm.name)
	}
	e.nl()
	e.p("package %s", scm.pkg)
	e.nl()

	imports := scm.Imports()
	if scm.needsBitset() {
		imports = append(imports, Import{Path: BitsetImportPath})
	}
	if scm.needsEqualHelper() {
		imports = append(imports, Import{Path: "reflect"})
	}
	slices.SortFunc(imports, func(a, b Import) int {
		return strings.Compare(a.Path, b.Path)
	})
	imports = slices.Compact(imports)
	if len(imports) == 0 {
		return
	}
	e.p("import (")
	for _, imp := range imports {
		if imp.Name != "" {
			e.p("\t%s %q", imp.Name, imp.Path)
		} else {
			e.p("\t%q", imp.Path)
		}
	}
	e.p(")")
	e.nl()
}

func (e *emitter) structDecl(rs *RecordSchema) {
	if rs.Doc != "" {
		e.doc(strings.Split(strings.TrimRight(rs.Doc, "\n"), "\n")...)
	}
	e.p("type %s%s struct {", rs.Name, rs.TypeParams)
	for _, f := range rs.Fields {
		if f.Doc != "" {
			for _, line := range strings.Split(strings.TrimRight(f.Doc, "\n"), "\n") {
				e.p("\t// %s", line)
			}
		}
		decl := f.Name + " " + f.Type
		if f.Embedded {
			decl = f.Type
		}
		if f.Tag != "" {
			decl += " `" + f.Tag + "`"
		}
		e.p("\t%s", decl)
	}
	e.nl()
	e.p("\t%s %s", rs.StorageField, rs.names.trackerType)
	e.p("}")
	e.nl()
}

func (e *emitter) equalFunc() {
	e.doc(
		fmt.Sprintf("%s reports whether a and b are equal. Values whose dynamic type", equalHelper),
		"does not support == are never equal to anything.",
	)
	e.p("func %s(a, b any) bool {", equalHelper)
	e.p("\tif a == nil || b == nil {")
	e.p("\t\treturn a == b")
	e.p("\t}")
	e.p("\treturn reflect.ValueOf(a).Comparable() && a == b")
	e.p("}")
}

// receiverName picks the conventional one-letter receiver.
func receiverName(record string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimLeft(record, "_"))
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "r"
	}
	return string(unicode.ToLower(r))
}
