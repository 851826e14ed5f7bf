package trackgen

import (
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type fieldNames struct {
	get, getMut, set, update, changed, mask string
}

type recordNames struct {
	trackerType, maskAll                      string
	changed, changedAny, reset, markAllChanged string
}

func trackerTypeName(record string) string {
	return record + "Tracker"
}

// camel turns a field name into the word used inside synthesized identifiers:
// "x" -> "X", "no_copy" -> "NoCopy", "_z" -> "Z".
func camel(name string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var buf strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part != "" {
			buf.WriteString(title.String(part))
		}
	}
	return buf.String()
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

func visibility(exported bool, s string) string {
	if exported {
		return s
	}
	return lowerFirst(s)
}

func makeRecordNames(record string) recordNames {
	exported := token.IsExported(record)
	return recordNames{
		trackerType:    trackerTypeName(record),
		maskAll:        record + "MaskAll",
		changed:        visibility(exported, "Changed"),
		changedAny:     visibility(exported, "ChangedAny"),
		reset:          visibility(exported, "Reset"),
		markAllChanged: visibility(exported, "MarkAllChanged"),
	}
}

func makeFieldNames(record, field string) fieldNames {
	exported := token.IsExported(field)
	word := camel(field)
	return fieldNames{
		get:     visibility(exported, "Get"+word),
		getMut:  visibility(exported, "GetMut"+word),
		set:     visibility(exported, "Set"+word),
		update:  visibility(exported, "Update"+word),
		changed: visibility(exported, "Changed"+word),
		mask:    visibility(exported && token.IsExported(record), record+"Mask"+word),
	}
}

// assignNames synthesizes every identifier the generator will emit and fails
// with ReservedName if any of them collides with a declared field, a host
// method, a host package-level identifier or another synthesized name.
func assignNames(raw *RawRecord, rs *RecordSchema) error {
	rs.names = makeRecordNames(rs.Name)

	// Fields and methods share one namespace per type, package-level
	// identifiers another.
	members := make(map[string]string)
	pkgLevel := make(map[string]string)
	for _, f := range rs.Fields {
		members[f.Name] = "field " + f.Name
	}
	members[rs.StorageField] = "tracker storage field"
	for _, m := range raw.Methods {
		members[m] = "method " + m
	}
	for _, id := range raw.Taken {
		pkgLevel[id] = "declaration " + id
	}

	claim := func(ns map[string]string, name, owner, field string) error {
		if prev, ok := ns[name]; ok {
			return schemaErrf(ReservedName, raw, field, nil, "generated %s %s collides with %s", owner, name, prev)
		}
		ns[name] = "generated " + owner
		return nil
	}

	if rs.guardsEquality() {
		if err := claim(pkgLevel, equalHelper, "function", ""); err != nil {
			return err
		}
	}

	rn := rs.names
	if err := claim(pkgLevel, rn.trackerType, "type", ""); err != nil {
		return err
	}
	if err := claim(pkgLevel, rn.maskAll, "mask", ""); err != nil {
		return err
	}
	for _, m := range []string{rn.changed, rn.changedAny, rn.reset, rn.markAllChanged} {
		if err := claim(members, m, "method", ""); err != nil {
			return err
		}
	}

	for i := range rs.Fields {
		f := &rs.Fields[i]
		if !f.Trackable {
			continue
		}
		if f.Name == "_" {
			return schemaErrf(ReservedName, raw, f.Name, nil, "blank fields cannot be tracked; mark them do_not_track")
		}
		f.names = makeFieldNames(rs.Name, f.Name)
		for _, m := range []string{f.names.get, f.names.getMut, f.names.set, f.names.update, f.names.changed} {
			if err := claim(members, m, "method", f.Name); err != nil {
				return err
			}
		}
		if err := claim(pkgLevel, f.names.mask, "mask", f.Name); err != nil {
			return err
		}
	}
	return nil
}

// typeParamNames extracts parameter names from a type parameter list such as
// "[K comparable, V any]" or "[A, B any]".
func typeParamNames(params string) []string {
	var names []string
	for _, p := range parseTypeParams(params) {
		names = append(names, p.name)
	}
	return names
}

type typeParam struct {
	name       string
	constraint string
}

func parseTypeParams(params string) []typeParam {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil
	}
	src := "package p\ntype _ " + params + " struct{}"
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, 0)
	if err != nil {
		return nil
	}
	ts := typeSpecOf(f)
	if ts == nil || ts.TypeParams == nil {
		return nil
	}
	var result []typeParam
	for _, fld := range ts.TypeParams.List {
		c := exprString(fset, fld.Type)
		for _, n := range fld.Names {
			result = append(result, typeParam{n.Name, c})
		}
	}
	return result
}
