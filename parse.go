package trackgen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Package is the result of scanning a Go package directory for records.
type Package struct {
	Dir     string
	Name    string
	Path    string
	Records []*RawRecord
}

type ParseOptions struct {
	// PkgPath names the package in diagnostics and type checking. Defaults to
	// the directory name.
	PkgPath string
	// Types selects records by name. When empty, every struct carrying a
	// //tracker:track directive is selected.
	Types []string
	// Skip lists files to ignore, typically the output file.
	Skip []string
}

// ParseDir scans the non-test Go files of dir. Files starting with
// GeneratedHeader are skipped so that a previous run's output never
// collides with the next one.
func ParseDir(dir string, opt ParseOptions) (*Package, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]bool)
	for _, s := range opt.Skip {
		if abs, err := filepath.Abs(s); err == nil {
			skip[abs] = true
		}
	}

	ents, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("trackgen: %w", err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, ent := range ents {
		name := ent.Name()
		if ent.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		path := filepath.Join(absDir, name)
		if skip[path] {
			continue
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("trackgen: %w", err)
		}
		if isGenerated(f) {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("trackgen: no Go files in %s", absDir)
	}

	pkg := &Package{
		Dir:  absDir,
		Name: files[0].Name.Name,
		Path: opt.PkgPath,
	}
	if pkg.Path == "" {
		pkg.Path = filepath.Base(absDir)
	}
	for _, f := range files[1:] {
		if f.Name.Name != pkg.Name {
			return nil, fmt.Errorf("trackgen: %s: found packages %s and %s", absDir, pkg.Name, f.Name.Name)
		}
	}

	p := &pkgParser{
		fset:    fset,
		pkg:     pkg,
		info:    typeInfo(fset, pkg.Path, files),
		methods: make(map[string][]string),
	}
	p.collectDecls(files)

	wanted := make(map[string]bool)
	for _, t := range opt.Types {
		wanted[t] = true
	}
	for _, f := range files {
		if err := p.collectRecords(f, wanted); err != nil {
			return nil, err
		}
	}
	for name := range wanted {
		if !slices.ContainsFunc(pkg.Records, func(r *RawRecord) bool { return r.Name == name }) {
			return nil, fmt.Errorf("trackgen: %s: struct type %s not found", pkg.Path, name)
		}
	}
	return pkg, nil
}

func isGenerated(f *ast.File) bool {
	for _, cg := range f.Comments {
		if cg.Pos() >= f.Package {
			break
		}
		for _, c := range cg.List {
			if c.Text == GeneratedHeader {
				return true
			}
		}
	}
	return false
}

type pkgParser struct {
	fset    *token.FileSet
	pkg     *Package
	info    *types.Info
	methods map[string][]string
	taken   []string
}

func (p *pkgParser) pos(pos token.Pos) string {
	position := p.fset.Position(pos)
	return fmt.Sprintf("%s:%d", filepath.Base(position.Filename), position.Line)
}

// collectDecls records package-level identifiers and methods per receiver
// type; generated names must not collide with either.
func (p *pkgParser) collectDecls(files []*ast.File) {
	for _, f := range files {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil || len(d.Recv.List) == 0 {
					p.taken = append(p.taken, d.Name.Name)
					continue
				}
				if recv := receiverBase(d.Recv.List[0].Type); recv != "" {
					p.methods[recv] = append(p.methods[recv], d.Name.Name)
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						p.taken = append(p.taken, s.Name.Name)
					case *ast.ValueSpec:
						for _, n := range s.Names {
							p.taken = append(p.taken, n.Name)
						}
					}
				}
			}
		}
	}
}

func receiverBase(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.SelectorExpr:
			return e.Sel.Name
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

func (p *pkgParser) collectRecords(f *ast.File, wanted map[string]bool) error {
	imports := fileImports(f)
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			tracked, err := p.recordDirective(ts, doc)
			if err != nil {
				return err
			}
			if len(wanted) > 0 {
				tracked = wanted[ts.Name.Name]
			}
			if !tracked {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return fmt.Errorf("trackgen: %s: %s is not a struct type", p.pos(ts.Pos()), ts.Name.Name)
			}
			p.pkg.Records = append(p.pkg.Records, p.record(ts, st, imports))
		}
	}
	return nil
}

func (p *pkgParser) recordDirective(ts *ast.TypeSpec, doc *ast.CommentGroup) (bool, error) {
	if doc == nil {
		return false, nil
	}
	var tracked bool
	for _, c := range doc.List {
		name, args, ok := parseDirective(c.Text)
		if !ok {
			continue
		}
		raw := &RawRecord{Schema: p.pkg.Path, Name: ts.Name.Name, Pos: p.pos(c.Pos())}
		if name != trackName {
			return false, schemaErrf(InvalidDirective, raw, "", nil, "unknown record directive %q", name)
		}
		if args != "" {
			return false, schemaErrf(InvalidDirective, raw, "", nil, "%s takes no arguments, got %q", trackName, args)
		}
		tracked = true
	}
	return tracked, nil
}

func (p *pkgParser) record(ts *ast.TypeSpec, st *ast.StructType, imports map[string]Import) *RawRecord {
	rec := &RawRecord{
		Schema:  p.pkg.Path,
		Name:    ts.Name.Name,
		Pos:     p.pos(ts.Pos()),
		Methods: p.methods[ts.Name.Name],
		Taken:   p.taken,
	}
	if ts.TypeParams != nil {
		rec.TypeParams = exprString(p.fset, ts.TypeParams)
	}
	for _, fld := range st.Fields.List {
		base := RawField{
			Type:       exprString(p.fset, fld.Type),
			Markers:    fieldMarkers(fld),
			Comparable: typedComparability(p.info, fld.Type),
			DynamicEq:  typedDynamicEq(p.info, fld.Type),
			Imports:    p.typeImports(fld.Type, imports),
		}
		if fld.Tag != nil {
			base.Tag, _ = strconv.Unquote(fld.Tag.Value)
			base.Markers = append(base.Markers, TagMarkers(base.Tag)...)
		}
		if len(fld.Names) == 0 {
			rf := base
			rf.Name = receiverBase(fld.Type)
			rf.Embedded = true
			rf.Pos = p.pos(fld.Pos())
			rec.Fields = append(rec.Fields, rf)
			continue
		}
		for _, n := range fld.Names {
			rf := base
			rf.Name = n.Name
			rf.Pos = p.pos(n.Pos())
			rec.Fields = append(rec.Fields, rf)
		}
	}
	return rec
}

// fieldMarkers collects //tracker:<marker> directives from a field's doc and
// line comments.
func fieldMarkers(fld *ast.Field) []string {
	var result []string
	for _, cg := range []*ast.CommentGroup{fld.Doc, fld.Comment} {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if name, _, ok := parseDirective(c.Text); ok {
				result = append(result, Namespace+":"+name)
			}
		}
	}
	return result
}

// fileImports maps local package names to imports of one file. Unaliased
// imports are keyed by their guessed package name; typeImports prefers the
// type checker's answer when it has one.
func fileImports(f *ast.File) map[string]Import {
	result := make(map[string]Import)
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := Import{Path: path}
		local := guessPackageName(path)
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
			local = spec.Name.Name
		}
		result[local] = imp
	}
	return result
}

func (p *pkgParser) typeImports(expr ast.Expr, imports map[string]Import) []Import {
	var result []Import
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		if imp, ok := imports[id.Name]; ok {
			result = append(result, imp)
			return false
		}
		if pn, ok := p.info.Uses[id].(*types.PkgName); ok {
			path := pn.Imported().Path()
			for _, imp := range imports {
				if imp.Path == path {
					result = append(result, Import{Name: id.Name, Path: path})
					break
				}
			}
		}
		return false
	})
	return result
}

// guessPackageName applies the usual conventions: last path element, minus a
// major version suffix, minus gopkg.in's .vN, minus go- and -go affixes.
func guessPackageName(path string) string {
	elems := strings.Split(path, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	if i := strings.Index(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, "-go")
	return strings.NewReplacer("-", "", ".", "").Replace(name)
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}
