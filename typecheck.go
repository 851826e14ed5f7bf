package trackgen

import (
	"bytes"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"slices"
)

// syntacticComparability decides equality capability from a type expression
// alone. Slices, maps and funcs are never comparable; arrays and struct
// literals follow their elements; type parameters follow their constraint.
// Named types defined elsewhere are reported as unknown and allowed.
func syntacticComparability(typeExpr, typeParams string) Comparability {
	expr, err := parser.ParseExpr(typeExpr)
	if err != nil {
		return ComparableUnknown
	}
	constraints := make(map[string]string)
	for _, p := range parseTypeParams(typeParams) {
		constraints[p.name] = p.constraint
	}
	return exprComparability(expr, constraints)
}

func exprComparability(expr ast.Expr, constraints map[string]string) Comparability {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return exprComparability(e.X, constraints)
	case *ast.ArrayType:
		if e.Len == nil {
			return NotComparable
		}
		return exprComparability(e.Elt, constraints)
	case *ast.MapType, *ast.FuncType:
		return NotComparable
	case *ast.StructType:
		result := Comparable
		for _, f := range e.Fields.List {
			switch exprComparability(f.Type, constraints) {
			case NotComparable:
				return NotComparable
			case ComparableUnknown:
				result = ComparableUnknown
			}
		}
		return result
	case *ast.StarExpr, *ast.ChanType, *ast.InterfaceType:
		return Comparable
	case *ast.Ident:
		if c, ok := constraints[e.Name]; ok {
			switch c {
			case "any", "interface{}":
				return NotComparable
			case "comparable":
				return Comparable
			}
			return ComparableUnknown
		}
		if types.Universe.Lookup(e.Name) != nil {
			if t, ok := types.Universe.Lookup(e.Name).(*types.TypeName); ok {
				return boolComparability(types.Comparable(t.Type()))
			}
		}
		return ComparableUnknown
	default:
		return ComparableUnknown
	}
}

// syntacticDynamicEq reports whether == on the type compiles but can panic:
// interfaces and type parameters may hold values of uncomparable dynamic
// types, and so may arrays and struct literals built from them.
func syntacticDynamicEq(typeExpr, typeParams string) bool {
	expr, err := parser.ParseExpr(typeExpr)
	if err != nil {
		return false
	}
	return exprDynamicEq(expr, typeParamNames(typeParams))
}

func exprDynamicEq(expr ast.Expr, params []string) bool {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return exprDynamicEq(e.X, params)
	case *ast.ArrayType:
		return e.Len != nil && exprDynamicEq(e.Elt, params)
	case *ast.StructType:
		for _, f := range e.Fields.List {
			if exprDynamicEq(f.Type, params) {
				return true
			}
		}
		return false
	case *ast.InterfaceType:
		return true
	case *ast.Ident:
		return slices.Contains(params, e.Name) || e.Name == "any" || e.Name == "error"
	default:
		return false
	}
}

func boolComparability(v bool) Comparability {
	if v {
		return Comparable
	}
	return NotComparable
}

// typeInfo type-checks the parsed package files. Errors are tolerated: the
// storage type does not exist before the first run, and imports may fail to
// resolve; fields whose types could not be resolved fall back to syntactic
// analysis.
func typeInfo(fset *token.FileSet, pkgPath string, files []*ast.File) *types.Info {
	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{
		Importer:         importer.ForCompiler(fset, "source", nil),
		Error:            func(error) {},
		FakeImportC:      true,
		IgnoreFuncBodies: true,
	}
	_, _ = conf.Check(pkgPath, fset, files, info)
	return info
}

func typedComparability(info *types.Info, expr ast.Expr) Comparability {
	if info == nil {
		return ComparableUnknown
	}
	tv, ok := info.Types[expr]
	if !ok || tv.Type == nil {
		return ComparableUnknown
	}
	if basic, ok := tv.Type.(*types.Basic); ok && basic.Kind() == types.Invalid {
		return ComparableUnknown
	}
	if hasInvalid(tv.Type) {
		return ComparableUnknown
	}
	return boolComparability(types.Comparable(tv.Type))
}

func typedDynamicEq(info *types.Info, expr ast.Expr) bool {
	if info == nil {
		return false
	}
	tv, ok := info.Types[expr]
	if !ok || tv.Type == nil {
		return false
	}
	return dynamicEq(tv.Type, 0)
}

func dynamicEq(t types.Type, depth int) bool {
	if depth > 32 {
		return false
	}
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam, *types.Interface:
		return true
	case *types.Array:
		return dynamicEq(t.Elem(), depth+1)
	case *types.Struct:
		for i := 0; i < t.NumFields(); i++ {
			if dynamicEq(t.Field(i).Type(), depth+1) {
				return true
			}
		}
		return false
	case *types.Named:
		return dynamicEq(t.Underlying(), depth+1)
	default:
		return false
	}
}

// hasInvalid reports whether an unresolved type hides inside t, in which case
// types.Comparable cannot be trusted.
func hasInvalid(t types.Type) bool {
	switch t := t.(type) {
	case *types.Basic:
		return t.Kind() == types.Invalid
	case *types.Array:
		return hasInvalid(t.Elem())
	case *types.Struct:
		for i := 0; i < t.NumFields(); i++ {
			if hasInvalid(t.Field(i).Type()) {
				return true
			}
		}
		return false
	case *types.Named:
		return hasInvalid(t.Underlying())
	default:
		return false
	}
}

func exprString(fset *token.FileSet, expr ast.Node) string {
	var buf bytes.Buffer
	ensure(printer.Fprint(&buf, fset, expr))
	return buf.String()
}

func typeSpecOf(f *ast.File) *ast.TypeSpec {
	for _, decl := range f.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.TYPE && len(gd.Specs) > 0 {
			if ts, ok := gd.Specs[0].(*ast.TypeSpec); ok {
				return ts
			}
		}
	}
	return nil
}
