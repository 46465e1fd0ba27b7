// Package itemtree collects a file's top-level declarations into a flat,
// deterministic summary independent of their bodies.
//
// Walking follows the same "walk, switch on kind, record a span" shape as
// the node-walking helpers in internal/lint's rules_helpers.go
// (forEachNamedNode, hasChildByKind, firstChildSpanByKind), retargeted
// from raw CST-node walking to the typed ast façade: one pass over
// ast.SourceFile's ModuleItem children in source order.
package itemtree

import (
	"strings"

	"github.com/emberlang/ember/internal/arena"
	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/syntax/ast"
	"github.com/emberlang/ember/internal/text"
)

// ItemKind discriminates a top-level declaration.
type ItemKind int

const (
	ItemFunction ItemKind = iota
	ItemStruct
)

func (k ItemKind) String() string {
	switch k {
	case ItemFunction:
		return "Function"
	case ItemStruct:
		return "Struct"
	default:
		return "Unknown"
	}
}

// FieldShape discriminates how a struct's fields are spelled.
type FieldShape int

const (
	// FieldShapeUnit is a `struct Name;` with no fields at all.
	FieldShapeUnit FieldShape = iota
	// FieldShapeRecord is `struct Name { a: T, b: U }`.
	FieldShapeRecord
	// FieldShapeTuple is `struct Name(T, U)`.
	FieldShapeTuple
)

// Field is one struct field's shape, name (record fields only) and
// declared type text.
type Field struct {
	Name     string // empty for tuple fields
	TypeText string
}

// FunctionSig is a function item's structural signature stub: enough to
// distinguish callers without re-parsing the body.
type FunctionSig struct {
	Params   []Field // Name + TypeText per parameter, in order
	RetType  string  // "" if the function has no `-> Type` suffix
	HasRet   bool
}

// StructShape is a struct item's field shape and field list.
type StructShape struct {
	Shape  FieldShape
	Fields []Field
}

// Item is one top-level declaration's collected summary.
type Item struct {
	Kind      ItemKind
	Name      arena.Symbol
	Public    bool
	DocText   string
	Span      text.Span
	NameSpan  text.Span
	Func      FunctionSig  // valid when Kind == ItemFunction
	Struct    StructShape  // valid when Kind == ItemStruct
}

// Tree is a file's flat, source-order list of top-level items plus the
// interner its Symbols were allocated from.
type Tree struct {
	Items    []Item
	Interner *arena.Interner
}

// Collect walks root's ModuleItem children in source order and records
// each one's ItemKind, interned name, visibility, concatenated doc-comment
// text and structural signature stub.
//
// Collect is deterministic: re-parsing identical source text produces a
// structurally equal Green tree (a distinct one, since each parse has its
// own NodeCache), and walking it here always yields an equal Tree (same
// Items in the same order, same Symbol values from a freshly built
// Interner). The query layer memoizes item trees by (file, revision), not
// by Tree equality.
func Collect(root *syntax.SyntaxNode) *Tree {
	interner := &arena.Interner{}
	sf, ok := (ast.SourceFile{}).Cast(root)
	if !ok {
		return &Tree{Interner: interner}
	}

	var items []Item
	for _, mi := range sf.Items() {
		switch v := mi.Kind().(type) {
		case ast.FunctionDef:
			items = append(items, collectFunction(interner, v))
		case ast.StructDef:
			items = append(items, collectStruct(interner, v))
		}
	}
	return &Tree{Items: items, Interner: interner}
}

func collectFunction(interner *arena.Interner, fn ast.FunctionDef) Item {
	item := Item{
		Kind:    ItemFunction,
		Public:  hasVisibility(fn),
		DocText: joinDocComments(fn.DocComments()),
		Span:    fn.Syntax().Span(),
	}
	if name, ok := fn.Name(); ok {
		item.Name = interner.Intern(name.Text())
		item.NameSpan = name.Syntax().Span()
	}

	var sig FunctionSig
	if paramList, ok := fn.ParamList(); ok {
		for _, p := range paramList.Params() {
			sig.Params = append(sig.Params, Field{
				Name:     patName(p.Pat()),
				TypeText: typeText(p.TypeRef()),
			})
		}
	}
	if ret, ok := fn.RetType(); ok {
		sig.HasRet = true
		sig.RetType = typeText(ret.TypeRef())
	}
	item.Func = sig
	return item
}

func collectStruct(interner *arena.Interner, st ast.StructDef) Item {
	item := Item{
		Kind:    ItemStruct,
		Public:  hasVisibility(st),
		DocText: joinDocComments(st.DocComments()),
		Span:    st.Syntax().Span(),
	}
	if name, ok := st.Name(); ok {
		item.Name = interner.Intern(name.Text())
		item.NameSpan = name.Syntax().Span()
	}

	shape := StructShape{Shape: FieldShapeUnit}
	if recs, ok := st.RecordFields(); ok {
		shape.Shape = FieldShapeRecord
		for _, f := range recs.Fields() {
			name := ""
			if n, ok := f.Name(); ok {
				name = n.Text()
			}
			shape.Fields = append(shape.Fields, Field{
				Name:     name,
				TypeText: typeText(f.TypeRef()),
			})
		}
	} else if tups, ok := st.TupleFields(); ok {
		shape.Shape = FieldShapeTuple
		for _, f := range tups.Fields() {
			shape.Fields = append(shape.Fields, Field{TypeText: typeText(f.TypeRef())})
		}
	}
	item.Struct = shape
	return item
}

func hasVisibility(n ast.Node) bool {
	_, ok := ast.VisibilityOf(n)
	return ok
}

func patName(p ast.Pat, ok bool) string {
	if !ok {
		return ""
	}
	if bind, isBind := p.Kind().(ast.BindPat); isBind {
		if tok := bind.Syntax().FirstChildToken(syntax.KindIdentifier); tok != nil {
			return tok.Text()
		}
	}
	return ""
}

func typeText(t ast.TypeRef, ok bool) string {
	if !ok {
		return ""
	}
	switch v := t.Kind().(type) {
	case ast.PathType:
		path, ok := v.Path()
		if !ok {
			return ""
		}
		seg, ok := path.Segment()
		if !ok {
			return ""
		}
		ref, ok := seg.NameRef()
		if !ok {
			return ""
		}
		return ref.Text()
	case ast.NeverType:
		return "!"
	default:
		return ""
	}
}

func joinDocComments(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}
