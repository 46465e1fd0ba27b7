package ast

import "github.com/emberlang/ember/internal/syntax"

// Name is a binding occurrence of an identifier (e.g. a function's own
// name, a struct field's name). A let-bound variable's identifier sits
// directly in its BIND_PAT, not in a Name.
type Name struct{ syn *syntax.SyntaxNode }

func (Name) CanCast(k syntax.Kind) bool { return k == syntax.KindName }

func (Name) Cast(n *syntax.SyntaxNode) (Name, bool) {
	if n == nil || n.Kind() != syntax.KindName {
		return Name{}, false
	}
	return Name{syn: n}, true
}

func (n Name) Syntax() *syntax.SyntaxNode { return n.syn }

// Text returns the identifier's spelling.
func (n Name) Text() string {
	if tok := n.syn.FirstChildToken(syntax.KindIdentifier); tok != nil {
		return tok.Text()
	}
	return ""
}

// NameRef is a referring occurrence of an identifier (e.g. a path segment).
type NameRef struct{ syn *syntax.SyntaxNode }

func (NameRef) CanCast(k syntax.Kind) bool { return k == syntax.KindNameRef }

func (NameRef) Cast(n *syntax.SyntaxNode) (NameRef, bool) {
	if n == nil || n.Kind() != syntax.KindNameRef {
		return NameRef{}, false
	}
	return NameRef{syn: n}, true
}

func (n NameRef) Syntax() *syntax.SyntaxNode { return n.syn }

func (n NameRef) Text() string {
	if tok := n.syn.FirstChildToken(syntax.KindIdentifier); tok != nil {
		return tok.Text()
	}
	return ""
}

// PathSegment is one `name` component of a Path. Ember has no module
// qualifiers yet, so a segment is just a NameRef, but the node exists to
// keep Path's shape ready for future qualified paths.
type PathSegment struct{ syn *syntax.SyntaxNode }

func (PathSegment) CanCast(k syntax.Kind) bool { return k == syntax.KindPathSegment }

func (PathSegment) Cast(n *syntax.SyntaxNode) (PathSegment, bool) {
	if n == nil || n.Kind() != syntax.KindPathSegment {
		return PathSegment{}, false
	}
	return PathSegment{syn: n}, true
}

func (n PathSegment) Syntax() *syntax.SyntaxNode { return n.syn }

func (n PathSegment) NameRef() (NameRef, bool) {
	return castFirstChild(n.syn, NameRef{}.Cast)
}

// Path is a (possibly qualified) reference to an item or binding.
type Path struct{ syn *syntax.SyntaxNode }

func (Path) CanCast(k syntax.Kind) bool { return k == syntax.KindPath }

func (Path) Cast(n *syntax.SyntaxNode) (Path, bool) {
	if n == nil || n.Kind() != syntax.KindPath {
		return Path{}, false
	}
	return Path{syn: n}, true
}

func (n Path) Syntax() *syntax.SyntaxNode { return n.syn }

func (n Path) Segment() (PathSegment, bool) {
	return castFirstChild(n.syn, PathSegment{}.Cast)
}

func (n Path) Qualifier() (Path, bool) {
	return castFirstChild(n.syn, Path{}.Cast)
}

// PathType is a type reference spelled as a path, e.g. `int` or `Point`.
type PathType struct{ syn *syntax.SyntaxNode }

func (PathType) CanCast(k syntax.Kind) bool { return k == syntax.KindPathType }

func (PathType) Cast(n *syntax.SyntaxNode) (PathType, bool) {
	if n == nil || n.Kind() != syntax.KindPathType {
		return PathType{}, false
	}
	return PathType{syn: n}, true
}

func (n PathType) Syntax() *syntax.SyntaxNode { return n.syn }

func (n PathType) Path() (Path, bool) {
	return castFirstChild(n.syn, Path{}.Cast)
}

// NeverType is the bottom type of a function that never returns normally.
type NeverType struct{ syn *syntax.SyntaxNode }

func (NeverType) CanCast(k syntax.Kind) bool { return k == syntax.KindNeverType }

func (NeverType) Cast(n *syntax.SyntaxNode) (NeverType, bool) {
	if n == nil || n.Kind() != syntax.KindNeverType {
		return NeverType{}, false
	}
	return NeverType{syn: n}, true
}

func (n NeverType) Syntax() *syntax.SyntaxNode { return n.syn }

// TypeRef is the tagged union over every type-reference production.
type TypeRef struct{ syn *syntax.SyntaxNode }

func (TypeRef) CanCast(k syntax.Kind) bool {
	switch k {
	case syntax.KindPathType, syntax.KindNeverType:
		return true
	default:
		return false
	}
}

func (TypeRef) Cast(n *syntax.SyntaxNode) (TypeRef, bool) {
	if n == nil || !(TypeRef{}).CanCast(n.Kind()) {
		return TypeRef{}, false
	}
	return TypeRef{syn: n}, true
}

func (n TypeRef) Syntax() *syntax.SyntaxNode { return n.syn }

// TypeRefKind is the closed set of TypeRef alternatives.
type TypeRefKind interface {
	isTypeRefKind()
}

func (PathType) isTypeRefKind()  {}
func (NeverType) isTypeRefKind() {}

// Kind discriminates n into its concrete alternative. It panics if n's
// underlying node kind is not one TypeRef.CanCast recognizes, which would
// indicate the tree was built inconsistently with the SyntaxKind it
// carries — an invariant violation, not a recoverable parse error.
func (n TypeRef) Kind() TypeRefKind {
	switch n.syn.Kind() {
	case syntax.KindPathType:
		v, _ := (PathType{}).Cast(n.syn)
		return v
	case syntax.KindNeverType:
		v, _ := (NeverType{}).Cast(n.syn)
		return v
	default:
		panic("ast: TypeRef.Kind: unreachable syntax kind " + n.syn.Kind().String())
	}
}
