package ast

import "github.com/emberlang/ember/internal/syntax"

// BindPat introduces a name binding, e.g. the `x` in `let x = 1;`.
type BindPat struct{ syn *syntax.SyntaxNode }

func (BindPat) CanCast(k syntax.Kind) bool { return k == syntax.KindBindPat }

func (BindPat) Cast(n *syntax.SyntaxNode) (BindPat, bool) {
	if n == nil || n.Kind() != syntax.KindBindPat {
		return BindPat{}, false
	}
	return BindPat{syn: n}, true
}

func (n BindPat) Syntax() *syntax.SyntaxNode { return n.syn }

// PlaceholderPat is the `_` discard pattern.
type PlaceholderPat struct{ syn *syntax.SyntaxNode }

func (PlaceholderPat) CanCast(k syntax.Kind) bool { return k == syntax.KindPlaceholderPat }

func (PlaceholderPat) Cast(n *syntax.SyntaxNode) (PlaceholderPat, bool) {
	if n == nil || n.Kind() != syntax.KindPlaceholderPat {
		return PlaceholderPat{}, false
	}
	return PlaceholderPat{syn: n}, true
}

func (n PlaceholderPat) Syntax() *syntax.SyntaxNode { return n.syn }

// Pat is the tagged union over every pattern production.
type Pat struct{ syn *syntax.SyntaxNode }

func (Pat) CanCast(k syntax.Kind) bool {
	switch k {
	case syntax.KindBindPat, syntax.KindPlaceholderPat:
		return true
	default:
		return false
	}
}

func (Pat) Cast(n *syntax.SyntaxNode) (Pat, bool) {
	if n == nil || !(Pat{}).CanCast(n.Kind()) {
		return Pat{}, false
	}
	return Pat{syn: n}, true
}

func (n Pat) Syntax() *syntax.SyntaxNode { return n.syn }

// PatKind is the closed set of Pat alternatives.
type PatKind interface {
	isPatKind()
}

func (BindPat) isPatKind()        {}
func (PlaceholderPat) isPatKind() {}

func (n Pat) Kind() PatKind {
	switch n.syn.Kind() {
	case syntax.KindBindPat:
		v, _ := (BindPat{}).Cast(n.syn)
		return v
	case syntax.KindPlaceholderPat:
		v, _ := (PlaceholderPat{}).Cast(n.syn)
		return v
	default:
		panic("ast: Pat.Kind: unreachable syntax kind " + n.syn.Kind().String())
	}
}
