// Package ast provides typed façades over the untyped internal/syntax
// red-tree cursors: one Go type per grammar production, each exposing
// CanCast/Cast/Syntax, plus category tagged unions (Expr, Pat, Stmt,
// ModuleItem, TypeRef) and mixable capability-owner accessors.
package ast

import "github.com/emberlang/ember/internal/syntax"

// Node is the minimal façade contract: every typed AST type can surface
// its underlying red cursor.
type Node interface {
	Syntax() *syntax.SyntaxNode
}

// castFirstChild returns the first node child of parent whose kind makes
// cast(n) succeed, wrapped in a (T, bool) pair. It is the common
// implementation behind most single-child accessors (e.g. Param.Pat()).
func castFirstChild[T Node](parent *syntax.SyntaxNode, cast func(*syntax.SyntaxNode) (T, bool)) (T, bool) {
	var zero T
	if parent == nil {
		return zero, false
	}
	for _, c := range parent.ChildNodes() {
		if v, ok := cast(c); ok {
			return v, true
		}
	}
	return zero, false
}

// castAllChildren returns every node child of parent for which cast
// succeeds, in source order. Backs list accessors like ArgList.Args().
func castAllChildren[T Node](parent *syntax.SyntaxNode, cast func(*syntax.SyntaxNode) (T, bool)) []T {
	if parent == nil {
		return nil
	}
	var out []T
	for _, c := range parent.ChildNodes() {
		if v, ok := cast(c); ok {
			out = append(out, v)
		}
	}
	return out
}
