package ast

import "github.com/emberlang/ember/internal/syntax"

// LetStmt is a `let pat (: Type)? (= expr)? ;` statement. The initializer
// is optional: `let x;` parses fine and leaves the binding uninitialized
// rather than being rejected at parse time.
type LetStmt struct{ syn *syntax.SyntaxNode }

func (LetStmt) CanCast(k syntax.Kind) bool { return k == syntax.KindLetStmt }

func (LetStmt) Cast(n *syntax.SyntaxNode) (LetStmt, bool) {
	if n == nil || n.Kind() != syntax.KindLetStmt {
		return LetStmt{}, false
	}
	return LetStmt{syn: n}, true
}

func (n LetStmt) Syntax() *syntax.SyntaxNode { return n.syn }

func (n LetStmt) Pat() (Pat, bool) {
	return castFirstChild(n.syn, Pat{}.Cast)
}

func (n LetStmt) TypeRef() (TypeRef, bool) {
	return AscribedType(n)
}

func (n LetStmt) Initializer() (Expr, bool) {
	return castFirstChild(n.syn, Expr{}.Cast)
}

// ExprStmt is an expression used in statement position, `expr;`.
type ExprStmt struct{ syn *syntax.SyntaxNode }

func (ExprStmt) CanCast(k syntax.Kind) bool { return k == syntax.KindExprStmt }

func (ExprStmt) Cast(n *syntax.SyntaxNode) (ExprStmt, bool) {
	if n == nil || n.Kind() != syntax.KindExprStmt {
		return ExprStmt{}, false
	}
	return ExprStmt{syn: n}, true
}

func (n ExprStmt) Syntax() *syntax.SyntaxNode { return n.syn }

func (n ExprStmt) Expr() (Expr, bool) {
	return castFirstChild(n.syn, Expr{}.Cast)
}

// Stmt is the tagged union over every statement production.
type Stmt struct{ syn *syntax.SyntaxNode }

func (Stmt) CanCast(k syntax.Kind) bool {
	switch k {
	case syntax.KindLetStmt, syntax.KindExprStmt:
		return true
	default:
		return false
	}
}

func (Stmt) Cast(n *syntax.SyntaxNode) (Stmt, bool) {
	if n == nil || !(Stmt{}).CanCast(n.Kind()) {
		return Stmt{}, false
	}
	return Stmt{syn: n}, true
}

func (n Stmt) Syntax() *syntax.SyntaxNode { return n.syn }

// StmtKind is the closed set of Stmt alternatives.
type StmtKind interface {
	isStmtKind()
}

func (LetStmt) isStmtKind()  {}
func (ExprStmt) isStmtKind() {}

func (n Stmt) Kind() StmtKind {
	switch n.syn.Kind() {
	case syntax.KindLetStmt:
		v, _ := (LetStmt{}).Cast(n.syn)
		return v
	case syntax.KindExprStmt:
		v, _ := (ExprStmt{}).Cast(n.syn)
		return v
	default:
		panic("ast: Stmt.Kind: unreachable syntax kind " + n.syn.Kind().String())
	}
}
