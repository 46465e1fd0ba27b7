// Package hir lowers a function body's lossless syntax tree into a small,
// desugared intermediate representation: three flat arenas (expressions,
// patterns, statements) plus a provenance map back to source spans.
//
// Grounded in shape on other_examples/.../surge/internal/hir/lower.go: a
// lowerer struct closing over the arenas and interner, one lowerX method
// per grammar production, driven by a top-level entry point.
package hir

import (
	"github.com/emberlang/ember/internal/arena"
	"github.com/emberlang/ember/internal/text"
)

// ExprKind discriminates an Expr's alternative.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprPath
	ExprPrefix
	ExprBin
	ExprCall
	ExprIf
	ExprLoop
	ExprReturn
	ExprBreak
	ExprBlock
	ExprMissing // recovery placeholder, lowered from a NodeFlagMissing/ERROR node
)

// UnaryOp is a PrefixExpr's operator.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryDeref
)

// BinOp is a BinExpr's operator.
type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

// Expr is one lowered expression. Only the fields relevant to Kind are
// meaningful; the rest are zero. Synthetic marks a node lowering
// synthesized rather than one that traces back to a source expression
// (the WhileExpr desugaring's injected `if !cond { break }`, an IfExpr's
// synthesized unit else branch).
type Expr struct {
	Kind      ExprKind
	Synthetic bool

	// ExprLiteral
	LiteralText string

	// ExprPath
	Symbol arena.Symbol

	// ExprPrefix
	UnaryOp  UnaryOp
	Operand  arena.Idx[Expr]

	// ExprBin
	BinOp BinOp
	Lhs   arena.Idx[Expr]
	Rhs   arena.Idx[Expr]

	// ExprCall
	Callee arena.Idx[Expr]
	Args   []arena.Idx[Expr]

	// ExprIf
	Cond arena.Idx[Expr]
	Then arena.Idx[Expr] // always an ExprBlock
	Else arena.Idx[Expr] // always an ExprBlock; synthesized when source omits it

	// ExprLoop
	Body arena.Idx[Expr] // always an ExprBlock

	// ExprReturn / ExprBreak
	HasValue bool
	Value    arena.Idx[Expr]

	// ExprBlock
	Stmts   []arena.Idx[Stmt]
	HasTail bool
	Tail    arena.Idx[Expr]
}

// PatKind discriminates a Pat's alternative.
type PatKind int

const (
	PatBind PatKind = iota
	PatPlaceholder
)

// Pat is one lowered pattern.
type Pat struct {
	Kind PatKind
	Name arena.Symbol // PatBind only
}

// StmtKind discriminates a Stmt's alternative.
type StmtKind int

const (
	StmtLet StmtKind = iota
	StmtExpr
)

// Stmt is one lowered statement.
type Stmt struct {
	Kind      StmtKind
	Synthetic bool

	// StmtLet
	Pat           arena.Idx[Pat]
	Uninitialized bool
	Init          arena.Idx[Expr]

	// StmtExpr
	Expr arena.Idx[Expr]
}

// Body is one function's fully lowered representation: the three arenas
// plus its entry BlockExpr and a provenance map from every Expr back to a
// syntax span. Synthetic expressions record the span of the construct they
// were synthesized from (a WhileExpr for the desugared guard, an IfExpr for
// a synthesized unit else) rather than a span of their own.
type Body struct {
	Exprs      arena.Arena[Expr]
	Pats       arena.Arena[Pat]
	Stmts      arena.Arena[Stmt]
	Provenance arena.ArenaMap[Expr, text.Span]
	Entry      arena.Idx[Expr] // the ExprBlock for the function's top-level body
}
