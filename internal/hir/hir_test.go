package hir

import (
	"testing"

	"github.com/emberlang/ember/internal/arena"
	"github.com/emberlang/ember/internal/parser"
	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/syntax/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lowerFirstFn(t *testing.T, src string) (*Body, *arena.Interner) {
	t.Helper()
	res := parser.Parse([]byte(src))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	sf, ok := (ast.SourceFile{}).Cast(root)
	require.True(t, ok)
	items := sf.Items()
	require.NotEmpty(t, items)

	fn, ok := (ast.FunctionDef{}).Cast(items[0].Syntax())
	require.True(t, ok)

	interner := &arena.Interner{}
	body, ok := LowerBody(fn, interner)
	require.True(t, ok)
	return body, interner
}

func TestLowerBinExprProducesLhsRhsAndOp(t *testing.T) {
	t.Parallel()

	body, _ := lowerFirstFn(t, `fn f() {
  1 + 2
}
`)
	entry := body.Exprs.Get(body.Entry)
	require.True(t, entry.HasTail)

	tail := body.Exprs.Get(entry.Tail)
	assert.Equal(t, ExprBin, tail.Kind)
	assert.Equal(t, BinAdd, tail.BinOp)

	lhs := body.Exprs.Get(tail.Lhs)
	rhs := body.Exprs.Get(tail.Rhs)
	assert.Equal(t, "1", lhs.LiteralText)
	assert.Equal(t, "2", rhs.LiteralText)

	span, ok := body.Provenance.TryGet(body.Entry)
	assert.True(t, ok)
	assert.True(t, span.End > span.Start)
}

func TestLowerIfWithoutElseSynthesizesUnitElse(t *testing.T) {
	t.Parallel()

	body, _ := lowerFirstFn(t, `fn f() {
  if true {
    1
  }
}
`)
	entry := body.Exprs.Get(body.Entry)
	require.Len(t, entry.Stmts, 1)

	stmt := body.Stmts.Get(entry.Stmts[0])
	assert.Equal(t, StmtExpr, stmt.Kind)

	ifExpr := body.Exprs.Get(stmt.Expr)
	require.Equal(t, ExprIf, ifExpr.Kind)
	assert.False(t, ifExpr.Synthetic)

	elseBlock := body.Exprs.Get(ifExpr.Else)
	assert.Equal(t, ExprBlock, elseBlock.Kind)
	assert.True(t, elseBlock.Synthetic)
	assert.Empty(t, elseBlock.Stmts)
	assert.False(t, elseBlock.HasTail)

	elseSpan, hasProvenance := body.Provenance.TryGet(ifExpr.Else)
	assert.True(t, hasProvenance)
	ifSpan, ok := body.Provenance.TryGet(stmt.Expr)
	require.True(t, ok)
	assert.Equal(t, ifSpan, elseSpan)
}

func TestLowerWhileDesugarsToLoopWithConditionalBreak(t *testing.T) {
	t.Parallel()

	body, _ := lowerFirstFn(t, `fn f() {
  while true {
    1;
  }
}
`)
	entry := body.Exprs.Get(body.Entry)
	require.Len(t, entry.Stmts, 1)

	outerStmt := body.Stmts.Get(entry.Stmts[0])
	loopExpr := body.Exprs.Get(outerStmt.Expr)
	require.Equal(t, ExprLoop, loopExpr.Kind)
	assert.False(t, loopExpr.Synthetic) // corresponds directly to the WhileExpr

	loopBody := body.Exprs.Get(loopExpr.Body)
	require.GreaterOrEqual(t, len(loopBody.Stmts), 2)

	guardStmt := body.Stmts.Get(loopBody.Stmts[0])
	assert.True(t, guardStmt.Synthetic)
	guardExpr := body.Exprs.Get(guardStmt.Expr)
	require.Equal(t, ExprIf, guardExpr.Kind)
	assert.True(t, guardExpr.Synthetic)

	negCond := body.Exprs.Get(guardExpr.Cond)
	assert.Equal(t, ExprPrefix, negCond.Kind)
	assert.Equal(t, UnaryNot, negCond.UnaryOp)

	breakBlock := body.Exprs.Get(guardExpr.Then)
	require.Len(t, breakBlock.Stmts, 1)
	breakStmt := body.Stmts.Get(breakBlock.Stmts[0])
	breakExpr := body.Exprs.Get(breakStmt.Expr)
	assert.Equal(t, ExprBreak, breakExpr.Kind)

	// second statement is the user's own `1;`, carrying real provenance
	userStmt := body.Stmts.Get(loopBody.Stmts[1])
	assert.False(t, userStmt.Synthetic)
}

func TestLowerLetWithoutInitializerIsFlaggedUninitialized(t *testing.T) {
	t.Parallel()

	body, interner := lowerFirstFn(t, `fn f() {
  let x: int;
  x
}
`)
	entry := body.Exprs.Get(body.Entry)
	require.Len(t, entry.Stmts, 1)

	letStmt := body.Stmts.Get(entry.Stmts[0])
	assert.Equal(t, StmtLet, letStmt.Kind)
	assert.True(t, letStmt.Uninitialized)

	pat := body.Pats.Get(letStmt.Pat)
	assert.Equal(t, PatBind, pat.Kind)
	assert.Equal(t, "x", interner.Resolve(pat.Name))

	require.True(t, entry.HasTail)
	tail := body.Exprs.Get(entry.Tail)
	assert.Equal(t, ExprPath, tail.Kind)
	assert.Equal(t, "x", interner.Resolve(tail.Symbol))
}

func TestLowerPlaceholderPatDiscardsBinding(t *testing.T) {
	t.Parallel()

	body, _ := lowerFirstFn(t, `fn f() {
  let _ = 1;
  0
}
`)
	entry := body.Exprs.Get(body.Entry)
	require.Len(t, entry.Stmts, 1)

	letStmt := body.Stmts.Get(entry.Stmts[0])
	assert.False(t, letStmt.Uninitialized)
	pat := body.Pats.Get(letStmt.Pat)
	assert.Equal(t, PatPlaceholder, pat.Kind)
}

func TestLowerCallExprLowersCalleeThenArgsLeftToRight(t *testing.T) {
	t.Parallel()

	body, interner := lowerFirstFn(t, `fn f() {
  add(1, 2)
}
`)
	entry := body.Exprs.Get(body.Entry)
	require.True(t, entry.HasTail)

	call := body.Exprs.Get(entry.Tail)
	require.Equal(t, ExprCall, call.Kind)

	callee := body.Exprs.Get(call.Callee)
	assert.Equal(t, ExprPath, callee.Kind)
	assert.Equal(t, "add", interner.Resolve(callee.Symbol))

	require.Len(t, call.Args, 2)
	arg0 := body.Exprs.Get(call.Args[0])
	arg1 := body.Exprs.Get(call.Args[1])
	assert.Equal(t, "1", arg0.LiteralText)
	assert.Equal(t, "2", arg1.LiteralText)
}

func TestLowerPrefixExprMapsOperatorTokens(t *testing.T) {
	t.Parallel()

	body, _ := lowerFirstFn(t, `fn f() {
  !true
}
`)
	entry := body.Exprs.Get(body.Entry)
	require.True(t, entry.HasTail)

	prefix := body.Exprs.Get(entry.Tail)
	require.Equal(t, ExprPrefix, prefix.Kind)
	assert.Equal(t, UnaryNot, prefix.UnaryOp)
}
