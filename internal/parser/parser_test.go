package parser

import (
	"strings"
	"testing"

	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/syntax/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyFile(t *testing.T) {
	t.Parallel()

	res := Parse([]byte(""))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	assert.Equal(t, syntax.KindSourceFile, root.Kind())
	assert.Equal(t, "", root.Text())
}

func TestParseFileOfOnlyTriviaRoundTripsLosslessly(t *testing.T) {
	t.Parallel()

	src := "  \n// a comment, no items\n"
	res := Parse([]byte(src))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	assert.Equal(t, syntax.KindSourceFile, root.Kind())
	assert.Equal(t, src, root.Text())
}

func TestParseFunctionWithBodyRoundTripsLosslessly(t *testing.T) {
	t.Parallel()

	src := `/// doubles a number
pub fn double(x: int) -> int {
  x * 2
}
`
	res := Parse([]byte(src))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	assert.Equal(t, src, root.Text())

	sf, ok := (ast.SourceFile{}).Cast(root)
	require.True(t, ok)
	items := sf.Items()
	require.Len(t, items, 1)

	fn, ok := (ast.FunctionDef{}).Cast(items[0].Syntax())
	require.True(t, ok)

	name, ok := ast.NameOf(fn)
	require.True(t, ok)
	assert.Equal(t, "double", name.Text())

	vis, ok := ast.VisibilityOf(fn)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(vis.Syntax().Text(), "pub"))

	docs := ast.DocComments(fn)
	require.Len(t, docs, 1)
	assert.Equal(t, "/// doubles a number", docs[0])

	body, ok := fn.Body()
	require.True(t, ok)
	tail, ok := body.TailExpr()
	require.True(t, ok)
	bin, ok := tail.Kind().(ast.BinExpr)
	require.True(t, ok)
	op, ok := bin.Op()
	require.True(t, ok)
	assert.Equal(t, syntax.KindStar, op)
}

func TestParseWhileExprRoundTripsAsWhileExprNotDesugared(t *testing.T) {
	t.Parallel()

	src := `fn loopit() {
  while true {
    break;
  }
}
`
	res := Parse([]byte(src))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	fnNode := root.FirstChildNode(syntax.KindFunctionDef)
	require.NotNil(t, fnNode)
	fn, ok := (ast.FunctionDef{}).Cast(fnNode)
	require.True(t, ok)

	body, ok := fn.Body()
	require.True(t, ok)
	stmts := body.Stmts()
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].Kind().(ast.ExprStmt)
	require.True(t, ok)
	expr, ok := exprStmt.Expr()
	require.True(t, ok)
	w, ok := expr.Kind().(ast.WhileExpr)
	require.True(t, ok)

	cond, ok := w.Condition()
	require.True(t, ok)
	_, ok = cond.Expr()
	assert.True(t, ok)
}

func TestParsePlaceholderPatternInParam(t *testing.T) {
	t.Parallel()

	src := `fn ignore(_: int) -> int {
  0
}
`
	res := Parse([]byte(src))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	fn := root.FirstChildNode(syntax.KindFunctionDef)
	require.NotNil(t, fn)
	paramList := fn.FirstChildNode(syntax.KindParamList)
	require.NotNil(t, paramList)
	param := paramList.FirstChildNode(syntax.KindParam)
	require.NotNil(t, param)
	placeholder := param.FirstChildNode(syntax.KindPlaceholderPat)
	assert.NotNil(t, placeholder)
}

func TestParseErrorRecoveryOnTrailingOperator(t *testing.T) {
	t.Parallel()

	src := `fn f() { 1 + }`
	res := Parse([]byte(src))
	require.NotEmpty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	assert.Equal(t, src, root.Text())

	fn := root.FirstChildNode(syntax.KindFunctionDef)
	require.NotNil(t, fn)
	block := fn.FirstChildNode(syntax.KindBlockExpr)
	require.NotNil(t, block)

	var sawFlaggedLiteral bool
	var walk func(n *syntax.SyntaxNode)
	walk = func(n *syntax.SyntaxNode) {
		if n.Kind() == syntax.KindLiteral && n.Flags().Has(syntax.NodeFlagMissing) {
			sawFlaggedLiteral = true
		}
		for _, c := range n.ChildNodes() {
			walk(c)
		}
	}
	walk(block)
	assert.True(t, sawFlaggedLiteral)
}

func TestParseStructDefWithRecordFields(t *testing.T) {
	t.Parallel()

	src := `struct Point { x: int, y: int }`
	res := Parse([]byte(src))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	structNode := root.FirstChildNode(syntax.KindStructDef)
	require.NotNil(t, structNode)

	st, ok := (ast.StructDef{}).Cast(structNode)
	require.True(t, ok)
	fields, ok := st.RecordFields()
	require.True(t, ok)
	assert.Len(t, fields.Fields(), 2)
}

func TestParseLetStmtWithoutInitializer(t *testing.T) {
	t.Parallel()

	src := `fn f() {
  let x: int;
  x
}
`
	res := Parse([]byte(src))
	require.Empty(t, res.Errors)

	root := syntax.NewRoot(res.Green)
	block := root.FirstChildNode(syntax.KindFunctionDef).FirstChildNode(syntax.KindBlockExpr)
	require.NotNil(t, block)
	letNode := block.FirstChildNode(syntax.KindLetStmt)
	require.NotNil(t, letNode)

	let, ok := (ast.LetStmt{}).Cast(letNode)
	require.True(t, ok)
	_, hasInit := let.Initializer()
	assert.False(t, hasInit)
	typeRef, hasType := let.TypeRef()
	assert.True(t, hasType)
	pathType, ok := typeRef.Kind().(ast.PathType)
	require.True(t, ok)
	path, ok := pathType.Path()
	require.True(t, ok)
	seg, ok := path.Segment()
	require.True(t, ok)
	nameRef, ok := seg.NameRef()
	require.True(t, ok)
	assert.Equal(t, "int", nameRef.Text())
}
