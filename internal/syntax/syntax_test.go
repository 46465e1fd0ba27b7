package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample() *GreenNode {
	b := NewBuilder()
	b.StartNode() // SOURCE_FILE
	b.StartNode() // FUNCTION_DEF
	b.Token(KindKwFn, "fn")
	b.Token(KindIdentifier, " main")
	b.StartNode() // PARAM_LIST
	b.Token(KindLParen, "(")
	b.Token(KindRParen, ")")
	b.FinishNode(KindParamList)
	b.StartNode() // BLOCK_EXPR
	b.Token(KindLBrace, " {")
	b.Token(KindRBrace, "}")
	b.FinishNode(KindBlockExpr)
	b.FinishNode(KindFunctionDef)
	b.FinishNode(KindSourceFile)
	return b.Finish()
}

func TestBuilderRoundTripsSourceTextLosslessly(t *testing.T) {
	t.Parallel()

	green := buildSample()
	root := NewRoot(green)

	assert.Equal(t, KindSourceFile, root.Kind())
	assert.Equal(t, "fn main() {}", root.Text())
	assert.Equal(t, 0, int(root.Span().Start))
	assert.Equal(t, len("fn main() {}"), int(root.Span().End))
}

func TestSyntaxNodeChildNavigation(t *testing.T) {
	t.Parallel()

	root := NewRoot(buildSample())
	fn := root.FirstChildNode(KindFunctionDef)
	require.NotNil(t, fn)
	assert.Equal(t, root, fn.Parent())

	params := fn.FirstChildNode(KindParamList)
	require.NotNil(t, params)
	block := params.NextSibling()
	require.NotNil(t, block)
	assert.Equal(t, KindBlockExpr, block.Kind())

	lparen := params.FirstChildToken(KindLParen)
	require.NotNil(t, lparen)
	assert.Equal(t, "(", lparen.Text())
}

func TestNodeCacheDeduplicatesIdenticalSubtrees(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache()
	a := cache.Node(KindPathType, []GreenElement{NewGreenToken(KindIdentifier, "int")})
	b := cache.Node(KindPathType, []GreenElement{NewGreenToken(KindIdentifier, "int")})
	c := cache.Node(KindPathType, []GreenElement{NewGreenToken(KindIdentifier, "float")})

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestNodeFlagsDistinguishOtherwiseIdenticalNodes(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache()
	clean := cache.NodeFlagged(KindError, 0, []GreenElement{NewGreenToken(KindIdentifier, "x")})
	errored := cache.NodeFlagged(KindError, NodeFlagError, []GreenElement{NewGreenToken(KindIdentifier, "x")})

	assert.NotSame(t, clean, errored)
	assert.False(t, clean.Flags().Has(NodeFlagError))
	assert.True(t, errored.Flags().Has(NodeFlagError))
}

func TestBuilderFinishNodeFlaggedMarksErrorNodes(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.StartNode()
	b.Token(KindIdentifier, "garbage")
	b.FinishNodeFlagged(KindError, NodeFlagError)

	root := NewRoot(b.Finish())
	assert.True(t, root.Flags().Has(NodeFlagError))
}

func TestBuilderStartNodeAtWrapsSinceCheckpoint(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.StartNode() // SOURCE_FILE
	cp := b.Checkpoint()
	b.Token(KindIdentifier, "a")
	b.StartNodeAt(cp)
	b.Token(KindPlus, "+")
	b.Token(KindIdentifier, "b")
	b.FinishNode(KindBinExpr)
	b.FinishNode(KindSourceFile)

	root := NewRoot(b.Finish())
	bin := root.FirstChildNode(KindBinExpr)
	require.NotNil(t, bin)
	assert.Equal(t, "a+b", bin.Text())
	assert.Equal(t, "a+b", root.Text())
}

func TestBuilderFinishPanicsOnUnclosedFrame(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	b.StartNode()
	b.Token(KindIdentifier, "x")
	assert.Panics(t, func() { b.Finish() })
}
