package itemtree

import (
	"testing"

	"github.com/emberlang/ember/internal/parser"
	"github.com/emberlang/ember/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *syntax.SyntaxNode {
	t.Helper()
	res := parser.Parse([]byte(src))
	require.Empty(t, res.Errors)
	return syntax.NewRoot(res.Green)
}

func TestCollectRecordsFunctionSignature(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `/// adds two numbers
pub fn add(a: int, b: int) -> int {
  a + b
}
`)
	tree := Collect(root)
	require.Len(t, tree.Items, 1)

	item := tree.Items[0]
	assert.Equal(t, ItemFunction, item.Kind)
	assert.True(t, item.Public)
	assert.Equal(t, "add", tree.Interner.Resolve(item.Name))
	assert.Equal(t, "/// adds two numbers", item.DocText)

	require.Len(t, item.Func.Params, 2)
	assert.Equal(t, "a", item.Func.Params[0].Name)
	assert.Equal(t, "int", item.Func.Params[0].TypeText)
	assert.Equal(t, "b", item.Func.Params[1].Name)
	assert.True(t, item.Func.HasRet)
	assert.Equal(t, "int", item.Func.RetType)
}

func TestCollectPrivateFunctionHasNoVisibility(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `fn helper() {
  0
}
`)
	tree := Collect(root)
	require.Len(t, tree.Items, 1)
	assert.False(t, tree.Items[0].Public)
	assert.Equal(t, "", tree.Items[0].DocText)
}

func TestCollectRecordStructShape(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `struct Point { x: int, y: int }`)
	tree := Collect(root)
	require.Len(t, tree.Items, 1)

	item := tree.Items[0]
	assert.Equal(t, ItemStruct, item.Kind)
	assert.Equal(t, "Point", tree.Interner.Resolve(item.Name))
	assert.Equal(t, FieldShapeRecord, item.Struct.Shape)
	require.Len(t, item.Struct.Fields, 2)
	assert.Equal(t, "x", item.Struct.Fields[0].Name)
	assert.Equal(t, "int", item.Struct.Fields[0].TypeText)
	assert.Equal(t, "y", item.Struct.Fields[1].Name)
}

func TestCollectSymbolsAreStableAcrossIdenticalReparse(t *testing.T) {
	t.Parallel()

	src := `fn f(x: int) -> int {
  x
}
`
	root1 := mustParse(t, src)
	root2 := mustParse(t, src)

	t1 := Collect(root1)
	t2 := Collect(root2)

	require.Len(t, t1.Items, 1)
	require.Len(t, t2.Items, 1)
	assert.Equal(t, t1.Interner.Resolve(t1.Items[0].Name), t2.Interner.Resolve(t2.Items[0].Name))
	assert.Equal(t, t1.Items[0].Func, t2.Items[0].Func)
}

func TestCollectMultipleItemsPreservesSourceOrder(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `struct A;
fn b() {
  0
}
struct C(int, int);
`)
	tree := Collect(root)
	require.Len(t, tree.Items, 3)
	assert.Equal(t, ItemStruct, tree.Items[0].Kind)
	assert.Equal(t, "A", tree.Interner.Resolve(tree.Items[0].Name))
	assert.Equal(t, FieldShapeUnit, tree.Items[0].Struct.Shape)

	assert.Equal(t, ItemFunction, tree.Items[1].Kind)
	assert.Equal(t, "b", tree.Interner.Resolve(tree.Items[1].Name))

	assert.Equal(t, ItemStruct, tree.Items[2].Kind)
	assert.Equal(t, "C", tree.Interner.Resolve(tree.Items[2].Name))
	assert.Equal(t, FieldShapeTuple, tree.Items[2].Struct.Shape)
	require.Len(t, tree.Items[2].Struct.Fields, 2)
	assert.Equal(t, "int", tree.Items[2].Struct.Fields[0].TypeText)
}
