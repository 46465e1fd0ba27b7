package diag

import (
	"context"
	"testing"

	"github.com/emberlang/ember/internal/hir"
	"github.com/emberlang/ember/internal/itemtree"
	"github.com/emberlang/ember/internal/parser"
	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/syntax/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInput(t *testing.T, src string) FileInput {
	t.Helper()
	res := parser.Parse([]byte(src))
	root := syntax.NewRoot(res.Green)
	items := itemtree.Collect(root)

	sf, ok := (ast.SourceFile{}).Cast(root)
	require.True(t, ok)

	var bodies []Body
	for i, mi := range sf.Items() {
		fn, ok := mi.Kind().(ast.FunctionDef)
		if !ok {
			continue
		}
		body, ok := hir.LowerBody(fn, items.Interner)
		if !ok {
			continue
		}
		bodies = append(bodies, Body{ItemIndex: i, HIR: body})
	}

	return FileInput{Parse: res, Items: items, Bodies: bodies}
}

func TestRunnerConcatenatesParseItemAndBodyDiagnosticsSorted(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  break;
}

fn f() {
  0
}
`)
	runner := NewDefaultRunner()
	diags, err := runner.Run(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, diags)

	var haveDup, haveBreak bool
	for _, d := range diags {
		if d.Code == CodeDuplicateItemName {
			haveDup = true
		}
		if d.Code == CodeBreakOutsideLoop {
			haveBreak = true
		}
		assert.Equal(t, DiagnosticSource, d.Source)
	}
	assert.True(t, haveDup)
	assert.True(t, haveBreak)

	for i := 1; i < len(diags); i++ {
		assert.LessOrEqual(t, diags[i-1].Span.Start, diags[i].Span.Start)
	}
}

func TestParseErrorsRuleSurfacesRecoveredErrors(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f( {
}
`)
	diags, err := ParseErrorsRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, CodeParseError, d.Code)
		assert.Equal(t, SeverityError, d.Severity)
	}
}

func TestDuplicateItemNameRuleFlagsSecondOccurrenceOnly(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn a() { 0 }
fn a() { 1 }
fn b() { 2 }
`)
	diags, err := DuplicateItemNameRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeDuplicateItemName, diags[0].Code)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, in.Items.Items[1].NameSpan, diags[0].Span)
}

func TestDuplicateItemNameRuleAllowsUniqueNames(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn a() { 0 }
struct B;
`)
	diags, err := DuplicateItemNameRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestBreakOutsideLoopRuleFlagsTopLevelBreak(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  break;
}
`)
	diags, err := BreakOutsideLoopRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeBreakOutsideLoop, diags[0].Code)
}

func TestBreakOutsideLoopRuleAllowsBreakInsideLoop(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  loop {
    break;
  }
}
`)
	diags, err := BreakOutsideLoopRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestBreakOutsideLoopRuleAllowsSyntheticWhileBreak(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  while true {
    0;
  }
}
`)
	diags, err := BreakOutsideLoopRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestReturnOutsideFunctionRuleNeverFiresUnderCurrentGrammar(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  return 1;
}
`)
	diags, err := ReturnOutsideFunctionRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestUninitializedVariableUseRuleFlagsLaterReference(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  let x: int;
  x
}
`)
	diags, err := UninitializedVariableUseRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeUninitializedVariable, diags[0].Code)
	assert.Equal(t, SeverityHint, diags[0].Severity)
}

func TestUninitializedVariableUseRuleAllowsInitializedBinding(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  let x = 1;
  x
}
`)
	diags, err := UninitializedVariableUseRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestUninitializedVariableUseRuleScopesShadowingToNestedBlock(t *testing.T) {
	t.Parallel()

	in := buildInput(t, `fn f() {
  let x: int;
  if true {
    let x = 1;
    x
  }
  0
}
`)
	diags, err := UninitializedVariableUseRule{}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, diags)
}
