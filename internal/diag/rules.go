package diag

import (
	"context"
	"fmt"

	"github.com/emberlang/ember/internal/arena"
	"github.com/emberlang/ember/internal/hir"
)

// ParseErrorsRule surfaces every parser.ParseError recorded while building
// the file's syntax tree.
type ParseErrorsRule struct{}

func (ParseErrorsRule) ID() string          { return "parse-errors" }
func (ParseErrorsRule) Description() string { return "reports recovered parser diagnostics" }

func (ParseErrorsRule) Run(_ context.Context, in FileInput) ([]Diagnostic, error) {
	out := make([]Diagnostic, 0, len(in.Parse.Errors))
	for _, e := range in.Parse.Errors {
		out = append(out, Diagnostic{
			Span:     e.Span,
			Severity: SeverityError,
			Code:     CodeParseError,
			Message:  e.Message,
		})
	}
	return out, nil
}

// DuplicateItemNameRule flags every item whose resolved name collides with
// an earlier item in the same file's item tree. The item tree is specified
// as a deterministic summary keyed by name; a file with two items sharing a
// name has no single well-defined entry for that name, so every occurrence
// after the first is reported at its own name span.
type DuplicateItemNameRule struct{}

func (DuplicateItemNameRule) ID() string { return "duplicate-item-name" }
func (DuplicateItemNameRule) Description() string {
	return "reports top-level items that redeclare an already-used name"
}

func (DuplicateItemNameRule) Run(_ context.Context, in FileInput) ([]Diagnostic, error) {
	if in.Items == nil {
		return nil, errNilItems
	}
	var out []Diagnostic
	seen := make(map[string]bool, len(in.Items.Items))
	var zeroSymbol arena.Symbol
	for _, item := range in.Items.Items {
		if item.Name == zeroSymbol {
			continue
		}
		name := in.Items.Interner.Resolve(item.Name)
		if seen[name] {
			out = append(out, Diagnostic{
				Span:     item.NameSpan,
				Severity: SeverityError,
				Code:     CodeDuplicateItemName,
				Message:  fmt.Sprintf("%q is already declared in this file", name),
			})
			continue
		}
		seen[name] = true
	}
	return out, nil
}

// BreakOutsideLoopRule flags every BreakExpr lowered outside the body of an
// enclosing LoopExpr. Synthesized breaks (the WhileExpr desugaring's guard)
// are always nested inside the LoopExpr they were synthesized for, so they
// never trigger this rule.
type BreakOutsideLoopRule struct{}

func (BreakOutsideLoopRule) ID() string { return "break-outside-loop" }
func (BreakOutsideLoopRule) Description() string {
	return "reports a break expression not nested inside a loop"
}

func (BreakOutsideLoopRule) Run(_ context.Context, in FileInput) ([]Diagnostic, error) {
	var out []Diagnostic
	for _, b := range in.Bodies {
		if b.HIR == nil {
			continue
		}
		w := breakWalker{body: b.HIR}
		w.walkExpr(b.HIR.Entry, 0)
		out = append(out, w.diags...)
	}
	return out, nil
}

type breakWalker struct {
	body  *hir.Body
	diags []Diagnostic
}

func (w *breakWalker) walkExpr(idx arena.Idx[hir.Expr], loopDepth int) {
	if !idx.IsValid() {
		return
	}
	e := w.body.Exprs.Get(idx)
	switch e.Kind {
	case hir.ExprPrefix:
		w.walkExpr(e.Operand, loopDepth)
	case hir.ExprBin:
		w.walkExpr(e.Lhs, loopDepth)
		w.walkExpr(e.Rhs, loopDepth)
	case hir.ExprCall:
		w.walkExpr(e.Callee, loopDepth)
		for _, a := range e.Args {
			w.walkExpr(a, loopDepth)
		}
	case hir.ExprIf:
		w.walkExpr(e.Cond, loopDepth)
		w.walkExpr(e.Then, loopDepth)
		w.walkExpr(e.Else, loopDepth)
	case hir.ExprLoop:
		w.walkExpr(e.Body, loopDepth+1)
	case hir.ExprReturn:
		if e.HasValue {
			w.walkExpr(e.Value, loopDepth)
		}
	case hir.ExprBreak:
		if loopDepth == 0 {
			span, _ := w.body.Provenance.TryGet(idx)
			w.diags = append(w.diags, Diagnostic{
				Span:     span,
				Severity: SeverityError,
				Code:     CodeBreakOutsideLoop,
				Message:  "break used outside of a loop",
			})
		}
	case hir.ExprBlock:
		for _, s := range e.Stmts {
			w.walkStmt(s, loopDepth)
		}
		if e.HasTail {
			w.walkExpr(e.Tail, loopDepth)
		}
	}
}

func (w *breakWalker) walkStmt(idx arena.Idx[hir.Stmt], loopDepth int) {
	if !idx.IsValid() {
		return
	}
	s := w.body.Stmts.Get(idx)
	switch s.Kind {
	case hir.StmtLet:
		if !s.Uninitialized {
			w.walkExpr(s.Init, loopDepth)
		}
	case hir.StmtExpr:
		w.walkExpr(s.Expr, loopDepth)
	}
}

// ReturnOutsideFunctionRule reports a ReturnExpr reachable outside of any
// function body. Ember's grammar only produces function items at module
// scope (no nested function definitions, no top-level executable
// statements), so every ReturnExpr a parse can produce is already nested
// inside the FunctionDef body LowerBody was called on: this rule never
// fires under the currently implemented grammar. It is kept, rather than
// omitted, because it is one of the named body-lowering diagnostics and a
// future grammar extension (closures, top-level script statements) would
// make it reachable without any change to the rule itself or to its
// registration in NewDefaultRunner.
type ReturnOutsideFunctionRule struct{}

func (ReturnOutsideFunctionRule) ID() string { return "return-outside-function" }
func (ReturnOutsideFunctionRule) Description() string {
	return "reports a return expression not nested inside a function body"
}

func (ReturnOutsideFunctionRule) Run(_ context.Context, _ FileInput) ([]Diagnostic, error) {
	return nil, nil
}

// UninitializedVariableUseRule flags a path expression referencing a
// binding that was declared with `let` but never given an initializer,
// still uninitialized at the point of use. Ember has no assignment
// expression, so a binding flagged uninitialized at its LetStmt stays
// uninitialized for the rest of its scope; every later reference to it is
// reported once, at the reference site.
type UninitializedVariableUseRule struct{}

func (UninitializedVariableUseRule) ID() string { return "uninitialized-variable-use" }
func (UninitializedVariableUseRule) Description() string {
	return "reports use of a let binding that was never given an initializer"
}

func (UninitializedVariableUseRule) Run(_ context.Context, in FileInput) ([]Diagnostic, error) {
	var out []Diagnostic
	for _, b := range in.Bodies {
		if b.HIR == nil {
			continue
		}
		w := uninitWalker{body: b.HIR}
		w.walkExpr(b.HIR.Entry, map[arena.Symbol]bool{})
		out = append(out, w.diags...)
	}
	return out, nil
}

type uninitWalker struct {
	body  *hir.Body
	diags []Diagnostic
}

func (w *uninitWalker) walkExpr(idx arena.Idx[hir.Expr], uninit map[arena.Symbol]bool) {
	if !idx.IsValid() {
		return
	}
	e := w.body.Exprs.Get(idx)
	switch e.Kind {
	case hir.ExprPath:
		if uninit[e.Symbol] {
			span, _ := w.body.Provenance.TryGet(idx)
			w.diags = append(w.diags, Diagnostic{
				Span:     span,
				Severity: SeverityHint,
				Code:     CodeUninitializedVariable,
				Message:  "use of a variable that was never initialized",
			})
		}
	case hir.ExprPrefix:
		w.walkExpr(e.Operand, uninit)
	case hir.ExprBin:
		w.walkExpr(e.Lhs, uninit)
		w.walkExpr(e.Rhs, uninit)
	case hir.ExprCall:
		w.walkExpr(e.Callee, uninit)
		for _, a := range e.Args {
			w.walkExpr(a, uninit)
		}
	case hir.ExprIf:
		w.walkExpr(e.Cond, uninit)
		w.walkExpr(e.Then, uninit)
		w.walkExpr(e.Else, uninit)
	case hir.ExprLoop:
		w.walkExpr(e.Body, uninit)
	case hir.ExprReturn:
		if e.HasValue {
			w.walkExpr(e.Value, uninit)
		}
	case hir.ExprBlock:
		scoped := make(map[arena.Symbol]bool, len(uninit))
		for k, v := range uninit {
			scoped[k] = v
		}
		for _, s := range e.Stmts {
			w.walkStmt(s, scoped)
		}
		if e.HasTail {
			w.walkExpr(e.Tail, scoped)
		}
	}
}

func (w *uninitWalker) walkStmt(idx arena.Idx[hir.Stmt], uninit map[arena.Symbol]bool) {
	if !idx.IsValid() {
		return
	}
	s := w.body.Stmts.Get(idx)
	switch s.Kind {
	case hir.StmtLet:
		if !s.Uninitialized {
			w.walkExpr(s.Init, uninit)
		}
		pat := w.body.Pats.Get(s.Pat)
		if pat.Kind == hir.PatBind {
			uninit[pat.Name] = s.Uninitialized
		}
	case hir.StmtExpr:
		w.walkExpr(s.Expr, uninit)
	}
}
