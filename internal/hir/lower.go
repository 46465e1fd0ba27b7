package hir

import (
	"github.com/emberlang/ember/internal/arena"
	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/syntax/ast"
	"github.com/emberlang/ember/internal/text"
)

// lowerer holds the per-body state a lowering pass accumulates: the three
// arenas and the interner functions are lowered against, plus the
// provenance map under construction.
type lowerer struct {
	interner   *arena.Interner
	exprs      arena.Arena[Expr]
	pats       arena.Arena[Pat]
	stmts      arena.Arena[Stmt]
	provenance arena.ArenaMap[Expr, text.Span]
}

// LowerBody lowers fn's body into a fresh Body using interner to resolve
// name symbols. It returns (nil, false) if fn has no body (a parse error
// already recorded elsewhere left it absent).
func LowerBody(fn ast.FunctionDef, interner *arena.Interner) (*Body, bool) {
	body, ok := fn.Body()
	if !ok {
		return nil, false
	}
	l := &lowerer{interner: interner}
	entry := l.lowerBlock(body)
	return &Body{
		Exprs:      l.exprs,
		Pats:       l.pats,
		Stmts:      l.stmts,
		Provenance: l.provenance,
		Entry:      entry,
	}, true
}

func (l *lowerer) record(idx arena.Idx[Expr], n ast.Node) {
	if syn := n.Syntax(); syn != nil {
		l.provenance.Insert(idx, syn.Span())
	}
}

func (l *lowerer) allocExpr(e Expr, n ast.Node) arena.Idx[Expr] {
	idx := l.exprs.Alloc(e)
	if n != nil {
		l.record(idx, n)
	}
	return idx
}

func (l *lowerer) allocSynthetic(e Expr) arena.Idx[Expr] {
	e.Synthetic = true
	return l.exprs.Alloc(e)
}

// allocSyntheticAt allocates a synthesized expression recording spanOf's
// span as its provenance, per the desugaring policy that synthetic nodes
// share the span of the construct they were synthesized from (WhileExpr
// for the desugared loop guard, IfExpr for a synthesized unit else).
func (l *lowerer) allocSyntheticAt(e Expr, spanOf ast.Node) arena.Idx[Expr] {
	e.Synthetic = true
	idx := l.exprs.Alloc(e)
	l.record(idx, spanOf)
	return idx
}

func (l *lowerer) lowerExpr(e ast.Expr) arena.Idx[Expr] {
	switch v := e.Kind().(type) {
	case ast.Literal:
		litText := ""
		if tok := v.Token(); tok != nil {
			litText = tok.Text()
		}
		return l.allocExpr(Expr{Kind: ExprLiteral, LiteralText: litText}, v)

	case ast.PathExpr:
		sym := l.symbolOf(v)
		return l.allocExpr(Expr{Kind: ExprPath, Symbol: sym}, v)

	case ast.PrefixExpr:
		op, operand := l.lowerPrefix(v)
		return l.allocExpr(Expr{Kind: ExprPrefix, UnaryOp: op, Operand: operand}, v)

	case ast.BinExpr:
		lhsAST, rhsAST, ok := v.Operands()
		var lhs, rhs arena.Idx[Expr]
		if ok {
			lhs = l.lowerExpr(lhsAST)
			rhs = l.lowerExpr(rhsAST)
		}
		op := binOpOf(v)
		return l.allocExpr(Expr{Kind: ExprBin, BinOp: op, Lhs: lhs, Rhs: rhs}, v)

	case ast.ParenExpr:
		inner, ok := v.Expr()
		if !ok {
			return l.allocExpr(Expr{Kind: ExprMissing}, v)
		}
		return l.lowerExpr(inner)

	case ast.CallExpr:
		var callee arena.Idx[Expr]
		if c, ok := v.Callee(); ok {
			callee = l.lowerExpr(c)
		}
		var args []arena.Idx[Expr]
		if argList, ok := v.ArgList(); ok {
			for _, a := range argList.Args() {
				args = append(args, l.lowerExpr(a))
			}
		}
		return l.allocExpr(Expr{Kind: ExprCall, Callee: callee, Args: args}, v)

	case ast.IfExpr:
		return l.lowerIf(v)

	case ast.WhileExpr:
		return l.lowerWhile(v)

	case ast.LoopExpr:
		body, _ := ast.LoopBody(v)
		bodyIdx := l.lowerBlock(body)
		return l.allocExpr(Expr{Kind: ExprLoop, Body: bodyIdx}, v)

	case ast.ReturnExpr:
		hasValue := false
		var value arena.Idx[Expr]
		if inner, ok := v.Expr(); ok {
			hasValue = true
			value = l.lowerExpr(inner)
		}
		return l.allocExpr(Expr{Kind: ExprReturn, HasValue: hasValue, Value: value}, v)

	case ast.BreakExpr:
		return l.allocExpr(Expr{Kind: ExprBreak}, v)

	case ast.BlockExpr:
		return l.lowerBlock(v)

	default:
		return l.allocExpr(Expr{Kind: ExprMissing}, e)
	}
}

func (l *lowerer) lowerPrefix(v ast.PrefixExpr) (UnaryOp, arena.Idx[Expr]) {
	var op UnaryOp
	if kind, ok := v.Op(); ok {
		switch kind {
		case syntax.KindMinus:
			op = UnaryNeg
		case syntax.KindBang:
			op = UnaryNot
		case syntax.KindStar:
			op = UnaryDeref
		}
	}
	var operand arena.Idx[Expr]
	if inner, ok := v.Expr(); ok {
		operand = l.lowerExpr(inner)
	}
	return op, operand
}

func binOpOf(v ast.BinExpr) BinOp {
	kind, ok := v.Op()
	if !ok {
		return BinAdd
	}
	switch kind {
	case syntax.KindPlus:
		return BinAdd
	case syntax.KindMinus:
		return BinSub
	case syntax.KindStar:
		return BinMul
	case syntax.KindSlash:
		return BinDiv
	case syntax.KindEqualEqual:
		return BinEq
	case syntax.KindBangEqual:
		return BinNe
	case syntax.KindLess:
		return BinLt
	case syntax.KindLessEqual:
		return BinLe
	case syntax.KindGreater:
		return BinGt
	case syntax.KindGreaterEqual:
		return BinGe
	default:
		return BinAdd
	}
}

// lowerIf lowers an IfExpr, synthesizing a unit else branch (an empty
// ExprBlock sharing the IfExpr's span, marked Synthetic) when the source
// omitted one.
func (l *lowerer) lowerIf(v ast.IfExpr) arena.Idx[Expr] {
	var cond arena.Idx[Expr]
	if c, ok := v.Condition(); ok {
		if inner, ok := c.Expr(); ok {
			cond = l.lowerExpr(inner)
		}
	}

	var then arena.Idx[Expr]
	if thenBlock, ok := v.ThenBranch(); ok {
		then = l.lowerBlock(thenBlock)
	} else {
		then = l.allocSyntheticAt(Expr{Kind: ExprBlock}, v)
	}

	var els arena.Idx[Expr]
	if elseBlock, ok := v.ElseBranch(); ok {
		els = l.lowerBlock(elseBlock)
	} else {
		els = l.allocSyntheticAt(Expr{Kind: ExprBlock}, v)
	}

	return l.allocExpr(Expr{Kind: ExprIf, Cond: cond, Then: then, Else: els}, v)
}

// lowerWhile desugars WhileExpr(cond, body) into
// Loop { if !cond { break } body }, per the policy that while is not a
// primitive HIR construct. Every node synthesized for the desugaring
// shares the WhileExpr's own span and is marked Synthetic; only the
// user-written cond and body expressions keep real provenance.
func (l *lowerer) lowerWhile(v ast.WhileExpr) arena.Idx[Expr] {
	var cond arena.Idx[Expr]
	if c, ok := v.Condition(); ok {
		if inner, ok := c.Expr(); ok {
			cond = l.lowerExpr(inner)
		}
	}
	negCond := l.allocSyntheticAt(Expr{Kind: ExprPrefix, UnaryOp: UnaryNot, Operand: cond}, v)

	breakExpr := l.allocSyntheticAt(Expr{Kind: ExprBreak}, v)
	breakStmt := l.stmts.Alloc(Stmt{Kind: StmtExpr, Synthetic: true, Expr: breakExpr})
	breakBlock := l.allocSyntheticAt(Expr{Kind: ExprBlock, Stmts: []arena.Idx[Stmt]{breakStmt}}, v)
	emptyElse := l.allocSyntheticAt(Expr{Kind: ExprBlock}, v)

	guard := l.allocSyntheticAt(Expr{Kind: ExprIf, Cond: negCond, Then: breakBlock, Else: emptyElse}, v)
	guardStmt := l.stmts.Alloc(Stmt{Kind: StmtExpr, Synthetic: true, Expr: guard})

	var bodyBlock arena.Idx[Expr]
	if b, ok := ast.LoopBody(v); ok {
		bodyBlock = l.lowerBlock(b)
	} else {
		bodyBlock = l.allocSyntheticAt(Expr{Kind: ExprBlock}, v)
	}

	// The loop body block itself keeps its real provenance (it's the
	// user's `{ ... }`); only the guard statement prepended to it is
	// synthetic.
	loopBody := l.exprs.Get(bodyBlock)
	loopBody.Stmts = append([]arena.Idx[Stmt]{guardStmt}, loopBody.Stmts...)
	l.exprs.Set(bodyBlock, loopBody)

	return l.allocExpr(Expr{Kind: ExprLoop, Body: bodyBlock}, v)
}

func (l *lowerer) lowerBlock(b ast.BlockExpr) arena.Idx[Expr] {
	var stmtIdxs []arena.Idx[Stmt]
	for _, s := range b.Stmts() {
		stmtIdxs = append(stmtIdxs, l.lowerStmt(s))
	}
	hasTail := false
	var tail arena.Idx[Expr]
	if tailExpr, ok := b.TailExpr(); ok {
		hasTail = true
		tail = l.lowerExpr(tailExpr)
	}
	return l.allocExpr(Expr{Kind: ExprBlock, Stmts: stmtIdxs, HasTail: hasTail, Tail: tail}, b)
}

func (l *lowerer) lowerStmt(s ast.Stmt) arena.Idx[Stmt] {
	switch v := s.Kind().(type) {
	case ast.LetStmt:
		patIdx := l.lowerPat(v.Pat())
		uninitialized := true
		var init arena.Idx[Expr]
		if initExpr, ok := v.Initializer(); ok {
			uninitialized = false
			init = l.lowerExpr(initExpr)
		}
		return l.stmts.Alloc(Stmt{Kind: StmtLet, Pat: patIdx, Uninitialized: uninitialized, Init: init})

	case ast.ExprStmt:
		var expr arena.Idx[Expr]
		if inner, ok := v.Expr(); ok {
			expr = l.lowerExpr(inner)
		}
		return l.stmts.Alloc(Stmt{Kind: StmtExpr, Expr: expr})

	default:
		return l.stmts.Alloc(Stmt{Kind: StmtExpr})
	}
}

func (l *lowerer) lowerPat(p ast.Pat, ok bool) arena.Idx[Pat] {
	if !ok {
		return l.pats.Alloc(Pat{Kind: PatPlaceholder})
	}
	switch v := p.Kind().(type) {
	case ast.BindPat:
		name := ""
		if tok := v.Syntax().FirstChildToken(syntax.KindIdentifier); tok != nil {
			name = tok.Text()
		}
		sym := l.interner.Intern(name)
		return l.pats.Alloc(Pat{Kind: PatBind, Name: sym})
	case ast.PlaceholderPat:
		return l.pats.Alloc(Pat{Kind: PatPlaceholder})
	default:
		return l.pats.Alloc(Pat{Kind: PatPlaceholder})
	}
}

func (l *lowerer) symbolOf(v ast.PathExpr) arena.Symbol {
	path, ok := v.Path()
	if !ok {
		return l.interner.Intern("")
	}
	seg, ok := path.Segment()
	if !ok {
		return l.interner.Intern("")
	}
	ref, ok := seg.NameRef()
	if !ok {
		return l.interner.Intern("")
	}
	return l.interner.Intern(ref.Text())
}
