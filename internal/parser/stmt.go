package parser

import (
	"github.com/emberlang/ember/internal/lexer"
	"github.com/emberlang/ember/internal/syntax"
)

func (p *parser) parseBlockExpr() {
	p.b.StartNode()
	p.expect(lexer.TokenLBrace, "'{'")
	for !p.atEOF() && !p.at(lexer.TokenRBrace) {
		p.parseStmtOrTailExpr()
	}
	p.expect(lexer.TokenRBrace, "'}'")
	p.b.FinishNode(syntax.KindBlockExpr)
}

// parseStmtOrTailExpr parses one block-body element: a LetStmt, an
// expression terminated by `;` (wrapped in ExprStmt), a block-like
// expression used as a statement with the `;` omitted (also wrapped, per
// the usual block-expr-as-statement convention), or — if none of the
// above apply — the block's unwrapped trailing value expression.
func (p *parser) parseStmtOrTailExpr() {
	if p.at(lexer.TokenKwLet) {
		p.parseLetStmt()
		return
	}

	blockLike := p.atBlockLikeExprStart()
	cp := p.b.Checkpoint()
	p.parseExpr()

	switch {
	case p.at(lexer.TokenSemi):
		p.bump()
		p.b.StartNodeAt(cp)
		p.b.FinishNode(syntax.KindExprStmt)
	case blockLike:
		p.b.StartNodeAt(cp)
		p.b.FinishNode(syntax.KindExprStmt)
	case p.at(lexer.TokenRBrace) || p.atEOF():
		// tail expression: left bare, not wrapped in ExprStmt
	default:
		p.errorHere("expected ';' after expression statement")
		p.recoverToStmtBoundary()
	}
}

// atBlockLikeExprStart reports whether the upcoming expression starts with
// a construct that already ends in `}` (block, if, while, loop) — these
// don't require a trailing `;` to be used as a statement.
func (p *parser) atBlockLikeExprStart() bool {
	switch p.curKind() {
	case lexer.TokenLBrace, lexer.TokenKwIf, lexer.TokenKwWhile, lexer.TokenKwLoop:
		return true
	default:
		return false
	}
}

func (p *parser) parseLetStmt() {
	p.b.StartNode()
	p.bump() // 'let'
	p.parsePat()
	if p.at(lexer.TokenColon) {
		p.bump()
		p.parseTypeRef()
	}
	if p.at(lexer.TokenEqual) {
		p.bump()
		p.parseExpr()
	}
	p.expect(lexer.TokenSemi, "';'")
	p.b.FinishNode(syntax.KindLetStmt)
}
