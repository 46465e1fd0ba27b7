package parser

import (
	"github.com/emberlang/ember/internal/lexer"
	"github.com/emberlang/ember/internal/syntax"
)

// binOpPrec returns kind's binary operator precedence (higher binds
// tighter) and whether kind is a binary operator at all. Every level is
// left-associative: parseExprBp recurses at prec+1 for the right operand.
func binOpPrec(kind lexer.TokenKind) (int, bool) {
	switch kind {
	case lexer.TokenEqualEqual, lexer.TokenBangEqual:
		return 1, true
	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		return 2, true
	case lexer.TokenPlus, lexer.TokenMinus:
		return 3, true
	case lexer.TokenStar, lexer.TokenSlash:
		return 4, true
	default:
		return 0, false
	}
}

func (p *parser) parseExpr() {
	p.parseExprBp(1)
}

// parseExprBp is a checkpoint-based precedence climb: the left operand is
// parsed first onto the enclosing frame, then retroactively wrapped in a
// BIN_EXPR via StartNodeAt once a binary operator at or above minPrec is
// seen, so the parser never needs to know it's building a BinExpr before
// the operator is actually there.
func (p *parser) parseExprBp(minPrec int) {
	cp := p.b.Checkpoint()
	p.parseUnaryExpr()
	for {
		prec, ok := binOpPrec(p.curKind())
		if !ok || prec < minPrec {
			break
		}
		p.b.StartNodeAt(cp)
		p.bump()
		p.parseExprBp(prec + 1)
		p.b.FinishNode(syntax.KindBinExpr)
	}
}

func (p *parser) parseUnaryExpr() {
	switch p.curKind() {
	case lexer.TokenMinus, lexer.TokenBang, lexer.TokenStar:
		p.b.StartNode()
		p.bump()
		p.parseUnaryExpr()
		p.b.FinishNode(syntax.KindPrefixExpr)
	default:
		p.parsePostfixExpr()
	}
}

// parsePostfixExpr handles call-expression suffixes: `callee(args)`,
// chainable since the callee of a CallExpr may itself be a CallExpr.
func (p *parser) parsePostfixExpr() {
	cp := p.b.Checkpoint()
	p.parsePrimaryExpr()
	for p.at(lexer.TokenLParen) {
		p.b.StartNodeAt(cp)
		p.parseArgList()
		p.b.FinishNode(syntax.KindCallExpr)
	}
}

func (p *parser) parseArgList() {
	p.b.StartNode()
	p.expect(lexer.TokenLParen, "'('")
	for !p.atEOF() && !p.at(lexer.TokenRParen) {
		p.parseExpr()
		if p.at(lexer.TokenComma) {
			p.bump()
		} else {
			break
		}
	}
	p.expect(lexer.TokenRParen, "')'")
	p.b.FinishNode(syntax.KindArgList)
}

func (p *parser) parsePrimaryExpr() {
	switch p.curKind() {
	case lexer.TokenIntLiteral, lexer.TokenFloatLiteral, lexer.TokenStringLiteral,
		lexer.TokenKwTrue, lexer.TokenKwFalse:
		p.b.StartNode()
		p.bump()
		p.b.FinishNode(syntax.KindLiteral)
	case lexer.TokenIdentifier:
		p.b.StartNode()
		p.parsePath()
		p.b.FinishNode(syntax.KindPathExpr)
	case lexer.TokenLParen:
		p.b.StartNode()
		p.bump()
		p.parseExpr()
		p.expect(lexer.TokenRParen, "')'")
		p.b.FinishNode(syntax.KindParenExpr)
	case lexer.TokenKwIf:
		p.parseIfExpr()
	case lexer.TokenKwWhile:
		p.parseWhileExpr()
	case lexer.TokenKwLoop:
		p.parseLoopExpr()
	case lexer.TokenKwReturn:
		p.parseReturnExpr()
	case lexer.TokenKwBreak:
		p.parseBreakExpr()
	case lexer.TokenLBrace:
		p.parseBlockExpr()
	default:
		p.errorHere("expected an expression")
		p.b.StartNode()
		switch p.curKind() {
		case lexer.TokenRBrace, lexer.TokenSemi, lexer.TokenComma, lexer.TokenRParen, lexer.TokenEOF:
			// consume nothing: let the enclosing list/block boundary handle it
		default:
			p.bump()
		}
		p.b.FinishNodeFlagged(syntax.KindLiteral, syntax.NodeFlagMissing)
	}
}

func (p *parser) parseIfExpr() {
	p.b.StartNode()
	p.bump() // 'if'
	p.parseCondition()
	if p.at(lexer.TokenLBrace) {
		p.parseBlockExpr()
	} else {
		p.errorHere("expected '{' after if condition")
	}
	if p.at(lexer.TokenKwElse) {
		p.bump()
		if p.at(lexer.TokenLBrace) {
			p.parseBlockExpr()
		} else {
			p.errorHere("expected '{' after else")
		}
	}
	p.b.FinishNode(syntax.KindIfExpr)
}

func (p *parser) parseWhileExpr() {
	p.b.StartNode()
	p.bump() // 'while'
	p.parseCondition()
	if p.at(lexer.TokenLBrace) {
		p.parseBlockExpr()
	} else {
		p.errorHere("expected '{' after while condition")
	}
	p.b.FinishNode(syntax.KindWhileExpr)
}

func (p *parser) parseCondition() {
	p.b.StartNode()
	p.parseExpr()
	p.b.FinishNode(syntax.KindCondition)
}

func (p *parser) parseLoopExpr() {
	p.b.StartNode()
	p.bump() // 'loop'
	if p.at(lexer.TokenLBrace) {
		p.parseBlockExpr()
	} else {
		p.errorHere("expected '{' after loop")
	}
	p.b.FinishNode(syntax.KindLoopExpr)
}

func (p *parser) parseReturnExpr() {
	p.b.StartNode()
	p.bump() // 'return'
	if p.canStartExpr() {
		p.parseExpr()
	}
	p.b.FinishNode(syntax.KindReturnExpr)
}

func (p *parser) parseBreakExpr() {
	p.b.StartNode()
	p.bump() // 'break'
	p.b.FinishNode(syntax.KindBreakExpr)
}

// canStartExpr reports whether the current token can begin an expression,
// used to distinguish `return;` (no value) from `return expr;`.
func (p *parser) canStartExpr() bool {
	switch p.curKind() {
	case lexer.TokenSemi, lexer.TokenRBrace, lexer.TokenEOF, lexer.TokenComma, lexer.TokenRParen:
		return false
	default:
		return true
	}
}
