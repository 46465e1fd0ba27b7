package parser

import (
	"github.com/emberlang/ember/internal/lexer"
	"github.com/emberlang/ember/internal/syntax"
)

// parseItem parses one top-level ModuleItem, recovering to the next item
// boundary on unrecognized input. A leading `pub` is consumed as part of
// whichever item follows it; `pub` with no following item is itself a
// recovery boundary, reported and swallowed along with the next token.
func (p *parser) parseItem() {
	if p.at(lexer.TokenKwPub) && !p.peekIsItemKeyword() {
		p.errorHere("expected fn or struct after pub")
		p.recoverToItemBoundary()
		return
	}

	switch {
	case p.at(lexer.TokenKwFn) || (p.at(lexer.TokenKwPub) && p.peekKindIs(lexer.TokenKwFn)):
		p.parseFunctionDef()
	case p.at(lexer.TokenKwStruct) || (p.at(lexer.TokenKwPub) && p.peekKindIs(lexer.TokenKwStruct)):
		p.parseStructDef()
	default:
		p.errorHere("expected an item (fn or struct)")
		p.recoverToItemBoundary()
	}
}

// peekIsItemKeyword reports whether the token after a `pub` is `fn` or
// `struct` — used only to decide whether `pub` is worth committing to.
func (p *parser) peekIsItemKeyword() bool {
	return p.peekKindIs(lexer.TokenKwFn) || p.peekKindIs(lexer.TokenKwStruct)
}

func (p *parser) peekKindIs(kind lexer.TokenKind) bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Kind == kind
}

func (p *parser) tryParseVisibility() bool {
	if !p.at(lexer.TokenKwPub) {
		return false
	}
	p.b.StartNode()
	p.bump()
	p.b.FinishNode(syntax.KindVisibility)
	return true
}

func (p *parser) parseFunctionDef() {
	p.b.StartNode()
	p.tryParseVisibility()
	p.expect(lexer.TokenKwFn, "'fn'")
	p.parseNameOrEmpty()

	p.b.StartNode()
	p.expect(lexer.TokenLParen, "'('")
	for !p.atEOF() && !p.at(lexer.TokenRParen) {
		p.parseParam()
		if p.at(lexer.TokenComma) {
			p.bump()
		} else {
			break
		}
	}
	p.expect(lexer.TokenRParen, "')'")
	p.b.FinishNode(syntax.KindParamList)

	if p.at(lexer.TokenArrow) {
		p.b.StartNode()
		p.bump()
		p.parseTypeRef()
		p.b.FinishNode(syntax.KindRetType)
	}

	if p.at(lexer.TokenLBrace) {
		p.parseBlockExpr()
	} else {
		p.errorHere("expected function body")
	}

	p.b.FinishNode(syntax.KindFunctionDef)
}

func (p *parser) parseNameOrEmpty() {
	p.b.StartNode()
	if p.at(lexer.TokenIdentifier) {
		p.bump()
		p.b.FinishNode(syntax.KindName)
		return
	}
	p.errorHere("expected a name")
	p.b.FinishNodeFlagged(syntax.KindName, syntax.NodeFlagMissing)
}

func (p *parser) parseParam() {
	p.b.StartNode()
	p.parsePat()
	if p.at(lexer.TokenColon) {
		p.bump()
		p.parseTypeRef()
	} else {
		p.errorHere("expected ': Type' for parameter")
	}
	p.b.FinishNode(syntax.KindParam)
}

func (p *parser) parsePat() {
	switch p.curKind() {
	case lexer.TokenUnderscore:
		p.b.StartNode()
		p.bump()
		p.b.FinishNode(syntax.KindPlaceholderPat)
	case lexer.TokenIdentifier:
		p.b.StartNode()
		p.bump()
		p.b.FinishNode(syntax.KindBindPat)
	default:
		p.errorHere("expected a pattern")
		p.b.StartNode()
		p.b.FinishNodeFlagged(syntax.KindBindPat, syntax.NodeFlagMissing)
	}
}

func (p *parser) parseTypeRef() {
	switch p.curKind() {
	case lexer.TokenBang:
		p.b.StartNode()
		p.bump()
		p.b.FinishNode(syntax.KindNeverType)
	case lexer.TokenIdentifier:
		p.b.StartNode() // PATH_TYPE
		p.parsePath()
		p.b.FinishNode(syntax.KindPathType)
	default:
		p.errorHere("expected a type")
	}
}

func (p *parser) parsePath() {
	p.b.StartNode() // PATH
	p.b.StartNode() // PATH_SEGMENT
	p.b.StartNode() // NAME_REF
	p.expect(lexer.TokenIdentifier, "an identifier")
	p.b.FinishNode(syntax.KindNameRef)
	p.b.FinishNode(syntax.KindPathSegment)
	p.b.FinishNode(syntax.KindPath)
}

func (p *parser) parseStructDef() {
	p.b.StartNode()
	p.tryParseVisibility()
	p.expect(lexer.TokenKwStruct, "'struct'")
	p.parseNameOrEmpty()

	switch p.curKind() {
	case lexer.TokenLBrace:
		p.b.StartNode()
		p.bump()
		for !p.atEOF() && !p.at(lexer.TokenRBrace) {
			p.parseRecordFieldDef()
			if p.at(lexer.TokenComma) {
				p.bump()
			} else {
				break
			}
		}
		p.expect(lexer.TokenRBrace, "'}'")
		p.b.FinishNode(syntax.KindRecordFieldDefList)
	case lexer.TokenLParen:
		p.b.StartNode()
		p.bump()
		for !p.atEOF() && !p.at(lexer.TokenRParen) {
			p.parseTupleFieldDef()
			if p.at(lexer.TokenComma) {
				p.bump()
			} else {
				break
			}
		}
		p.expect(lexer.TokenRParen, "')'")
		p.b.FinishNode(syntax.KindTupleFieldDefList)
		p.expect(lexer.TokenSemi, "';'")
	case lexer.TokenSemi:
		p.bump() // unit struct: no field list node at all
	default:
		p.errorHere("expected '{', '(', or ';' after struct name")
	}

	p.b.FinishNode(syntax.KindStructDef)
}

func (p *parser) parseRecordFieldDef() {
	p.b.StartNode()
	p.parseNameOrEmpty()
	if p.at(lexer.TokenColon) {
		p.bump()
		p.parseTypeRef()
	} else {
		p.errorHere("expected ': Type' for field")
	}
	p.b.FinishNode(syntax.KindRecordFieldDef)
}

func (p *parser) parseTupleFieldDef() {
	p.b.StartNode()
	p.parseTypeRef()
	p.b.FinishNode(syntax.KindTupleFieldDef)
}
