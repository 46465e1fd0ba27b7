// Package parser implements a recursive-descent parser with panic-mode
// error recovery, producing a lossless internal/syntax Green tree plus a
// list of parse diagnostics.
package parser

import (
	"fmt"

	"github.com/emberlang/ember/internal/lexer"
	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/text"
)

// ParseError is a single recovered parser diagnostic.
type ParseError struct {
	Message string
	Span    text.Span
}

// Result is the output of Parse: a lossless Green tree plus every
// recovered parse error, in source order.
type Result struct {
	Green  *syntax.GreenNode
	Errors []ParseError
}

// Parse tokenizes and parses src into a SOURCE_FILE green tree. Every
// byte is consumed exactly once: unrecognized input is wrapped in an
// ERROR node and parsing resumes at the next synchronization token. In
// expression position a stray token is instead wrapped in a LITERAL node
// flagged NodeFlagMissing.
func Parse(src []byte) Result {
	lexed := lexer.Lex(src)
	p := &parser{src: src, tokens: lexed.Tokens, b: syntax.NewBuilder()}

	for _, d := range lexed.Diagnostics {
		p.errors = append(p.errors, ParseError{Message: d.Message, Span: d.Span})
	}

	p.b.StartNode()
	for !p.atEOF() {
		p.parseItem()
	}
	p.flushEOFTrivia()
	p.b.FinishNode(syntax.KindSourceFile)

	return Result{Green: p.b.Finish(), Errors: p.errors}
}

type parser struct {
	src    []byte
	tokens []lexer.Token
	pos    int
	b      *syntax.Builder
	errors []ParseError
}

var tokenKindToSyntaxKind = map[lexer.TokenKind]syntax.Kind{
	lexer.TokenError:         syntax.KindError,
	lexer.TokenIdentifier:    syntax.KindIdentifier,
	lexer.TokenIntLiteral:    syntax.KindIntLiteral,
	lexer.TokenFloatLiteral:  syntax.KindFloatLiteral,
	lexer.TokenStringLiteral: syntax.KindStringLiteral,
	lexer.TokenKwFn:          syntax.KindKwFn,
	lexer.TokenKwLet:         syntax.KindKwLet,
	lexer.TokenKwIf:          syntax.KindKwIf,
	lexer.TokenKwElse:        syntax.KindKwElse,
	lexer.TokenKwWhile:       syntax.KindKwWhile,
	lexer.TokenKwLoop:        syntax.KindKwLoop,
	lexer.TokenKwReturn:      syntax.KindKwReturn,
	lexer.TokenKwBreak:       syntax.KindKwBreak,
	lexer.TokenKwStruct:      syntax.KindKwStruct,
	lexer.TokenKwPub:         syntax.KindKwPub,
	lexer.TokenKwTrue:        syntax.KindKwTrue,
	lexer.TokenKwFalse:       syntax.KindKwFalse,
	lexer.TokenLBrace:        syntax.KindLBrace,
	lexer.TokenRBrace:        syntax.KindRBrace,
	lexer.TokenLParen:        syntax.KindLParen,
	lexer.TokenRParen:        syntax.KindRParen,
	lexer.TokenComma:         syntax.KindComma,
	lexer.TokenSemi:          syntax.KindSemi,
	lexer.TokenColon:         syntax.KindColon,
	lexer.TokenEqual:         syntax.KindEqual,
	lexer.TokenEqualEqual:    syntax.KindEqualEqual,
	lexer.TokenBangEqual:     syntax.KindBangEqual,
	lexer.TokenLess:          syntax.KindLess,
	lexer.TokenLessEqual:     syntax.KindLessEqual,
	lexer.TokenGreater:       syntax.KindGreater,
	lexer.TokenGreaterEqual:  syntax.KindGreaterEqual,
	lexer.TokenArrow:         syntax.KindArrow,
	lexer.TokenDot:           syntax.KindDot,
	lexer.TokenPlus:          syntax.KindPlus,
	lexer.TokenMinus:         syntax.KindMinus,
	lexer.TokenStar:          syntax.KindStar,
	lexer.TokenSlash:         syntax.KindSlash,
	lexer.TokenBang:          syntax.KindBang,
	lexer.TokenUnderscore:    syntax.KindUnderscore,
	lexer.TokenEOF:           syntax.KindEOF,
}

var triviaKindToSyntaxKind = map[lexer.TriviaKind]syntax.Kind{
	lexer.TriviaWhitespace:   syntax.KindTriviaWhitespace,
	lexer.TriviaNewline:      syntax.KindTriviaNewline,
	lexer.TriviaLineComment:  syntax.KindTriviaLineComment,
	lexer.TriviaBlockComment: syntax.KindTriviaBlockComment,
	lexer.TriviaDocComment:   syntax.KindTriviaDocComment,
}

func (p *parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) curKind() lexer.TokenKind {
	return p.cur().Kind
}

func (p *parser) atEOF() bool {
	return p.curKind() == lexer.TokenEOF
}

// bump emits the current token's leading trivia then the token itself as
// children of the innermost open builder frame, and advances.
func (p *parser) bump() {
	tok := p.cur()
	for _, tr := range tok.Leading {
		p.b.Token(triviaKindToSyntaxKind[tr.Kind], string(tr.Bytes(p.src)))
	}
	p.b.Token(tokenKindToSyntaxKind[tok.Kind], string(tok.Bytes(p.src)))
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// flushEOFTrivia emits the EOF token's leading trivia into the builder
// without advancing past it, so trailing whitespace and comments after the
// last item (or a file containing only trivia) still end up under
// SOURCE_FILE instead of being dropped.
func (p *parser) flushEOFTrivia() {
	for _, tr := range p.cur().Leading {
		p.b.Token(triviaKindToSyntaxKind[tr.Kind], string(tr.Bytes(p.src)))
	}
}

// expect bumps the current token if it matches kind, otherwise records a
// parse error and leaves the token stream positioned for recovery.
func (p *parser) expect(kind lexer.TokenKind, what string) bool {
	if p.curKind() == kind {
		p.bump()
		return true
	}
	p.errorHere(fmt.Sprintf("expected %s", what))
	return false
}

func (p *parser) at(kind lexer.TokenKind) bool {
	return p.curKind() == kind
}

func (p *parser) errorHere(msg string) {
	p.errors = append(p.errors, ParseError{Message: msg, Span: p.cur().Span})
}

// recoverToItemBoundary wraps everything up to (but not including) the
// next item-starting keyword or EOF in an ERROR node, consuming at least
// one token so recovery always makes progress.
func (p *parser) recoverToItemBoundary() {
	p.b.StartNode()
	p.bump()
	for !p.atEOF() && !p.atItemStart() {
		p.bump()
	}
	p.b.FinishNodeFlagged(syntax.KindError, syntax.NodeFlagError)
}

func (p *parser) atItemStart() bool {
	switch p.curKind() {
	case lexer.TokenKwFn, lexer.TokenKwStruct, lexer.TokenKwPub:
		return true
	default:
		return false
	}
}

// recoverToStmtBoundary is recoverToItemBoundary's statement-level sibling:
// it stops at `;`, `}`, or a new item/statement-starting keyword.
func (p *parser) recoverToStmtBoundary() {
	p.b.StartNode()
	p.bump()
	for !p.atEOF() && !p.atStmtBoundary() {
		p.bump()
	}
	if p.at(lexer.TokenSemi) {
		p.bump()
	}
	p.b.FinishNodeFlagged(syntax.KindError, syntax.NodeFlagError)
}

func (p *parser) atStmtBoundary() bool {
	switch p.curKind() {
	case lexer.TokenSemi, lexer.TokenRBrace, lexer.TokenKwLet, lexer.TokenKwIf,
		lexer.TokenKwWhile, lexer.TokenKwLoop, lexer.TokenKwReturn, lexer.TokenKwBreak,
		lexer.TokenKwFn, lexer.TokenKwStruct:
		return true
	default:
		return false
	}
}
