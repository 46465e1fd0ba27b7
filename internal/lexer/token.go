// Package lexer provides a lossless token/trivia lexer for Ember source.
package lexer

import (
	"fmt"

	"github.com/emberlang/ember/internal/text"
)

// TokenKind identifies the syntactic category of a token.
type TokenKind uint16

// TokenKind values used by the Ember lexer.
const (
	TokenError TokenKind = iota
	TokenEOF
	TokenIdentifier
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral

	TokenKwFn
	TokenKwLet
	TokenKwIf
	TokenKwElse
	TokenKwWhile
	TokenKwLoop
	TokenKwReturn
	TokenKwBreak
	TokenKwStruct
	TokenKwPub
	TokenKwTrue
	TokenKwFalse

	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenComma
	TokenSemi
	TokenColon
	TokenEqual
	TokenEqualEqual
	TokenBangEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenArrow
	TokenDot
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenBang
	TokenUnderscore
)

func (k TokenKind) String() string {
	switch k {
	case TokenError:
		return "Error"
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "Identifier"
	case TokenIntLiteral:
		return "IntLiteral"
	case TokenFloatLiteral:
		return "FloatLiteral"
	case TokenStringLiteral:
		return "StringLiteral"
	case TokenKwFn:
		return "KwFn"
	case TokenKwLet:
		return "KwLet"
	case TokenKwIf:
		return "KwIf"
	case TokenKwElse:
		return "KwElse"
	case TokenKwWhile:
		return "KwWhile"
	case TokenKwLoop:
		return "KwLoop"
	case TokenKwReturn:
		return "KwReturn"
	case TokenKwBreak:
		return "KwBreak"
	case TokenKwStruct:
		return "KwStruct"
	case TokenKwPub:
		return "KwPub"
	case TokenKwTrue:
		return "KwTrue"
	case TokenKwFalse:
		return "KwFalse"
	case TokenLBrace:
		return "LBrace"
	case TokenRBrace:
		return "RBrace"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenComma:
		return "Comma"
	case TokenSemi:
		return "Semi"
	case TokenColon:
		return "Colon"
	case TokenEqual:
		return "Equal"
	case TokenEqualEqual:
		return "EqualEqual"
	case TokenBangEqual:
		return "BangEqual"
	case TokenLess:
		return "Less"
	case TokenLessEqual:
		return "LessEqual"
	case TokenGreater:
		return "Greater"
	case TokenGreaterEqual:
		return "GreaterEqual"
	case TokenArrow:
		return "Arrow"
	case TokenDot:
		return "Dot"
	case TokenPlus:
		return "Plus"
	case TokenMinus:
		return "Minus"
	case TokenStar:
		return "Star"
	case TokenSlash:
		return "Slash"
	case TokenBang:
		return "Bang"
	case TokenUnderscore:
		return "Underscore"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// IsKeyword reports whether k is one of the reserved Ember keywords.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenKwFn && k <= TokenKwFalse
}

// TokenFlags carry metadata about the token source or origin.
type TokenFlags uint8

// TokenFlags values describe token provenance or recovery state.
const (
	TokenFlagMalformed TokenFlags = 1 << iota
	TokenFlagSynthesized
	TokenFlagRecovered
)

// Has reports whether all bits in mask are set.
func (f TokenFlags) Has(mask TokenFlags) bool {
	return f&mask == mask
}

// Token is a lexed token with a source span and leading trivia.
type Token struct {
	Kind    TokenKind
	Span    text.Span
	Leading []Trivia
	Flags   TokenFlags
}

// Bytes returns the token bytes referenced by Span or nil if Span is invalid for src.
func (t Token) Bytes(src []byte) []byte {
	return bytesForSpan(src, t.Span)
}

var keywordKinds = map[string]TokenKind{
	"fn":     TokenKwFn,
	"let":    TokenKwLet,
	"if":     TokenKwIf,
	"else":   TokenKwElse,
	"while":  TokenKwWhile,
	"loop":   TokenKwLoop,
	"return": TokenKwReturn,
	"break":  TokenKwBreak,
	"struct": TokenKwStruct,
	"pub":    TokenKwPub,
	"true":   TokenKwTrue,
	"false":  TokenKwFalse,
}

func bytesForSpan(src []byte, sp text.Span) []byte {
	if !sp.IsValid() {
		return nil
	}
	if sp.End > text.ByteOffset(len(src)) {
		return nil
	}
	return src[sp.Start:sp.End]
}
