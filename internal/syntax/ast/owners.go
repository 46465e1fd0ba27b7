package ast

import "github.com/emberlang/ember/internal/syntax"

// NameOwner is implemented by nodes that bind a Name (functions, structs,
// struct fields). A BindPat holds its identifier token directly, not a
// NAME node.
type NameOwner interface {
	Node
}

// NameOf walks n's direct node children for a NAME, the default-body
// accessor a NameOwner capability asks for.
func NameOf(n Node) (Name, bool) {
	return castFirstChild(n.Syntax(), Name{}.Cast)
}

// VisibilityOwner is implemented by module items that may carry `pub`.
type VisibilityOwner interface {
	Node
}

// VisibilityOf returns n's VISIBILITY child, if any. Absence means
// private, per the default-visibility policy.
func VisibilityOf(n Node) (Visibility, bool) {
	return castFirstChild(n.Syntax(), Visibility{}.Cast)
}

// TypeAscriptionOwner is implemented by nodes that may carry a `: Type`
// suffix (Param, struct fields).
type TypeAscriptionOwner interface {
	Node
}

// AscribedType returns n's TypeRef child, if any.
func AscribedType(n Node) (TypeRef, bool) {
	return castFirstChild(n.Syntax(), TypeRef{}.Cast)
}

// LoopBodyOwner is implemented by LoopExpr and WhileExpr.
type LoopBodyOwner interface {
	Node
}

// LoopBody returns n's BlockExpr child, if any.
func LoopBody(n Node) (BlockExpr, bool) {
	return castFirstChild(n.Syntax(), BlockExpr{}.Cast)
}

// ArgListOwner is implemented by CallExpr.
type ArgListOwner interface {
	Node
}

// ArgListOf returns n's ArgList child, if any.
func ArgListOf(n Node) (ArgList, bool) {
	return castFirstChild(n.Syntax(), ArgList{}.Cast)
}

// DocCommentsOwner is implemented by every ModuleItem (FunctionDef,
// StructDef): items are the only place doc comments attach per spec.
type DocCommentsOwner interface {
	Node
}

// DocComments concatenates n's leading `///`/`/** */` doc-comment trivia
// into a string slice (one entry per comment token, verbatim). It follows
// the first-token path down through any leading sub-nodes (e.g. a
// VISIBILITY node preceding `fn`/`struct`) so a `pub`-prefixed item's doc
// comment — attached ahead of the `pub` keyword, which itself lives a
// level deeper in the tree — is still found.
// Attribution stops at the first blank line (two consecutive newline
// trivia) between the doc comment and the item, per the resolved
// doc-comment-attribution policy: a blank line severs the comment from
// the item that follows it.
func DocComments(n Node) []string {
	syn := n.Syntax()
	if syn == nil {
		return nil
	}

	var lines []string
	consecutiveNewlines := 0

	var walk func(node *syntax.SyntaxNode) (hitRealToken bool)
	walk = func(node *syntax.SyntaxNode) bool {
		for _, c := range node.Children() {
			switch v := c.(type) {
			case *syntax.SyntaxToken:
				switch v.Kind() {
				case syntax.KindTriviaDocComment:
					lines = append(lines, v.Text())
					consecutiveNewlines = 0
				case syntax.KindTriviaNewline:
					consecutiveNewlines++
					if consecutiveNewlines >= 2 {
						lines = nil
					}
				case syntax.KindTriviaWhitespace:
					// ignored for blank-line detection
				default:
					if !v.Kind().IsTrivia() {
						return true
					}
					consecutiveNewlines = 0
				}
			case *syntax.SyntaxNode:
				if walk(v) {
					return true
				}
			}
		}
		return false
	}
	walk(syn)
	return lines
}
