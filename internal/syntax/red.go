package syntax

import "github.com/emberlang/ember/internal/text"

// SyntaxNode is a red-layer cursor: a lazily-constructed view over a
// GreenNode carrying the absolute offset and parent pointer the green
// layer itself never stores. SyntaxNodes are cheap and ephemeral — build
// them on demand during traversal, never retain a tree of them.
type SyntaxNode struct {
	green  *GreenNode
	parent *SyntaxNode
	offset text.ByteOffset
	index  int // this node's position among parent's children
}

// NewRoot wraps a parsed Green tree's root in a parent-less red cursor.
func NewRoot(root *GreenNode) *SyntaxNode {
	return &SyntaxNode{green: root, offset: 0, index: -1}
}

func (n *SyntaxNode) Kind() Kind        { return n.green.Kind() }
func (n *SyntaxNode) Flags() NodeFlags  { return n.green.Flags() }
func (n *SyntaxNode) Green() *GreenNode { return n.green }

// Span is the node's absolute byte range in the source text.
func (n *SyntaxNode) Span() text.Span {
	return text.Span{Start: n.offset, End: n.offset + text.ByteOffset(n.green.Len())}
}

// Text reconstructs the node's exact source text by concatenating every
// descendant token's text in order — the lossless round-trip property.
func (n *SyntaxNode) Text() string {
	var buf []byte
	var walk func(e GreenElement)
	walk = func(e GreenElement) {
		switch v := e.(type) {
		case *GreenToken:
			buf = append(buf, v.text...)
		case *GreenNode:
			for _, c := range v.children {
				walk(c)
			}
		}
	}
	walk(n.green)
	return string(buf)
}

// Parent returns the lazily-reconstructed parent cursor, or nil at the root.
func (n *SyntaxNode) Parent() *SyntaxNode {
	return n.parent
}

// SyntaxElement is either a *SyntaxNode or a *SyntaxToken, mirroring
// GreenElement at the red layer.
type SyntaxElement interface {
	Kind() Kind
	Span() text.Span
}

// SyntaxToken is a red-layer cursor over a leaf GreenToken.
type SyntaxToken struct {
	green  *GreenToken
	parent *SyntaxNode
	offset text.ByteOffset
	index  int
}

func (t *SyntaxToken) Kind() Kind  { return t.green.Kind() }
func (t *SyntaxToken) Text() string { return t.green.text }
func (t *SyntaxToken) Parent() *SyntaxNode { return t.parent }

func (t *SyntaxToken) Span() text.Span {
	return text.Span{Start: t.offset, End: t.offset + text.ByteOffset(len(t.green.text))}
}

// Children returns every direct child element (nodes and tokens) as
// freshly-constructed red cursors parented to n, in source order.
func (n *SyntaxNode) Children() []SyntaxElement {
	out := make([]SyntaxElement, 0, len(n.green.children))
	off := n.offset
	for i, c := range n.green.children {
		switch v := c.(type) {
		case *GreenNode:
			out = append(out, &SyntaxNode{green: v, parent: n, offset: off, index: i})
		case *GreenToken:
			out = append(out, &SyntaxToken{green: v, parent: n, offset: off, index: i})
		}
		off += text.ByteOffset(c.greenLen())
	}
	return out
}

// ChildNodes returns only the node children (elided tokens), in order —
// the common case for AST façade construction.
func (n *SyntaxNode) ChildNodes() []*SyntaxNode {
	var out []*SyntaxNode
	for _, c := range n.Children() {
		if nd, ok := c.(*SyntaxNode); ok {
			out = append(out, nd)
		}
	}
	return out
}

// FirstChildNode returns the first node child of the given kind, or nil.
func (n *SyntaxNode) FirstChildNode(kind Kind) *SyntaxNode {
	for _, c := range n.ChildNodes() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// FirstChildToken returns the first token child of the given kind, or nil.
func (n *SyntaxNode) FirstChildToken(kind Kind) *SyntaxToken {
	for _, c := range n.Children() {
		if tok, ok := c.(*SyntaxToken); ok && tok.Kind() == kind {
			return tok
		}
	}
	return nil
}

// NextSibling returns the next sibling element after n, or nil if n is
// the last child or the root.
func (n *SyntaxNode) NextSibling() SyntaxElement {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.Children()
	if n.index+1 >= len(siblings) {
		return nil
	}
	return siblings[n.index+1]
}
