package syntax

// GreenToken is an immutable leaf: a kind plus its exact source text.
// Trivia (whitespace, newlines, comments) is kept as tokens of its own
// trivia kinds, so the tree stays lossless.
type GreenToken struct {
	kind Kind
	text string
}

// NewGreenToken constructs a leaf green token.
func NewGreenToken(kind Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

func (t *GreenToken) Kind() Kind    { return t.kind }
func (t *GreenToken) Text() string  { return t.text }
func (t *GreenToken) Len() int      { return len(t.text) }

// GreenElement is either a *GreenNode or a *GreenToken. Implemented as a
// small closed interface (Go's substitute for Rust's NodeOrToken enum).
type GreenElement interface {
	greenLen() int
	greenKind() Kind
}

func (n *GreenNode) greenLen() int  { return n.length }
func (n *GreenNode) greenKind() Kind { return n.kind }
func (t *GreenToken) greenLen() int  { return len(t.text) }
func (t *GreenToken) greenKind() Kind { return t.kind }

// NodeFlags record recovery provenance for a GreenNode, the node-level
// analogue of lexer.TokenFlags.
type NodeFlags uint8

const (
	// NodeFlagError marks a node synthesized to wrap unparseable input
	// during panic-mode recovery.
	NodeFlagError NodeFlags = 1 << iota
	// NodeFlagMissing marks a node whose required child was absent and
	// was synthesized empty so the tree shape stays regular.
	NodeFlagMissing
)

func (f NodeFlags) Has(mask NodeFlags) bool { return f&mask != 0 }

// GreenNode is an immutable, parent-less, structurally-shared tree node:
// a kind, a total byte length, and an ordered list of children that are
// each either a green token or another green node. Two GreenNodes with
// equal kind, equal flags, and equal children (by content) are
// interchangeable, which is what lets the builder's node cache
// deduplicate identical subtrees.
type GreenNode struct {
	kind     Kind
	flags    NodeFlags
	length   int
	children []GreenElement
}

// NewGreenNode constructs a green node from its children, computing the
// total byte length as the sum of the children's lengths.
func NewGreenNode(kind Kind, children []GreenElement) *GreenNode {
	return NewGreenNodeFlagged(kind, 0, children)
}

// NewGreenNodeFlagged is NewGreenNode plus explicit NodeFlags.
func NewGreenNodeFlagged(kind Kind, flags NodeFlags, children []GreenElement) *GreenNode {
	total := 0
	for _, c := range children {
		total += c.greenLen()
	}
	return &GreenNode{kind: kind, flags: flags, length: total, children: children}
}

func (n *GreenNode) Kind() Kind              { return n.kind }
func (n *GreenNode) Flags() NodeFlags        { return n.flags }
func (n *GreenNode) Len() int                { return n.length }
func (n *GreenNode) Children() []GreenElement { return n.children }

// contentKey is a cheap structural fingerprint used by the builder's
// dedup cache; it is not a cryptographic hash, just good enough to bucket
// candidate-equal subtrees before a full greenEqual check.
func contentKey(kind Kind, flags NodeFlags, children []GreenElement) string {
	// A bounded, allocation-light fingerprint: kind, flags, child count,
	// and each child's own kind/length, which is enough entropy in
	// practice for small grammars like this one while staying cheap to
	// compute.
	buf := make([]byte, 0, 8+4*len(children))
	buf = appendUint16(buf, uint16(kind))
	buf = append(buf, byte(flags))
	buf = appendUint16(buf, uint16(len(children)))
	for _, c := range children {
		buf = appendUint16(buf, uint16(c.greenKind()))
		buf = appendUint16(buf, uint16(c.greenLen()))
	}
	return string(buf)
}

func appendUint16(buf []byte, v uint16) []byte {
	return append(buf, byte(v>>8), byte(v))
}

// greenEqual reports whether two green elements are structurally equal:
// same kind, same text (for tokens) or same children recursively (for
// nodes). Used by the builder's cache to confirm a contentKey bucket hit
// is a genuine duplicate before sharing the pointer.
func greenEqual(a, b GreenElement) bool {
	switch av := a.(type) {
	case *GreenToken:
		bv, ok := b.(*GreenToken)
		return ok && av.kind == bv.kind && av.text == bv.text
	case *GreenNode:
		bv, ok := b.(*GreenNode)
		if !ok || av.kind != bv.kind || av.flags != bv.flags || len(av.children) != len(bv.children) {
			return false
		}
		for i := range av.children {
			if !greenEqual(av.children[i], bv.children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
