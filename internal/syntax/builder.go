package syntax

// Builder assembles a Green tree bottom-up from a flat stream of
// StartNode/Token/FinishNode calls. It never produces a Red node itself —
// callers wrap the finished root with NewRoot.
type Builder struct {
	cache  *NodeCache
	stack  [][]GreenElement // one frame per open, not-yet-finished StartNode
	result *GreenNode        // set once the outermost FinishNode runs
}

// NewBuilder returns a ready-to-use Builder backed by a fresh NodeCache.
func NewBuilder() *Builder {
	return &Builder{cache: NewNodeCache()}
}

// StartNode opens a new node frame. Every StartNode must be matched by a
// later FinishNode.
func (b *Builder) StartNode() {
	b.stack = append(b.stack, nil)
}

// Token appends a leaf token to the innermost open frame.
func (b *Builder) Token(kind Kind, text string) {
	b.push(NewGreenToken(kind, text))
}

// FinishNode closes the innermost open frame and interns it as kind via
// the builder's NodeCache. If an outer frame is still open, the finished
// node becomes one of its children; otherwise it becomes the tree root,
// retrievable via Finish.
func (b *Builder) FinishNode(kind Kind) {
	b.FinishNodeFlagged(kind, 0)
}

// FinishNodeFlagged is FinishNode plus explicit NodeFlags — the parser
// calls this with NodeFlagError when closing a synthesized ERROR node
// during panic-mode recovery.
func (b *Builder) FinishNodeFlagged(kind Kind, flags NodeFlags) {
	n := len(b.stack)
	children := b.stack[n-1]
	b.stack = b.stack[:n-1]
	node := b.cache.NodeFlagged(kind, flags, children)
	if len(b.stack) == 0 {
		b.result = node
		return
	}
	b.push(node)
}

func (b *Builder) push(e GreenElement) {
	top := len(b.stack) - 1
	b.stack[top] = append(b.stack[top], e)
}

// Checkpoint marks a position in the innermost open frame. Pair it with a
// later StartNodeAt to open a node retroactively once a lookahead token
// commits the parser to a production it couldn't have named up front — the
// left operand of a binary expression, or a bare expression that turns out
// to need an ExprStmt wrapper once a trailing `;` shows up.
type Checkpoint int

func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.stack[len(b.stack)-1]))
}

// StartNodeAt opens a new frame and moves every child appended to the
// current frame since checkpoint into it, so a subsequent FinishNode closes
// a node that covers everything parsed since the checkpoint was taken.
func (b *Builder) StartNodeAt(checkpoint Checkpoint) {
	top := len(b.stack) - 1
	tail := append([]GreenElement(nil), b.stack[top][checkpoint:]...)
	b.stack[top] = b.stack[top][:checkpoint]
	b.stack = append(b.stack, tail)
}

// Finish completes the build. It panics if any StartNode was left
// unclosed or if no node was ever finished — both are builder-usage bugs,
// not recoverable parse errors.
func (b *Builder) Finish() *GreenNode {
	if len(b.stack) != 0 {
		panic("syntax: Builder.Finish called with unclosed StartNode frames")
	}
	if b.result == nil {
		panic("syntax: Builder.Finish called before any FinishNode")
	}
	return b.result
}
