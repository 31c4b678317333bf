package syntax

// Preorder walks a node's descendants depth-first, parent before
// children, visiting the starting node itself first. It is cheap to
// hold (only the visit stack allocates) and supports SkipSubtree to
// prune a branch immediately after it is returned.
type Preorder struct {
	tree                  *Tree
	stack                 [][]Node
	pushedChildrenForLast bool
}

func newPreorder(n Node) *Preorder {
	return &Preorder{tree: n.tree, stack: [][]Node{{n}}}
}

// Preorder returns a node-only preorder iterator rooted at n.
func (n Node) Preorder() *Preorder { return newPreorder(n) }

// Next returns the next node in preorder, or ok=false when exhausted.
func (p *Preorder) Next() (Node, bool) {
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if len(top) == 0 {
			p.stack = p.stack[:len(p.stack)-1]
			continue
		}
		node := top[0]
		p.stack[len(p.stack)-1] = top[1:]

		children := node.Children()
		if len(children) > 0 {
			p.stack = append(p.stack, children)
			p.pushedChildrenForLast = true
		} else {
			p.pushedChildrenForLast = false
		}
		return node, true
	}
	return Node{}, false
}

// SkipSubtree prevents descent into the children of the node most
// recently returned by Next. It is a no-op if that node had no
// children or if called before the first Next call.
func (p *Preorder) SkipSubtree() {
	if p.pushedChildrenForLast && len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
		p.pushedChildrenForLast = false
	}
}

// Descendants materializes every node in n's subtree in preorder,
// including n itself.
func (n Node) Descendants() []Node {
	p := newPreorder(n)
	var out []Node
	for {
		node, ok := p.Next()
		if !ok {
			break
		}
		out = append(out, node)
	}
	return out
}

// WalkEventKind tags a WalkEvent as entering a node, leaving a node, or
// visiting a token.
type WalkEventKind int

const (
	EnterNodeEvent WalkEventKind = iota
	LeaveNodeEvent
	TokenWalkEvent
)

// WalkEvent is one step of a PreorderWithTokens walk.
type WalkEvent struct {
	Kind  WalkEventKind
	Node  Node  // valid when Kind is EnterNodeEvent or LeaveNodeEvent
	Token Token // valid when Kind is TokenWalkEvent
}

type pwtFrame struct {
	node     Node
	children []ElementRef
	idx      int
	entered  bool
}

// PreorderWithTokens walks a node's subtree emitting EnterNode / Token /
// LeaveNode events in source order (§4.2).
type PreorderWithTokens struct {
	stack []pwtFrame
}

func newPreorderWithTokens(n Node) *PreorderWithTokens {
	return &PreorderWithTokens{stack: []pwtFrame{{node: n, children: n.ChildrenWithTokens()}}}
}

// PreorderWithTokens returns a node-and-token walk rooted at n.
func (n Node) PreorderWithTokens() *PreorderWithTokens { return newPreorderWithTokens(n) }

// Next returns the next walk event, or ok=false when exhausted.
func (p *PreorderWithTokens) Next() (WalkEvent, bool) {
	for len(p.stack) > 0 {
		top := &p.stack[len(p.stack)-1]
		if !top.entered {
			top.entered = true
			return WalkEvent{Kind: EnterNodeEvent, Node: top.node}, true
		}
		if top.idx >= len(top.children) {
			node := top.node
			p.stack = p.stack[:len(p.stack)-1]
			return WalkEvent{Kind: LeaveNodeEvent, Node: node}, true
		}
		el := top.children[top.idx]
		top.idx++
		if el.IsToken {
			return WalkEvent{Kind: TokenWalkEvent, Token: el.Token}, true
		}
		p.stack = append(p.stack, pwtFrame{node: el.Node, children: el.Node.ChildrenWithTokens()})
	}
	return WalkEvent{}, false
}

// SkipSubtree skips the remaining, not-yet-visited children of the node
// whose EnterNodeEvent was most recently returned; the matching
// LeaveNodeEvent is still emitted on the following Next call.
func (p *PreorderWithTokens) SkipSubtree() {
	if len(p.stack) == 0 {
		return
	}
	top := &p.stack[len(p.stack)-1]
	top.idx = len(top.children)
}

// DescendantsWithTokens materializes every node and token in n's
// subtree in source order, including n itself (§4.2 ordering
// guarantees, §8 invariant 4).
func (n Node) DescendantsWithTokens() []ElementRef {
	p := newPreorderWithTokens(n)
	var out []ElementRef
	for {
		ev, ok := p.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case EnterNodeEvent:
			out = append(out, ElementRef{Node: ev.Node})
		case TokenWalkEvent:
			out = append(out, ElementRef{IsToken: true, Token: ev.Token})
		}
	}
	return out
}
