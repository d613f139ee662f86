package keymap

import (
	"fmt"
	"sort"

	"github.com/cleichner/rotide/internal/dispatcher/handler"
	"github.com/cleichner/rotide/internal/input/key"
	"github.com/cleichner/rotide/internal/input/mode"
)

// Logger is the logging surface the registry needs.
type Logger interface {
	Warn(msg string, args ...any)
}

// Registry holds the bindings of every mode.
// It is not safe for concurrent use.
type Registry struct {
	trees  map[mode.Mode]*PrefixTree
	count  int
	logger Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		trees: make(map[mode.Mode]*PrefixTree),
	}
}

// SetLogger sets the logger used to report replaced bindings.
func (r *Registry) SetLogger(l Logger) {
	r.logger = l
}

// Register binds seq in mode m to h, replacing any existing binding for the
// same sequence. It reports whether a binding was replaced.
func (r *Registry) Register(m mode.Mode, seq key.Sequence, name string, h handler.Handler) (bool, error) {
	if seq.IsEmpty() {
		return false, ErrEmptySequence
	}
	if isNilHandler(h) {
		return false, fmt.Errorf("%w: %s", ErrNilHandler, seq)
	}
	if !m.IsValid() {
		return false, fmt.Errorf("%w: %d", mode.ErrUnknownMode, m)
	}

	tree := r.trees[m]
	if tree == nil {
		tree = NewPrefixTree()
		r.trees[m] = tree
	}

	b := &Binding{Mode: m, Sequence: seq.Clone(), Name: name, Handler: h}
	old := tree.Insert(b)
	if old != nil {
		if r.logger != nil {
			r.logger.Warn("binding %s replaced by %s", old, b)
		}
		return true, nil
	}
	r.count++
	return false, nil
}

// Unregister removes the binding for seq in mode m.
func (r *Registry) Unregister(m mode.Mode, seq key.Sequence) bool {
	tree := r.trees[m]
	if tree == nil || !tree.Remove(seq) {
		return false
	}
	r.count--
	return true
}

// Lookup classifies prefix against the bindings of mode m.
func (r *Registry) Lookup(m mode.Mode, prefix key.Sequence) Match {
	tree := r.trees[m]
	if tree == nil || prefix.IsEmpty() {
		return Match{Kind: NoMatch}
	}
	return tree.Lookup(prefix)
}

// Get returns the binding for exactly seq in mode m.
func (r *Registry) Get(m mode.Mode, seq key.Sequence) (*Binding, bool) {
	match := r.Lookup(m, seq)
	return match.Binding, match.IsExact()
}

// Bindings returns the bindings of mode m sorted by sequence.
func (r *Registry) Bindings(m mode.Mode) []*Binding {
	tree := r.trees[m]
	if tree == nil {
		return nil
	}
	out := tree.All()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Sequence.String() < out[j].Sequence.String()
	})
	return out
}

// Len returns the number of bindings across all modes.
func (r *Registry) Len() int {
	return r.count
}

// Clear removes every binding.
func (r *Registry) Clear() {
	r.trees = make(map[mode.Mode]*PrefixTree)
	r.count = 0
}

func isNilHandler(h handler.Handler) bool {
	if h == nil {
		return true
	}
	f, ok := h.(handler.Func)
	return ok && f == nil
}

// PrefixTree indexes bindings by key code for prefix lookup.
type PrefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children map[key.Code]*prefixNode
	binding  *Binding
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Code]*prefixNode)}
}

// NewPrefixTree creates an empty prefix tree.
func NewPrefixTree() *PrefixTree {
	return &PrefixTree{root: newPrefixNode()}
}

// Insert stores b at its sequence and returns the binding it replaced.
func (t *PrefixTree) Insert(b *Binding) *Binding {
	node := t.root
	for _, c := range b.Sequence {
		child, ok := node.children[c]
		if !ok {
			child = newPrefixNode()
			node.children[c] = child
		}
		node = child
	}
	old := node.binding
	node.binding = b
	return old
}

// Remove deletes the binding at seq and prunes empty nodes.
func (t *PrefixTree) Remove(seq key.Sequence) bool {
	if seq.IsEmpty() {
		return false
	}

	path := make([]*prefixNode, 0, len(seq)+1)
	path = append(path, t.root)
	node := t.root
	for _, c := range seq {
		child, ok := node.children[c]
		if !ok {
			return false
		}
		path = append(path, child)
		node = child
	}
	if node.binding == nil {
		return false
	}
	node.binding = nil

	// Prune empty nodes from leaf to root
	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if current.binding != nil || len(current.children) > 0 {
			break
		}
		delete(path[i-1].children, seq[i-1])
	}
	return true
}

// Lookup classifies seq.
func (t *PrefixTree) Lookup(seq key.Sequence) Match {
	node := t.root
	for _, c := range seq {
		child, ok := node.children[c]
		if !ok {
			return Match{Kind: NoMatch}
		}
		node = child
	}
	switch {
	case node.binding != nil:
		return Match{Kind: ExactMatch, Binding: node.binding, Longer: len(node.children) > 0}
	case len(node.children) > 0:
		return Match{Kind: PartialMatch}
	default:
		return Match{Kind: NoMatch}
	}
}

// All returns every binding in the tree, in no particular order.
func (t *PrefixTree) All() []*Binding {
	var out []*Binding
	var walk func(n *prefixNode)
	walk = func(n *prefixNode) {
		if n.binding != nil {
			out = append(out, n.binding)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(t.root)
	return out
}
