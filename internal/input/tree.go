package input

import (
	"fmt"

	"github.com/ja-he/archmaster/internal/control/action"
)

// Help maps bound key sequences, written as keyspecs, to what they do.
type Help = map[string]string

// Node is a step in a Tree. A leaf carries an Action and has no children,
// any other node has children and no Action.
type Node struct {
	Children map[Key]*Node
	Action   action.Action
}

// NewNode returns an inner node without children.
func NewNode() *Node {
	return &Node{Children: map[Key]*Node{}}
}

// NewLeaf returns a node that performs a.
func NewLeaf(a action.Action) *Node {
	return &Node{Action: a}
}

// Child returns the node reached from n by k, or nil.
func (n *Node) Child(k Key) *Node {
	return n.Children[k]
}

// IsLeaf reports whether n ends a sequence.
func (n *Node) IsLeaf() bool {
	return n.Action != nil
}

// GetHelp lists the sequences reachable from n, relative to n.
func (n *Node) GetHelp() Help {
	help := Help{}
	if n.IsLeaf() {
		help[""] = n.Action.Explain()
		return help
	}
	for k, child := range n.Children {
		prefix := ToConfigIdentifierString(k)
		for rest, explanation := range child.GetHelp() {
			help[prefix+rest] = explanation
		}
	}
	return help
}

// Tree binds key sequences to actions and follows input through them.
//
//	"c"    -> connect
//	"w"    -> save
//	"<cr>" -> edit
//
// Modifiers are ignored when following a sequence, so a binding for <tab>
// also fires on Shift+<tab>.
type Tree struct {
	Root    *Node
	Current *Node
}

// EmptyTree returns a tree with no bindings.
func EmptyTree() *Tree {
	root := NewNode()
	return &Tree{Root: root, Current: root}
}

// ConstructInputTree builds a tree from the given bindings.
// Keyspecs must be valid, non-empty and must not be prefixes of one another.
func ConstructInputTree(bindings map[Keyspec]action.Action) (*Tree, error) {
	tree := EmptyTree()
	for spec, a := range bindings {
		if err := tree.bind(spec, a); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

func (t *Tree) bind(spec Keyspec, a action.Action) error {
	sequence, err := ConfigKeyspecToKeys(spec)
	if err != nil {
		return fmt.Errorf("invalid keyspec '%s' (%w)", spec, err)
	}
	if len(sequence) == 0 {
		return fmt.Errorf("empty keyspec")
	}

	node := t.Root
	for i, key := range sequence {
		last := i == len(sequence)-1
		next, exists := node.Children[key]
		switch {
		case exists && (last || next.IsLeaf()):
			return fmt.Errorf("keyspec '%s' overlaps with another binding", spec)
		case exists:
		case last:
			next = NewLeaf(a)
			node.Children[key] = next
		default:
			next = NewNode()
			node.Children[key] = next
		}
		node = next
	}
	return nil
}

// ProcessInput advances along the sequence k continues, running the action
// when a leaf is reached. Unbound keys reset the tree and report false.
func (t *Tree) ProcessInput(k Key) bool {
	next := t.Current.Child(k.Unmodified())
	if next == nil {
		t.Current = t.Root
		return false
	}
	if next.IsLeaf() {
		t.Current = t.Root
		next.Action.Do()
		return true
	}
	t.Current = next
	return true
}

// CapturesInput reports whether a sequence has been started.
func (t *Tree) CapturesInput() bool {
	return t.Current != t.Root
}

// GetHelp lists all bound sequences.
func (t *Tree) GetHelp() Help {
	return t.Root.GetHelp()
}
