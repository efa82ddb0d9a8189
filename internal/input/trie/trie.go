package trie

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmptySequence is returned for a binding without keys.
	ErrEmptySequence = errors.New("empty key sequence")

	// ErrEmptyAction is returned for a binding without an action.
	ErrEmptyAction = errors.New("empty action")

	// ErrConflict is returned when one binding is a prefix of another, or
	// the same sequence is bound twice.
	ErrConflict = errors.New("conflicting binding")
)

// Binding maps a key sequence to an action name.
type Binding struct {
	// Keys is a space-separated key sequence, e.g. "x" or "d d".
	// The token "Space" stands for the space bar.
	Keys string

	// Action is the name handed back when the sequence completes.
	Action string
}

// ParseKeys splits a binding's key sequence into individual keys.
func ParseKeys(keys string) []string {
	fields := strings.Fields(keys)
	for i, f := range fields {
		if f == "Space" {
			fields[i] = " "
		}
	}
	return fields
}

// Node is a trie node. A node is either a command leaf carrying an action
// or an interior node with children; never both.
type Node struct {
	action   string
	children map[string]*Node
}

// IsCommand reports whether the node completes a sequence.
func (n *Node) IsCommand() bool {
	return n.action != ""
}

// Action returns the leaf's action name, or "" for interior nodes.
func (n *Node) Action() string {
	return n.action
}

// Child returns the node reached by key.
func (n *Node) Child(key string) (*Node, bool) {
	child, ok := n.children[key]
	return child, ok
}

// Keys returns the keys leading out of the node, sorted.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Trie is an immutable command trie.
type Trie struct {
	root     *Node
	bindings []Binding
}

// Build constructs a trie from bindings.
func Build(bindings []Binding) (*Trie, error) {
	t := &Trie{
		root:     &Node{children: make(map[string]*Node)},
		bindings: make([]Binding, 0, len(bindings)),
	}

	for _, b := range bindings {
		if err := t.insert(b); err != nil {
			return nil, fmt.Errorf("binding %q: %w", b.Keys, err)
		}
		t.bindings = append(t.bindings, b)
	}
	return t, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(bindings []Binding) *Trie {
	t, err := Build(bindings)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Trie) insert(b Binding) error {
	keys := ParseKeys(b.Keys)
	if len(keys) == 0 {
		return ErrEmptySequence
	}
	if b.Action == "" {
		return ErrEmptyAction
	}

	node := t.root
	for i, k := range keys {
		if node.IsCommand() {
			return fmt.Errorf("%w: prefix %q is already a command", ErrConflict, strings.Join(keys[:i], " "))
		}
		child, ok := node.children[k]
		if !ok {
			child = &Node{}
			if i < len(keys)-1 {
				child.children = make(map[string]*Node)
			}
			node.children[k] = child
		} else if i < len(keys)-1 && child.children == nil {
			return fmt.Errorf("%w: prefix %q is already a command", ErrConflict, strings.Join(keys[:i+1], " "))
		}
		node = child
	}

	if node.IsCommand() || len(node.children) > 0 {
		return fmt.Errorf("%w: sequence already bound or used as a prefix", ErrConflict)
	}
	node.action = b.Action
	return nil
}

// Root returns the root node.
func (t *Trie) Root() *Node {
	return t.root
}

// Lookup walks keys from the root.
func (t *Trie) Lookup(keys ...string) (*Node, bool) {
	node := t.root
	for _, k := range keys {
		child, ok := node.Child(k)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Bindings returns a copy of the bindings the trie was built from.
func (t *Trie) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Merge applies overrides to base. An override replaces the binding with
// the same key sequence or adds a new one; an empty action removes it.
func Merge(base []Binding, overrides map[string]string) []Binding {
	if len(overrides) == 0 {
		return base
	}

	canonical := func(keys string) string {
		return strings.Join(ParseKeys(keys), "\x00")
	}

	pending := make(map[string]string, len(overrides))
	for keys, action := range overrides {
		pending[canonical(keys)] = action
	}

	out := make([]Binding, 0, len(base)+len(overrides))
	for _, b := range base {
		action, ok := pending[canonical(b.Keys)]
		if !ok {
			out = append(out, b)
			continue
		}
		delete(pending, canonical(b.Keys))
		if action != "" {
			out = append(out, Binding{Keys: b.Keys, Action: action})
		}
	}

	// New sequences, in a stable order.
	added := make([]string, 0, len(overrides))
	for keys, action := range overrides {
		if _, ok := pending[canonical(keys)]; ok && action != "" {
			added = append(added, keys)
		}
	}
	sort.Strings(added)
	for _, keys := range added {
		out = append(out, Binding{Keys: keys, Action: overrides[keys]})
	}
	return out
}
