package ds

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

const keySeparator = "."

// Trie stores values under dotted names like calc.mode or csv.comma. Names
// with the same leading parts share the nodes of these parts.
type Trie[T any] struct {
	root *trieNode[T]
}

type trieNode[T any] struct {
	value    T
	set      bool
	children map[string]*trieNode[T]
}

func newTrieNode[T any]() *trieNode[T] {
	return &trieNode[T]{
		children: make(map[string]*trieNode[T]),
	}
}

func NewTrie[T any]() *Trie[T] {
	return &Trie[T]{
		root: newTrieNode[T](),
	}
}

func (t *Trie[T]) Register(name string, value T) {
	node := t.root
	for _, part := range splitKey(name) {
		child, ok := node.children[part]
		if !ok {
			child = newTrieNode[T]()
			node.children[part] = child
		}
		node = child
	}
	node.value = value
	node.set = true
}

// Get gives the value registered under name. Intermediate parts of a name
// have no value.
func (t *Trie[T]) Get(name string) (T, bool) {
	node, ok := t.find(splitKey(name))
	if !ok || !node.set {
		var zero T
		return zero, false
	}
	return node.value, true
}

// All iterates in lexical order over the names registered under prefix and
// their values. An empty prefix gives every name.
func (t *Trie[T]) All(prefix string) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		path := splitKey(prefix)
		node, ok := t.find(path)
		if !ok {
			return
		}
		node.walk(path, yield)
	}
}

func (t *Trie[T]) Names(prefix string) []string {
	var list []string
	for name := range t.All(prefix) {
		list = append(list, name)
	}
	return list
}

// Closest gives the names sharing the longest known leading parts with
// name.
func (t *Trie[T]) Closest(name string) []string {
	var (
		node = t.root
		path []string
	)
	for _, part := range splitKey(name) {
		child, ok := node.children[part]
		if !ok {
			break
		}
		node, path = child, append(path, part)
	}
	return t.Names(strings.Join(path, keySeparator))
}

func (t *Trie[T]) find(path []string) (*trieNode[T], bool) {
	node := t.root
	for _, part := range path {
		child, ok := node.children[part]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

func (n *trieNode[T]) walk(path []string, yield func(string, T) bool) bool {
	if n.set && !yield(strings.Join(path, keySeparator), n.value) {
		return false
	}
	for _, part := range slices.Sorted(maps.Keys(n.children)) {
		if !n.children[part].walk(append(path, part), yield) {
			return false
		}
	}
	return true
}

func splitKey(name string) []string {
	if name = strings.TrimSpace(name); name == "" {
		return nil
	}
	parts := strings.Split(name, keySeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
