// Package document implements the hierarchical settings document and its durable storage.
//
// A document is a tree of named sections. Every section holds ordered
// key/value string pairs and ordered child sections; a child name may repeat,
// which is how lists (such as server entries) are represented.
//
// All lookups are nil-safe: asking a missing section for a value or a child
// reports absence instead of panicking, so callers can walk paths like
// SETTINGS/PLAYER/name without checking every step.
package document

// Value is a single key/value pair of a section.
type Value struct {
	Key   string
	Value string
}

// Node is a named section of a document.
type Node struct {
	Name     string
	values   []Value
	children []*Node
}

// New returns an empty section called name.
func New(name string) *Node {
	return &Node{Name: name}
}

// AddNode appends a new empty child section and returns it.
func (n *Node) AddNode(name string) *Node {
	child := New(name)
	n.children = append(n.children, child)
	return child
}

// AppendNode appends an existing section as a child.
func (n *Node) AppendNode(child *Node) {
	n.children = append(n.children, child)
}

// Node returns the first child called name, or nil.
func (n *Node) Node(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Nodes returns every child called name in document order.
func (n *Node) Nodes(name string) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, child := range n.children {
		if child.Name == name {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// HasNode reports whether a child called name exists.
func (n *Node) HasNode(name string) bool {
	return n.Node(name) != nil
}

// Children returns all child sections in document order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Value returns the first value stored under key.
func (n *Node) Value(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, v := range n.values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// Values returns all key/value pairs in document order.
func (n *Node) Values() []Value {
	if n == nil {
		return nil
	}
	return n.values
}

// AddValue appends a key/value pair, even if key is already present.
func (n *Node) AddValue(key, value string) {
	n.values = append(n.values, Value{Key: key, Value: value})
}

// SetValue replaces the first value stored under key, or appends it.
func (n *Node) SetValue(key, value string) {
	for i := range n.values {
		if n.values[i].Key == key {
			n.values[i].Value = value
			return
		}
	}
	n.AddValue(key, value)
}
