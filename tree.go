package nebotool

import (
	"sort"
	"strings"
)

// Node is the representation for an entry in the content tree.
// A node is either a collection (which has child nodes) or a page.
type Node struct {
	ID         string
	Parent     *Node
	Children   []*Node
	Collection *Collection
	Page       *PageRef
}

func newNode(id string) *Node {
	return &Node{
		ID:       id,
		Children: make([]*Node, 0),
	}
}

// Name is the display name for this node.
func (n *Node) Name() string {
	switch {
	case n.Page != nil:
		return n.Page.Title
	case n.Collection != nil:
		return n.Collection.Name
	default:
		return ""
	}
}

func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

func (n *Node) IsLeaf() bool {
	return n.Page != nil
}

// Path returns the names of all nodes from the root to this one.
func (n *Node) Path() []string {
	if n.Parent == nil {
		return []string{}
	}
	return append(n.Parent.Path(), n.Name())
}

// addChild adds a child node to this node and sets the Parent field
// of the child.
func (n *Node) addChild(child *Node) {
	n.Children = append(n.Children, child)
	child.Parent = n
}

// Sort sorts the subtree starting at this node by the given sort rule.
// Sorting is in-place.
func (n *Node) Sort(compare func(*Node, *Node) bool) {
	f := func(i, j int) bool {
		return compare(n.Children[i], n.Children[j])
	}
	sort.SliceStable(n.Children, f)

	for _, c := range n.Children {
		c.Sort(compare)
	}
}

// Walk calls f for this node and all nodes below it, depth first.
// Walking stops at the first error.
func (n *Node) Walk(f func(*Node) error) error {
	err := f(n)
	if err != nil {
		return err
	}

	for _, c := range n.Children {
		err = c.Walk(f)
		if err != nil {
			return err
		}
	}

	return nil
}

// NodeFilter decides whether a leaf node is kept in a filtered tree.
type NodeFilter func(*Node) bool

// Filtered returns a copy of the tree which contains only pages that
// match all filters. Collections without matching pages are dropped.
//
// Without filters, the complete tree is copied.
func (n *Node) Filtered(filters ...NodeFilter) *Node {
	root := &Node{
		ID:         n.ID,
		Children:   make([]*Node, 0),
		Collection: n.Collection,
		Page:       n.Page,
	}

	for _, c := range n.Children {
		if c.IsLeaf() {
			if matchAll(c, filters) {
				root.addChild(c.Filtered())
			}
			continue
		}

		sub := c.Filtered(filters...)
		if len(sub.Children) != 0 || len(filters) == 0 {
			root.addChild(sub)
		}
	}

	return root
}

func matchAll(n *Node, filters []NodeFilter) bool {
	for _, f := range filters {
		if !f(n) {
			return false
		}
	}
	return true
}

// MatchName creates a filter which matches pages whose title or collection
// name contains s (case-insensitive).
func MatchName(s string) NodeFilter {
	s = strings.ToLower(s)
	return func(n *Node) bool {
		if s == "" {
			return true
		}
		if strings.Contains(strings.ToLower(n.Name()), s) {
			return true
		}
		return n.Page != nil && strings.Contains(strings.ToLower(n.Page.Collection.Name), s)
	}
}

// BuildTree creates a tree view of all collections and pages in the given
// repository. Returns the root node.
func BuildTree(r *Repository) (*Node, error) {
	collections, err := r.Collections()
	if err != nil {
		return nil, err
	}

	root := newNode("")
	for _, c := range collections {
		cn := newNode(c.Name)
		cn.Collection = c

		pages, err := c.Pages()
		if err != nil {
			return nil, err
		}
		for _, p := range pages {
			pn := newNode(p.ID)
			pn.Page = p
			cn.addChild(pn)
		}

		root.addChild(cn)
	}

	return root, nil
}

// DefaultSort is the comparison function to sort collections in the content
// tree by name (case-insensitive). Pages keep their discovery order.
func DefaultSort(one, other *Node) bool {
	if one.IsLeaf() && other.IsLeaf() {
		return false
	}

	// special case, equal display names, fall back on ID
	if one.Name() == other.Name() {
		return one.ID < other.ID
	}

	// by name, case-insensitive
	return strings.ToLower(one.Name()) < strings.ToLower(other.Name())
}
