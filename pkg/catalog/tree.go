package catalog

import (
	"sort"
	"strings"

	"github.com/easeltools/easel/pkg/models"
)

// FolderNode is one node of the derived folder tree. A node's Items holds
// only items whose relative path terminates at that node; Children is keyed
// by the immediate next path segment. The root node has an empty Name.
type FolderNode struct {
	Name     string
	Children map[string]*FolderNode
	Items    []models.Item
}

// NewFolderNode creates an empty node.
func NewFolderNode(name string) *FolderNode {
	return &FolderNode{
		Name:     name,
		Children: make(map[string]*FolderNode),
	}
}

// BuildTree folds a flat item list into a folder tree. The final path
// segment of each item is treated as the filename and dropped; only
// directory segments group. Deterministic: the node set and per-node item
// membership depend only on the input set, with intra-node item order being
// input insertion order.
func BuildTree(items []models.Item) *FolderNode {
	root := NewFolderNode("")
	for _, item := range items {
		c := Classify(item.Path)
		dirs := c.Segments
		if len(dirs) > 0 {
			dirs = dirs[:len(dirs)-1]
		}
		node := root
		for _, seg := range dirs {
			child, ok := node.Children[seg]
			if !ok {
				child = NewFolderNode(seg)
				node.Children[seg] = child
			}
			node = child
		}
		node.Items = append(node.Items, item)
	}
	return root
}

// ChildKeys returns the node's child keys in ascending case-sensitive order.
// Ordering is a rendering-time decision; the tree itself carries none.
func (n *FolderNode) ChildKeys() []string {
	keys := make([]string, 0, len(n.Children))
	for k := range n.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CountItems counts all items in the subtree rooted at n.
func (n *FolderNode) CountItems() int {
	if n == nil {
		return 0
	}
	count := len(n.Items)
	for _, child := range n.Children {
		count += child.CountItems()
	}
	return count
}

// FolderPaths collects every folder path in the tree as a "/"-joined string,
// depth-first in ascending key order. The root itself is not included.
func (n *FolderNode) FolderPaths() []string {
	var paths []string
	var walk func(node *FolderNode, prefix string)
	walk = func(node *FolderNode, prefix string) {
		for _, key := range node.ChildKeys() {
			p := key
			if prefix != "" {
				p = prefix + "/" + key
			}
			paths = append(paths, p)
			walk(node.Children[key], p)
		}
	}
	walk(n, "")
	return paths
}

// Walk visits every node depth-first: the node itself first, then children
// in ascending key order. The visitor receives the "/"-joined folder path
// ("" for the root) and the node.
func (n *FolderNode) Walk(fn func(path string, node *FolderNode)) {
	var walk func(node *FolderNode, prefix string)
	walk = func(node *FolderNode, prefix string) {
		fn(prefix, node)
		for _, key := range node.ChildKeys() {
			p := key
			if prefix != "" {
				p = prefix + "/" + key
			}
			walk(node.Children[key], p)
		}
	}
	walk(n, "")
}

// Find resolves a "/"-joined folder path to its node, or nil.
func (n *FolderNode) Find(folderPath string) *FolderNode {
	if folderPath == "" {
		return n
	}
	node := n
	for _, seg := range strings.Split(folderPath, "/") {
		child, ok := node.Children[seg]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}
