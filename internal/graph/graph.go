// Package graph stores labeled nodes connected by parent to child edges and
// renders them as a text tree.
package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/disiqueira/gotree/v3"
)

// ErrNodeNotFound is returned when rendering starts from an unknown key.
var ErrNodeNotFound = errors.New("graph: node not found")

// EdgeError reports an edge whose endpoint is not registered.
type EdgeError struct {
	ParentKey  string
	ChildKey   string
	MissingKey string
}

func (edgeError *EdgeError) Error() string {
	return fmt.Sprintf("graph: cannot add edge %s -> %s: node %s is not registered", edgeError.ParentKey, edgeError.ChildKey, edgeError.MissingKey)
}

// Node is a vertex of the graph carrying a payload.
type Node[T any] struct {
	Key     string
	Label   string
	Payload T

	children []*Node[T]
	childSet map[string]struct{}
}

// Children returns the direct children in insertion order.
func (node *Node[T]) Children() []*Node[T] {
	return node.children
}

// Graph is a directed graph keyed by string.
type Graph[T any] struct {
	nodes           map[string]*Node[T]
	maxDisplayLevel int
	hasMaxLevel     bool
}

// New returns an empty graph.
func New[T any]() *Graph[T] {
	return &Graph[T]{nodes: make(map[string]*Node[T])}
}

// AddNode registers a node. Registering an existing key returns the node
// already stored and leaves it untouched.
func (graph *Graph[T]) AddNode(key string, label string, payload T) *Node[T] {
	if existing, found := graph.nodes[key]; found {
		return existing
	}
	node := &Node[T]{Key: key, Label: label, Payload: payload, childSet: make(map[string]struct{})}
	graph.nodes[key] = node
	return node
}

// AddEdge connects parentKey to childKey. Adding the same edge twice is a no-op.
func (graph *Graph[T]) AddEdge(parentKey string, childKey string) error {
	parent, parentFound := graph.nodes[parentKey]
	if !parentFound {
		return &EdgeError{ParentKey: parentKey, ChildKey: childKey, MissingKey: parentKey}
	}
	child, childFound := graph.nodes[childKey]
	if !childFound {
		return &EdgeError{ParentKey: parentKey, ChildKey: childKey, MissingKey: childKey}
	}
	if _, exists := parent.childSet[childKey]; exists {
		return nil
	}
	parent.childSet[childKey] = struct{}{}
	parent.children = append(parent.children, child)
	return nil
}

// Lookup returns the node registered under key.
func (graph *Graph[T]) Lookup(key string) (*Node[T], bool) {
	node, found := graph.nodes[key]
	return node, found
}

// Len returns the number of nodes.
func (graph *Graph[T]) Len() int {
	return len(graph.nodes)
}

// SetMaxDisplayLevel limits rendering to nodes at most level edges below the
// rendered root. Deeper nodes stay in the graph.
func (graph *Graph[T]) SetMaxDisplayLevel(level int) {
	if level < 0 {
		level = 0
	}
	graph.maxDisplayLevel = level
	graph.hasMaxLevel = true
}

// RenderOptions customizes Render.
type RenderOptions[T any] struct {
	// Label formats a node; the node label is used when nil.
	Label func(node *Node[T]) string
	// Less orders siblings; siblings are ordered by label when nil.
	Less func(left *Node[T], right *Node[T]) bool
}

type pendingNode[T any] struct {
	node   *Node[T]
	branch gotree.Tree
	level  int
}

// Render draws the subtree below rootKey. Each node is drawn once even when
// reachable through several edges.
func (graph *Graph[T]) Render(rootKey string, options RenderOptions[T]) (string, error) {
	root, found := graph.nodes[rootKey]
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, rootKey)
	}
	label := options.Label
	if label == nil {
		label = func(node *Node[T]) string { return node.Label }
	}
	less := options.Less
	if less == nil {
		less = func(left *Node[T], right *Node[T]) bool { return left.Label < right.Label }
	}

	tree := gotree.New(label(root))
	visited := map[string]struct{}{root.Key: {}}
	stack := []pendingNode[T]{{node: root, branch: tree, level: 0}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if graph.hasMaxLevel && current.level >= graph.maxDisplayLevel {
			continue
		}
		children := append([]*Node[T](nil), current.node.children...)
		sort.SliceStable(children, func(left, right int) bool {
			return less(children[left], children[right])
		})
		for _, child := range children {
			if _, seen := visited[child.Key]; seen {
				continue
			}
			visited[child.Key] = struct{}{}
			branch := current.branch.Add(label(child))
			stack = append(stack, pendingNode[T]{node: child, branch: branch, level: current.level + 1})
		}
	}
	return strings.TrimRight(tree.Print(), "\n"), nil
}
