// Package service holds read-only domain services over layout trees.
package service

import (
	"github.com/bnema/dockpop/internal/domain/entity"
)

// NodeResult is the outcome of a tree search. Nearest is the item where the
// search gave up (the parent of the last exhausted subtree), useful when
// logging a miss; it is never a match.
type NodeResult struct {
	Node    entity.NodeRef
	Found   bool
	Nearest entity.NodeRef
}

// ElementResult is the outcome of an element identity search.
type ElementResult struct {
	Element *entity.Element
	Found   bool
	Nearest *entity.Element
}

// FindByField searches pre-order from start for the first item whose config
// field equals value. Unknown field names never match.
func FindByField(tree *entity.LayoutTree, start entity.NodeRef, field, value string) NodeResult {
	n := tree.Node(start)
	if n == nil {
		return NodeResult{Node: entity.NoRef, Nearest: entity.NoRef}
	}
	if v, ok := n.Config.Field(field); ok && v == value {
		return NodeResult{Node: start, Found: true, Nearest: start}
	}
	for _, child := range n.Children {
		if res := FindByField(tree, child, field, value); res.Found {
			return res
		}
	}
	nearest := n.Parent
	if nearest == entity.NoRef {
		nearest = start
	}
	return NodeResult{Node: entity.NoRef, Nearest: nearest}
}

// FindByID is FindByField on the id field.
func FindByID(tree *entity.LayoutTree, start entity.NodeRef, id string) NodeResult {
	return FindByField(tree, start, "id", id)
}

// FindParentOf returns the parent of the first item, pre-order from start,
// carrying the given id.
func FindParentOf(tree *entity.LayoutTree, start entity.NodeRef, childID string) NodeResult {
	res := FindByID(tree, start, childID)
	if !res.Found {
		return res
	}
	parent := tree.Node(res.Node).Parent
	if parent == entity.NoRef {
		return NodeResult{Node: entity.NoRef, Nearest: res.Node}
	}
	return NodeResult{Node: parent, Found: true, Nearest: parent}
}

// FindElementBoundary searches the element hierarchy below root for target
// by identity. On a miss Nearest is root, the boundary of the searched
// subtree.
func FindElementBoundary(root, target *entity.Element) ElementResult {
	if root == nil || target == nil {
		return ElementResult{Nearest: root}
	}
	if root == target {
		return ElementResult{Element: root, Found: true, Nearest: root}
	}
	for _, child := range root.Children() {
		if res := FindElementBoundary(child, target); res.Found {
			return res
		}
	}
	return ElementResult{Nearest: root}
}
