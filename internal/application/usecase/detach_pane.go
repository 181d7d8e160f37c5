package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dockpop/internal/cache"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/logging"
)

// DetachPaneUseCase removes a content item from the live tree so it can be
// handed to a popout window.
type DetachPaneUseCase struct {
	idGenerator IDGenerator
}

// NewDetachPaneUseCase creates a new detach use case.
func NewDetachPaneUseCase(idGenerator IDGenerator) *DetachPaneUseCase {
	if idGenerator == nil {
		idGenerator = UUIDGenerator()
	}
	return &DetachPaneUseCase{idGenerator: idGenerator}
}

// DetachPaneInput contains parameters for detaching an item.
type DetachPaneInput struct {
	Tree  *entity.LayoutTree
	Cache *cache.DetachedNodeCache
	Node  entity.NodeRef
}

// DetachPaneOutput describes where the item used to live.
type DetachPaneOutput struct {
	Config        entity.ItemConfig
	ParentID      string
	IndexInParent int
	// Cached is true when the parent collapsed and went into the cache.
	Cached bool
}

// Execute detaches input.Node, destroys its live subtree and compacts the
// containers left behind.
func (uc *DetachPaneUseCase) Execute(ctx context.Context, input DetachPaneInput) (*DetachPaneOutput, error) {
	log := logging.FromContext(ctx)

	if input.Tree == nil {
		return nil, fmt.Errorf("tree is required")
	}
	if input.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	tree := input.Tree
	if input.Node == tree.Root() {
		return nil, entity.ErrCannotDetachRoot
	}
	if !tree.IsLive(input.Node) {
		return nil, fmt.Errorf("detach %d: %w", input.Node, entity.ErrNodeNotFound)
	}

	node := tree.Node(input.Node)
	parent := tree.Node(node.Parent)

	// Pop-in locates the parent by id, so it needs one.
	if parent.Config.ID == "" {
		parent.Config.ID = uc.idGenerator()
	}

	cfg := tree.ItemConfig(input.Node)
	index, err := tree.RemoveChild(parent.Ref, input.Node)
	if err != nil {
		return nil, fmt.Errorf("detach %q: %w", node.ID(), err)
	}
	tree.Destroy(input.Node)

	out := &DetachPaneOutput{
		Config:        cfg,
		ParentID:      parent.ID(),
		IndexInParent: index,
	}
	out.Cached = uc.compact(ctx, tree, input.Cache, parent.Ref)

	log.Debug().
		Str("item_id", cfg.ID).
		Str("parent_id", out.ParentID).
		Int("index", index).
		Bool("cached", out.Cached).
		Msg("content item detached")

	return out, nil
}

// compact removes emptied containers and collapses rows/columns left with a
// single child. A collapsed container is cached so pop-in can restore it.
// Top-level items and stacks never collapse.
func (uc *DetachPaneUseCase) compact(
	ctx context.Context,
	tree *entity.LayoutTree,
	detached *cache.DetachedNodeCache,
	ref entity.NodeRef,
) bool {
	log := logging.FromContext(ctx)

	n := tree.Node(ref)
	if n == nil || n.IsRoot() || n.Parent == tree.Root() {
		return false
	}
	grandparent := n.Parent

	switch {
	case len(n.Children) == 0:
		if _, err := tree.RemoveChild(grandparent, ref); err != nil {
			log.Warn().Err(err).Str("item_id", n.ID()).Msg("failed to remove empty container")
			return false
		}
		tree.Destroy(ref)
		log.Debug().Str("item_id", n.ID()).Msg("removed empty container")
		return uc.compact(ctx, tree, detached, grandparent)

	case len(n.Children) == 1 && !n.IsStack():
		survivor := tree.Node(n.Children[0])
		if survivor.Config.ID == "" {
			survivor.Config.ID = uc.idGenerator()
		}
		if _, err := tree.ReplaceChild(grandparent, ref, survivor.Ref); err != nil {
			log.Warn().Err(err).Str("item_id", n.ID()).Msg("failed to collapse container")
			return false
		}
		n.Children = nil
		gp := tree.Node(grandparent)
		gp.Element.ReplaceChild(survivor.Element, n.Element)

		detached.Add(cache.DetachedEntry{
			Node:    ref,
			NodeID:  n.ID(),
			ChildID: survivor.ID(),
			Element: survivor.Element,
		})
		log.Debug().
			Str("item_id", n.ID()).
			Str("child_id", survivor.ID()).
			Msg("collapsed single-child container into cache")
		return true
	}
	return false
}
