package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/dockpop/internal/cache"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/service"
	"github.com/bnema/dockpop/internal/logging"
)

// ReattachPath tells which branch of the pop-in resolution was taken.
type ReattachPath string

const (
	ReattachDirect    ReattachPath = "direct"    // original parent still live
	ReattachCache     ReattachPath = "cache"     // parent restored from the detached cache
	ReattachRoot      ReattachPath = "root"      // fell back to the top-level container
	ReattachDiscarded ReattachPath = "discarded" // nothing to reattach
)

// ReattachPaneUseCase merges popped-out content back into the live tree.
type ReattachPaneUseCase struct{}

// NewReattachPaneUseCase creates a new reattach use case.
func NewReattachPaneUseCase() *ReattachPaneUseCase {
	return &ReattachPaneUseCase{}
}

// ReattachPaneInput contains parameters for a pop-in.
type ReattachPaneInput struct {
	Tree          *entity.LayoutTree
	Cache         *cache.DetachedNodeCache
	ParentID      string
	IndexInParent int
	// Content is the child layout's current content. Only the first item is
	// reattached. It is deep-copied before use.
	Content []entity.ItemConfig
}

// ReattachPaneOutput describes where the content landed.
type ReattachPaneOutput struct {
	Target   entity.NodeRef
	Inserted entity.NodeRef
	Index    int
	Path     ReattachPath
}

// Execute resolves the reattachment target and inserts the content there.
// Misses degrade to the top-level container; they are never errors.
func (uc *ReattachPaneUseCase) Execute(ctx context.Context, input ReattachPaneInput) (*ReattachPaneOutput, error) {
	log := logging.FromContext(ctx)

	if input.Tree == nil {
		return nil, fmt.Errorf("tree is required")
	}
	if input.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}

	discarded := &ReattachPaneOutput{Target: entity.NoRef, Inserted: entity.NoRef, Index: -1, Path: ReattachDiscarded}
	if input.ParentID == "" || len(input.Content) == 0 {
		log.Debug().
			Str("parent_id", input.ParentID).
			Int("content_len", len(input.Content)).
			Msg("nothing to reattach, content discarded")
		return discarded, nil
	}

	content := entity.CloneItems(input.Content)
	tree := input.Tree

	target, path := uc.resolveTarget(ctx, tree, input.Cache, input.ParentID)

	inserted, err := tree.AddChild(target, content[0], input.IndexInParent)
	if err != nil {
		return nil, fmt.Errorf("reattach under %q: %w", tree.Node(target).ID(), err)
	}
	index := tree.Node(target).IndexOf(inserted)

	log.Info().
		Str("item_id", content[0].ID).
		Str("parent_id", input.ParentID).
		Str("target_id", tree.Node(target).ID()).
		Str("path", string(path)).
		Int("index", index).
		Msg("content item reattached")

	return &ReattachPaneOutput{
		Target:   target,
		Inserted: inserted,
		Index:    index,
		Path:     path,
	}, nil
}

func (uc *ReattachPaneUseCase) resolveTarget(
	ctx context.Context,
	tree *entity.LayoutTree,
	detached *cache.DetachedNodeCache,
	parentID string,
) (entity.NodeRef, ReattachPath) {
	log := logging.FromContext(ctx)

	if res := service.FindByID(tree, tree.Root(), parentID); res.Found {
		n := tree.Node(res.Node)
		if n.IsContainer() && !n.IsRoot() {
			return res.Node, ReattachDirect
		}
		log.Debug().Str("parent_id", parentID).Str("type", string(n.Type())).Msg("parent cannot host content")
		return tree.EnsureTopLevelContainer(), ReattachRoot
	}

	idx, entry, ok := detached.FindLatest(func(e cache.DetachedEntry) bool {
		return e.NodeID == parentID
	})
	if !ok {
		log.Debug().Str("parent_id", parentID).Msg("parent not found, attaching at top level")
		return tree.EnsureTopLevelContainer(), ReattachRoot
	}

	if !uc.restoreCached(ctx, tree, entry) {
		log.Debug().
			Str("parent_id", parentID).
			Str("child_id", entry.ChildID).
			Msg("cached parent has no live anchor, attaching at top level")
		return tree.EnsureTopLevelContainer(), ReattachRoot
	}

	if err := detached.RemoveAt(idx); err != nil {
		log.Warn().Err(err).Int("index", idx).Msg("failed to drop consumed cache entry")
	}
	return entry.Node, ReattachCache
}

// restoreCached splices the cached container C back in place of the live
// child it collapsed into, and moves that child under C. Returns false when
// the child is no longer reachable.
func (uc *ReattachPaneUseCase) restoreCached(ctx context.Context, tree *entity.LayoutTree, entry cache.DetachedEntry) bool {
	log := logging.FromContext(ctx)

	c := tree.Node(entry.Node)
	if c == nil || tree.IsLive(entry.Node) {
		return false
	}
	anchor := service.FindParentOf(tree, tree.Root(), entry.ChildID)
	if !anchor.Found {
		return false
	}
	m := tree.Node(anchor.Node)

	var moved []entity.NodeRef
	for _, ref := range m.Children {
		if tree.Node(ref).ID() == entry.ChildID {
			moved = append(moved, ref)
		}
	}
	first := moved[0]
	firstElem := tree.Node(first).Element

	if _, err := tree.ReplaceChild(m.Ref, first, c.Ref); err != nil {
		log.Warn().Err(err).Msg("failed to put cached container back")
		return false
	}

	boundary := service.FindElementBoundary(tree.Node(tree.Root()).Element, entry.Element)
	switch {
	case boundary.Found && boundary.Element.Parent() == m.Element:
		m.Element.ReplaceChild(c.Element, boundary.Element)
	default:
		m.Element.ReplaceChild(c.Element, firstElem)
	}
	if c.Element.Parent() != m.Element {
		m.Element.InsertChild(m.IndexOf(c.Ref), c.Element)
	}

	for _, ref := range moved {
		tree.InsertChild(c.Ref, ref, -1)
	}

	log.Debug().
		Str("item_id", c.ID()).
		Str("child_id", entry.ChildID).
		Str("anchor_id", m.ID()).
		Bool("boundary_found", boundary.Found).
		Msg("restored cached container")
	return true
}
