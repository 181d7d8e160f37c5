package usecase_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/dockpop/internal/application/usecase"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/service"
	"github.com/bnema/dockpop/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func seqIDs() usecase.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func component(id string) entity.ItemConfig {
	return entity.ItemConfig{
		Type:          entity.ItemTypeComponent,
		ID:            id,
		Title:         id,
		ComponentName: "panel",
	}
}

func stack(id string, items ...entity.ItemConfig) entity.ItemConfig {
	return entity.ItemConfig{Type: entity.ItemTypeStack, ID: id, Content: items}
}

func row(id string, items ...entity.ItemConfig) entity.ItemConfig {
	return entity.ItemConfig{Type: entity.ItemTypeRow, ID: id, Content: items}
}

func column(id string, items ...entity.ItemConfig) entity.ItemConfig {
	return entity.ItemConfig{Type: entity.ItemTypeColumn, ID: id, Content: items}
}

func layout(items ...entity.ItemConfig) *entity.LayoutTree {
	return entity.Load(entity.LayoutConfig{Content: items})
}

func ref(tree *entity.LayoutTree, id string) entity.NodeRef {
	res := service.FindByID(tree, tree.Root(), id)
	if !res.Found {
		panic("no item with id " + id)
	}
	return res.Node
}

// shape renders the live tree below the root, e.g. "stack#s[component#a]".
func shape(tree *entity.LayoutTree) string {
	var parts []string
	for _, child := range tree.Node(tree.Root()).Children {
		parts = append(parts, shapeOf(tree, child))
	}
	return strings.Join(parts, ",")
}

func shapeOf(tree *entity.LayoutTree, r entity.NodeRef) string {
	n := tree.Node(r)
	s := string(n.Type())
	if n.ID() != "" {
		s += "#" + n.ID()
	}
	if len(n.Children) == 0 {
		return s
	}
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		parts = append(parts, shapeOf(tree, c))
	}
	return s + "[" + strings.Join(parts, ",") + "]"
}

func elementShape(e *entity.Element) string {
	children := e.Children()
	if len(children) == 0 {
		return e.Name
	}
	parts := make([]string, 0, len(children))
	for _, c := range children {
		parts = append(parts, elementShape(c))
	}
	return e.Name + "[" + strings.Join(parts, ",") + "]"
}
