package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpop/internal/cli/styles"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/service"
	"github.com/bnema/dockpop/internal/infrastructure/transfer"
)

var inspectFind string

var inspectCmd = &cobra.Command{
	Use:   "inspect <layout.json>",
	Short: "Print the tree of a layout file",
	Long: `Decodes a layout config, prints its item tree and the popouts it records.

--find searches the tree pre-order. Pass an id, or field=value to match on
another config field (type, title, componentName).

Examples:
  dockpop inspect layout.json
  dockpop inspect layout.json --find logs
  dockpop inspect layout.json --find type=stack`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("app not initialized")
		}
		cfg, err := transfer.ReadLayoutFile(args[0])
		if err != nil {
			return err
		}
		return runInspect(a.Theme, cfg, inspectFind, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFind, "find", "f", "", "id or field=value to search for")
}

func runInspect(theme *styles.Theme, cfg entity.LayoutConfig, find string, w io.Writer) error {
	r := styles.NewLayoutRenderer(theme)
	tree := entity.Load(cfg)

	fmt.Fprint(w, r.RenderTree(tree))
	fmt.Fprintln(w, r.RenderNote(fmt.Sprintf("%d items, %d open popouts", tree.Len()-1, len(cfg.OpenPopouts))))

	for i, p := range cfg.OpenPopouts {
		ids := make([]string, 0, len(p.Content))
		for _, item := range p.Content {
			ids = append(ids, item.ID)
		}
		fmt.Fprintf(w, "  %s popout %d: %s under %q at %d (%dx%d+%d+%d)\n",
			theme.Subtle.Render(styles.IconWindow), i, strings.Join(ids, ","), p.ParentID, p.IndexInParent,
			p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Left, p.Dimensions.Top)
	}

	if find == "" {
		return nil
	}
	field, value := "id", find
	if k, v, ok := strings.Cut(find, "="); ok {
		field, value = k, v
	}

	res := service.FindByField(tree, tree.Root(), field, value)
	if !res.Found {
		near := tree.Node(res.Nearest)
		where := "root"
		if near != nil && !near.IsRoot() {
			where = describeItem(near)
		}
		fmt.Fprintf(w, "  %s no item with %s=%q (search ended at %s)\n",
			theme.WarningStyle.Render(styles.IconWarning), field, value, where)
		return nil
	}

	n := tree.Node(res.Node)
	parent := "root"
	if p := tree.Node(n.Parent); p != nil && !p.IsRoot() {
		parent = describeItem(p)
	}
	idx := tree.Node(n.Parent).IndexOf(res.Node)
	fmt.Fprintf(w, "  %s %s is child %d of %s\n",
		theme.SuccessStyle.Render(styles.IconCheck), describeItem(n), idx, parent)
	return nil
}

func describeItem(n *entity.ContentItem) string {
	if n.ID() == "" {
		return string(n.Type())
	}
	return string(n.Type()) + "#" + n.ID()
}
