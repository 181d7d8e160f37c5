package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockpop/internal/cli/styles"
	"github.com/bnema/dockpop/internal/infrastructure/transfer"
)

func TestRunInspect(t *testing.T) {
	cfg, err := transfer.DecodeLayout(sampleLayout)
	require.NoError(t, err)

	tests := []struct {
		name string
		find string
		want []string
	}{
		{name: "tree only", want: []string{"row#workspace", "stack#editors", "component#outline", "9 items, 0 open popouts"}},
		{name: "by id", find: "logs", want: []string{"component#logs is child 1 of row#panels"}},
		{name: "by field", find: "type=column", want: []string{"column#side is child 1 of row#workspace"}},
		{name: "top level", find: "workspace", want: []string{"row#workspace is child 0 of root"}},
		{name: "miss", find: "nope", want: []string{`no item with id="nope"`, "search ended at root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runInspect(styles.NewTheme(), cfg, tt.find, &out))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}
