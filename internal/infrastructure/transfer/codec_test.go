package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLayout(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "valid",
			raw:  `{"settings":{"closePopoutsOnUnload":true},"content":[{"type":"row","content":[{"type":"component","id":"a"},{"type":"stack","content":[{"type":"component","id":"b"}]}]}]}`,
		},
		{name: "empty", raw: `{}`},
		{name: "not json", raw: `{`, wantErr: "decode layout"},
		{name: "unknown type", raw: `{"content":[{"type":"grid"}]}`, wantErr: `unknown item type "grid"`},
		{name: "root in content", raw: `{"content":[{"type":"root"}]}`, wantErr: "unknown item type"},
		{
			name:    "component with content",
			raw:     `{"content":[{"type":"row","content":[{"type":"component","id":"a","content":[{"type":"component"}]}]}]}`,
			wantErr: `content[0].content[0]: component "a" cannot have content`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLayout([]byte(tt.raw))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEncodeDecodeLayout_KeepsSettingsAndPopouts(t *testing.T) {
	cfg := entity.LayoutConfig{
		Settings: entity.LayoutSettings{BlockedPopoutsThrowError: true},
		Content:  []entity.ItemConfig{{Type: entity.ItemTypeComponent, ID: "a"}},
		OpenPopouts: []entity.PopoutConfig{{
			Dimensions:    entity.Dimensions{Width: 100, Height: 80, Left: 5, Top: 6},
			Content:       []entity.ItemConfig{{Type: entity.ItemTypeComponent, ID: "b"}},
			ParentID:      "p",
			IndexInParent: 2,
		}},
	}

	data, err := EncodeLayout(cfg)
	require.NoError(t, err)
	got, err := DecodeLayout(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestReadLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"content":[{"type":"component","id":"solo"}]}`), 0o600))

	cfg, err := ReadLayoutFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Content, 1)
	assert.Equal(t, "solo", cfg.Content[0].ID)

	_, err = ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read layout")
}
