package transfer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bnema/dockpop/internal/domain/entity"
)

// EncodeLayout serialises a layout config as JSON.
func EncodeLayout(cfg entity.LayoutConfig) ([]byte, error) {
	return json.Marshal(cfg)
}

// DecodeLayout parses a JSON layout config. The decoded tree must be valid.
func DecodeLayout(data []byte) (entity.LayoutConfig, error) {
	var cfg entity.LayoutConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return entity.LayoutConfig{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := validateItems(cfg.Content, "content"); err != nil {
		return entity.LayoutConfig{}, fmt.Errorf("invalid layout: %w", err)
	}
	if err := entity.Load(cfg).Validate(); err != nil {
		return entity.LayoutConfig{}, fmt.Errorf("invalid layout: %w", err)
	}
	return cfg, nil
}

// ReadLayoutFile decodes a layout config from a JSON file.
func ReadLayoutFile(path string) (entity.LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.LayoutConfig{}, fmt.Errorf("read layout: %w", err)
	}
	return DecodeLayout(data)
}

func validateItems(items []entity.ItemConfig, path string) error {
	for i, item := range items {
		at := fmt.Sprintf("%s[%d]", path, i)
		switch item.Type {
		case entity.ItemTypeRow, entity.ItemTypeColumn, entity.ItemTypeStack:
		case entity.ItemTypeComponent:
			if len(item.Content) > 0 {
				return fmt.Errorf("%s: component %q cannot have content", at, item.ID)
			}
		default:
			return fmt.Errorf("%s: unknown item type %q", at, item.Type)
		}
		if err := validateItems(item.Content, at+".content"); err != nil {
			return err
		}
	}
	return nil
}
