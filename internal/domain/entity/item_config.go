package entity

import (
	"github.com/jinzhu/copier"
)

// ItemType identifies the kind of content item in a layout.
type ItemType string

const (
	ItemTypeRoot      ItemType = "root"
	ItemTypeRow       ItemType = "row"
	ItemTypeColumn    ItemType = "column"
	ItemTypeStack     ItemType = "stack"
	ItemTypeComponent ItemType = "component"
)

// IsContainer reports whether items of this type can hold children.
func (t ItemType) IsContainer() bool {
	switch t {
	case ItemTypeRoot, ItemTypeRow, ItemTypeColumn, ItemTypeStack:
		return true
	default:
		return false
	}
}

// ItemConfig is the plain, context-free description of a content item and
// its descendants. It is what crosses window boundaries.
type ItemConfig struct {
	Type            ItemType       `json:"type"`
	ID              string         `json:"id,omitempty"`
	Title           string         `json:"title,omitempty"`
	ComponentName   string         `json:"componentName,omitempty"`
	ComponentState  map[string]any `json:"componentState,omitempty"`
	IsClosable      bool           `json:"isClosable,omitempty"`
	ActiveItemIndex int            `json:"activeItemIndex,omitempty"`
	Content         []ItemConfig   `json:"content,omitempty"`
}

// Clone returns a deep copy that shares no maps or slices with c. Nil maps
// and slices stay nil.
func (c ItemConfig) Clone() ItemConfig {
	var out ItemConfig
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for
		// identical types; fall back to a manual copy of the known fields.
		out = c
		out.ComponentState = cloneState(c.ComponentState)
		out.Content = CloneItems(c.Content)
		return out
	}
	keepNils(&out, &c)
	return out
}

// keepNils undoes copier turning nil maps and slices into empty ones.
func keepNils(dst, src *ItemConfig) {
	if src.ComponentState == nil {
		dst.ComponentState = nil
	}
	if src.Content == nil {
		dst.Content = nil
		return
	}
	for i := range src.Content {
		keepNils(&dst.Content[i], &src.Content[i])
	}
}

// CloneItems deep-copies a slice of item configs.
func CloneItems(items []ItemConfig) []ItemConfig {
	if items == nil {
		return nil
	}
	out := make([]ItemConfig, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

func cloneState(state map[string]any) map[string]any {
	if state == nil {
		return nil
	}
	out := make(map[string]any, len(state))
	for k, v := range state {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneState(v)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = cloneValue(v[i])
		}
		return out
	default:
		return v
	}
}

// Field returns the value of a searchable field by name.
// Known fields: id, title, componentName, type.
func (c ItemConfig) Field(name string) (string, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "title":
		return c.Title, true
	case "componentName":
		return c.ComponentName, true
	case "type":
		return string(c.Type), true
	default:
		return "", false
	}
}

// Dimensions describes a window rectangle in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Left   int `json:"left"`
	Top    int `json:"top"`
}

// PopoutConfig is the serialisable state of one open popout window.
type PopoutConfig struct {
	Dimensions    Dimensions   `json:"dimensions"`
	Content       []ItemConfig `json:"content"`
	ParentID      string       `json:"parentId,omitempty"`
	IndexInParent int          `json:"indexInParent"`
}

// Clone returns a deep copy of the popout config.
func (p PopoutConfig) Clone() PopoutConfig {
	out := p
	out.Content = CloneItems(p.Content)
	return out
}

// LayoutSettings holds the layout-wide switches that travel with a config.
type LayoutSettings struct {
	BlockedPopoutsThrowError bool `json:"blockedPopoutsThrowError,omitempty"`
	ClosePopoutsOnUnload     bool `json:"closePopoutsOnUnload,omitempty"`
}

// LayoutConfig is the full configuration of a layout instance.
type LayoutConfig struct {
	Settings    LayoutSettings `json:"settings"`
	Content     []ItemConfig   `json:"content"`
	OpenPopouts []PopoutConfig `json:"openPopouts,omitempty"`
}

// Clone returns a deep copy of the layout config.
func (l LayoutConfig) Clone() LayoutConfig {
	out := l
	out.Content = CloneItems(l.Content)
	if l.OpenPopouts != nil {
		out.OpenPopouts = make([]PopoutConfig, len(l.OpenPopouts))
		for i := range l.OpenPopouts {
			out.OpenPopouts[i] = l.OpenPopouts[i].Clone()
		}
	}
	return out
}
