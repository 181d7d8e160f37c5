package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// ConfigValue is one key shown by RenderValues.
type ConfigValue struct {
	Key   string
	Value string
}

// RenderConfigInfo renders the config file path.
func (r *ConfigRenderer) RenderConfigInfo(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path))
}

// RenderValues renders effective settings as aligned key/value lines.
func (r *ConfigRenderer) RenderValues(values []ConfigValue) string {
	width := 0
	for _, v := range values {
		width = max(width, len(v.Key))
	}

	keyStyle := r.theme.Highlight.Width(width)
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(fmt.Sprintf("    %s  %s\n", keyStyle.Render(v.Key), r.theme.Normal.Render(v.Value)))
	}
	return sb.String()
}

// RenderCreated renders the message shown after writing a default file.
func (r *ConfigRenderer) RenderCreated(path string) string {
	return fmt.Sprintf("\n  %s Wrote default config to %s\n",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}

// RenderSchemaWritten renders the message shown after writing the schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	return fmt.Sprintf("\n  %s Wrote config schema to %s\n",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}

// RenderExists renders the message shown when init finds an existing file.
func (r *ConfigRenderer) RenderExists(path string) string {
	return fmt.Sprintf("\n  %s Config already exists at %s (use --force to overwrite)\n",
		r.theme.WarningStyle.Render(IconWarning),
		r.theme.Subtle.Render(path),
	)
}

// RenderPruned renders the result of a handoff payload prune.
func (r *ConfigRenderer) RenderPruned(removed int64, backend string) string {
	return fmt.Sprintf("\n  %s Removed %s stale handoff payloads (%s)\n",
		r.theme.SuccessStyle.Render(IconTrash),
		r.theme.Highlight.Render(fmt.Sprintf("%d", removed)),
		r.theme.Subtle.Render(backend),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("\n  %s %s\n", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
