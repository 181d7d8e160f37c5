package popout

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/bnema/dockpop/internal/domain/entity"
)

// windowOptions serialises the open() feature string for dims. Order is
// fixed so hosts can parse it positionally.
func windowOptions(dims entity.Dimensions) string {
	width := strconv.Itoa(dims.Width)
	height := strconv.Itoa(dims.Height)
	pairs := [][2]string{
		{"width", width},
		{"height", height},
		{"innerWidth", width},
		{"innerHeight", height},
		{"menubar", "no"},
		{"toolbar", "no"},
		{"location", "no"},
		{"personalbar", "no"},
		{"resizable", "yes"},
		{"scrollbars", "no"},
		{"status", "no"},
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p[0] + "=" + p[1]
	}
	return strings.Join(parts, ",")
}

// randomTitle returns a throwaway base-36 window name so the platform never
// reuses an existing window.
func randomTitle() string {
	return strconv.FormatInt(rand.Int64N(1_000_000), 36)
}
