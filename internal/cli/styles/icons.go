package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconInfo     = "\uf05a" // info
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconTrash    = "\uf1f8" // trash
	IconCursor   = "\uf054" // chevron-right

	// Layout
	IconWindow  = "\uf2d2" // window
	IconStack   = "\uf24d" // clone/stack
	IconPane    = "\uf0db" // columns
	IconTree    = "\uf1bb" // tree
	IconCache   = "\uf49e" // cache
	IconPopOut  = "\uf065" // expand
	IconPopIn   = "\uf066" // compress
	IconBlocked = "\uf05e" // ban
)
