package port

//go:generate mockery --config ../../../.mockery.yaml

import "github.com/bnema/dockpop/internal/domain/entity"

// WindowHost defines the port interface for opening top-level windows.
// This abstracts the platform (browser window.open, a native window manager,
// the headless host used by the CLI).
type WindowHost interface {
	// Open requests a new top-level window. ok=false means the platform
	// blocked it.
	Open(url, title, options string) (window PopoutWindow, ok bool)
}

// PopoutWindow is a platform window this process holds a reference to but
// does not own: the user can close it at any time.
type PopoutWindow interface {
	// Position as reported by the platform. Some platforms only fill one of
	// each pair.
	ScreenX() int
	ScreenLeft() int
	ScreenY() int
	ScreenTop() int

	// Fire-and-forget requests.
	MoveTo(x, y int)
	Focus()
	Close() error

	// Signals. Callbacks run on the main loop.
	OnLoad(fn func())
	OnUnload(fn func())

	// LayoutInstance returns the layout instance running inside the window
	// once it exists. It is the readiness marker polled by the parent.
	LayoutInstance() (ChildLayout, bool)
}

// ChildLayout is the layout instance living inside a popout window.
type ChildLayout interface {
	// IsInitialised reports whether the instance finished constructing.
	IsInitialised() bool

	Width() int
	Height() int

	// ToConfig returns the instance's current configuration.
	ToConfig() entity.LayoutConfig

	// CloseWindow closes the window through the instance so it can tear
	// itself down.
	CloseWindow()

	// OnPopIn subscribes to the instance's pop-in request.
	OnPopIn(fn func())
}
