package window

import (
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/vantage3d/vantage/common"
)

// Window abstracts the operating-system window that hosts a viewport. It
// pumps platform events into the callbacks registered on it and exposes the
// surface descriptor the renderer needs to present into the window.
type Window interface {
	// SetUpdateCallback registers the function invoked once per message-pump
	// iteration, after pending platform events have been dispatched.
	//
	// Parameters:
	//   - cb: the update function
	SetUpdateCallback(cb func())

	// SetMouseCallback registers the function that receives pointer events.
	// Button transitions, movement, drags and wheel scrolling are all
	// delivered through this single callback.
	//
	// Parameters:
	//   - cb: the mouse event handler
	SetMouseCallback(cb func(e common.MouseEvent))

	// SetKeyCallback registers the function that receives keyboard events.
	//
	// Parameters:
	//   - cb: the key event handler
	SetKeyCallback(cb func(e common.KeyEvent))

	// SetResizeCallback registers the function invoked when the framebuffer
	// size changes. Dimensions are in pixels.
	//
	// Parameters:
	//   - cb: the resize handler
	SetResizeCallback(cb func(width int, height int))

	// SurfaceDescriptor returns the platform surface descriptor used to
	// create a wgpu.Surface for this window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil if the
	//     window has not been initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: true while the window is open
	IsRunning() bool

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages runs the message pump until the window closes. It must
	// be called from the main goroutine.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int
}

var _ Window = &engineWindow{}

// engineWindow is the platform-independent window state. The platform layer
// (window_glfw.go) owns the native handle and feeds events into the
// callbacks stored here.
type engineWindow struct {
	mu *sync.Mutex

	title  string
	width  int
	height int

	// trackpadScroll marks scroll events as two-finger trackpad gestures
	// instead of discrete wheel ticks. GLFW cannot distinguish the two, so
	// the host declares the input device up front.
	trackpadScroll bool

	// buttonsDown is the bitmask of currently held mouse buttons, used to
	// classify cursor movement as a move or a drag.
	buttonsDown common.MouseButton

	// modifiers is the bitmask of currently held modifier keys. GLFW only
	// reports modifiers on button and key transitions, so the last observed
	// set is carried onto move and wheel events.
	modifiers int

	onUpdate func()
	onMouse  func(e common.MouseEvent)
	onKey    func(e common.KeyEvent)
	onResize func(width int, height int)

	internalWindow any
}

// NewWindow creates the host window and initializes the platform layer.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: optional WindowBuilderOption functions to configure the window
//
// Returns:
//   - Window: the initialized window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		mu:     &sync.Mutex{},
		title:  "Vantage Viewer",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}

	if err := newPlatformWindow(w); err != nil {
		panic(err)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(cb func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = cb
}

func (w *engineWindow) SetMouseCallback(cb func(e common.MouseEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onMouse = cb
}

func (w *engineWindow) SetKeyCallback(cb func(e common.KeyEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onKey = cb
}

func (w *engineWindow) SetResizeCallback(cb func(width int, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = cb
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for platformProcessMessages(w) {
		w.mu.Lock()
		update := w.onUpdate
		w.mu.Unlock()
		if update != nil {
			update()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// dispatchMouse forwards a pointer event to the registered handler.
func (w *engineWindow) dispatchMouse(e common.MouseEvent) {
	w.mu.Lock()
	cb := w.onMouse
	w.mu.Unlock()
	if cb != nil {
		cb(e)
	}
}

// dispatchKey forwards a keyboard event to the registered handler.
func (w *engineWindow) dispatchKey(e common.KeyEvent) {
	w.mu.Lock()
	cb := w.onKey
	w.mu.Unlock()
	if cb != nil {
		cb(e)
	}
}
