package component

// Pointer stores this frame's mouse state in window pixels, origin top-left.
type Pointer struct {
	JustPressed bool
	CursorX     float64
	CursorY     float64
	ViewportW   float64
	ViewportH   float64
}

var PointerComponent = NewComponent[Pointer]()
