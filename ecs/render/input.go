package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/travel/ecs"
	"github.com/milk9111/travel/ecs/component"
)

// InputSystem polls the mouse and touch screen and fills every Pointer.
type InputSystem struct {
	viewport func() (int, int)
	touches  []ebiten.TouchID
}

// NewInputSystem reads the logical screen size from viewport each tick.
func NewInputSystem(viewport func() (int, int)) *InputSystem {
	return &InputSystem{viewport: viewport}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	cx, cy := ebiten.CursorPosition()

	i.touches = inpututil.AppendJustPressedTouchIDs(i.touches[:0])
	if len(i.touches) > 0 {
		pressed = true
		cx, cy = ebiten.TouchPosition(i.touches[0])
	}

	vw, vh := 0, 0
	if i.viewport != nil {
		vw, vh = i.viewport()
	}

	ecs.ForEach(w, component.PointerComponent.Kind(), func(e ecs.Entity, p *component.Pointer) {
		p.JustPressed = pressed
		p.CursorX = float64(cx)
		p.CursorY = float64(cy)
		p.ViewportW = float64(vw)
		p.ViewportH = float64(vh)
	})
}
