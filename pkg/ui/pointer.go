package ui

import "github.com/hajimehoshi/ebiten/v2"

// Pointer is the mouse state widgets react to during one frame.
type Pointer struct {
	X, Y    float64
	Pressed bool    // left button held
	WheelDY float64 // vertical scroll since the last frame
}

// ReadPointer samples the ebiten mouse state. Call it once per Update.
func ReadPointer() Pointer {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()
	return Pointer{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelDY: dy,
	}
}

// Over reports whether the pointer is inside the rectangle.
func (p Pointer) Over(x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}
