package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	scrollStep    = 20.0
	margin        = 10.0
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update(p Pointer)
	Draw(screen *ebiten.Image)
	GetHeight() float64
	setY(y float64)
}

// SliderWrapper adds the panel layout to a Slider.
type SliderWrapper struct {
	*Slider
}

// GetHeight is the bar plus the label line above it.
func (s *SliderWrapper) GetHeight() float64 { return s.H + 25 }

func (s *SliderWrapper) setY(y float64) { s.Y = y + 15 }

func (s *SliderWrapper) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %.5g", s.Label, s.Value), int(s.X), int(s.Y-15))
	s.Slider.Draw(screen)
}

type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 { return c.Size + 9 }

func (c *CheckboxWrapper) setY(y float64) { c.Y = y }

func (c *CheckboxWrapper) Draw(screen *ebiten.Image) {
	c.Checkbox.Draw(screen)
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+8), int(c.Y))
}

type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 { return b.Height + 10 }

func (b *ButtonWrapper) setY(y float64) { b.Y = y }

// UIPanel manages a collection of UI widgets in a scrollable panel
type UIPanel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	Visible       bool
	Widgets       []UIWidget
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
	rowY     []float64 // top of each widget row after the last layout
}

// PanelSection groups the widgets [StartIndex, EndIndex) under a header.
type PanelSection struct {
	Title      string
	StartIndex int
	EndIndex   int
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		Visible:     true,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section, widgets added next belong to it.
func (p *UIPanel) AddSection(title string) {
	p.EndSection()
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   -1,
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if n := len(p.sections); n > 0 && p.sections[n-1].EndIndex < 0 {
		p.sections[n-1].EndIndex = len(p.Widgets)
	}
}

func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, 0, p.Width-2*margin, label, min, max, value)
	p.add(&SliderWrapper{s})
	return s
}

func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, 0, label, value)
	p.add(&CheckboxWrapper{c})
	return c
}

func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, 0, p.Width-2*margin, 24, label, onClick)
	p.add(&ButtonWrapper{b})
	return b
}

func (p *UIPanel) add(w UIWidget) {
	p.Widgets = append(p.Widgets, w)
	p.layout()
}

// Contains reports whether the point is over the visible panel.
func (p *UIPanel) Contains(x, y float64) bool {
	return p.Visible && x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// layout places every widget below its section header, shifted by the scroll offset.
func (p *UIPanel) layout() {
	p.rowY = p.rowY[:0]
	y := p.Y + titleHeight - p.ScrollOffset
	next := 0
	place := func(end int) {
		for ; next < end; next++ {
			p.rowY = append(p.rowY, y)
			p.Widgets[next].setY(y)
			y += p.Widgets[next].GetHeight()
		}
	}
	for _, s := range p.sections {
		place(s.StartIndex)
		y += sectionHeight
	}
	place(len(p.Widgets))
}

// visible reports whether a row starting at y lies between the title bar and the bottom edge.
func (p *UIPanel) visible(y float64) bool {
	return y >= p.Y+titleHeight-5 && y <= p.Y+p.Height-20
}

// TotalHeight is the height of the panel content, title included.
func (p *UIPanel) TotalHeight() float64 {
	height := titleHeight + float64(len(p.sections))*sectionHeight
	for _, w := range p.Widgets {
		height += w.GetHeight()
	}
	return height
}

// Update scrolls the panel and forwards the pointer to the widgets that are drawn.
// Rows scrolled out of view do not receive input.
func (p *UIPanel) Update(ptr Pointer) {
	if !p.Visible {
		return
	}
	if ptr.WheelDY != 0 && p.Contains(ptr.X, ptr.Y) {
		p.ScrollOffset -= ptr.WheelDY * scrollStep
		maxScroll := max(p.TotalHeight()-p.Height+40, 0)
		p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
	}
	p.layout()
	for i, w := range p.Widgets {
		if p.visible(p.rowY[i]) {
			w.Update(ptr)
		}
	}
}

func (p *UIPanel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	p.layout()
	y := p.Y + titleHeight - p.ScrollOffset
	next := 0
	drawUpTo := func(end int) {
		for ; next < end; next++ {
			if p.visible(y) {
				p.Widgets[next].Draw(screen)
			}
			y += p.Widgets[next].GetHeight()
		}
	}
	for _, s := range p.sections {
		drawUpTo(s.StartIndex)
		if p.visible(y) {
			vector.FillRect(screen,
				float32(p.X+5), float32(y),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, s.Title, int(p.X+margin), int(y+3))
		}
		y += sectionHeight
	}
	drawUpTo(len(p.Widgets))
}
