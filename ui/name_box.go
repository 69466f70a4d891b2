package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	nameBoxFill   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x1a}
	nameBoxStroke = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x4d}
)

// NameBox shows a slot's file name on a rounded grey background
type NameBox struct {
	widget.BaseWidget
	text        string
	placeholder bool
	textObj     *canvas.Text
	bgRect      *canvas.Rectangle
	container   *fyne.Container
}

// NewNameBox creates a name box showing text
func NewNameBox(text string) *NameBox {
	nb := &NameBox{text: text}
	nb.ExtendBaseWidget(nb)
	return nb
}

// CreateRenderer implements fyne.Widget
func (nb *NameBox) CreateRenderer() fyne.WidgetRenderer {
	nb.textObj = canvas.NewText(nb.text, nb.textColor())
	nb.textObj.TextSize = theme.CaptionTextSize() + 1
	nb.textObj.Alignment = fyne.TextAlignLeading

	nb.bgRect = canvas.NewRectangle(nameBoxFill)
	nb.bgRect.StrokeColor = nameBoxStroke
	nb.bgRect.StrokeWidth = 1
	nb.bgRect.CornerRadius = 8

	nb.container = container.NewStack(nb.bgRect, container.NewPadded(nb.textObj))

	return &nameBoxRenderer{
		box:       nb,
		container: nb.container,
		textObj:   nb.textObj,
	}
}

// SetText updates the shown name; placeholder text is drawn dimmed
func (nb *NameBox) SetText(text string, placeholder bool) {
	nb.text = text
	nb.placeholder = placeholder
	nb.Refresh()
}

// Text returns the shown name
func (nb *NameBox) Text() string {
	return nb.text
}

func (nb *NameBox) textColor() color.Color {
	if nb.placeholder {
		return theme.PlaceHolderColor()
	}
	return theme.ForegroundColor()
}

type nameBoxRenderer struct {
	box       *NameBox
	container *fyne.Container
	textObj   *canvas.Text
}

func (r *nameBoxRenderer) MinSize() fyne.Size {
	size := r.container.MinSize()
	return fyne.NewSize(size.Width, fyne.Max(size.Height, 40))
}

func (r *nameBoxRenderer) Layout(size fyne.Size) {
	r.container.Resize(size)
}

func (r *nameBoxRenderer) Refresh() {
	r.textObj.Text = r.box.text
	r.textObj.Color = r.box.textColor()
	r.textObj.Refresh()
}

func (r *nameBoxRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.container}
}

func (r *nameBoxRenderer) Destroy() {}
