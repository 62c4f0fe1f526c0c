package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	pausePanelColor  = color.NRGBA{A: 200}
	pauseButtonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	pauseHoverColor  = color.NRGBA{R: 0x55, G: 0x44, B: 0x66, A: 255}
	pauseTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// NewPauseUI builds the centered pause menu. Restart is deferred to the next
// Update so the round is never rebuilt from inside a widget callback.
func NewPauseUI(g *Game) *ebitenui.UI {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(pausePanelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Paused", &face, pauseTextColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))
	panel.AddChild(pauseButton(&face, "Resume", func() { g.paused = false }))
	panel.AddChild(pauseButton(&face, "Restart", func() {
		g.paused = false
		g.restart = true
	}))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func pauseButton(face *ebtext.Face, label string, onClick func()) *widget.Button {
	idle := imageui.NewNineSliceColor(pauseButtonColor)
	hover := imageui.NewNineSliceColor(pauseHoverColor)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: hover, Pressed: hover}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: pauseTextColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{
			Position: widget.RowLayoutPositionCenter,
			Stretch:  true,
		})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
	)
}
