package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	bodyColor     = color.NRGBA(colornames.Cornflowerblue)
	enemyColor    = color.NRGBA(colornames.Peru)
	hurtBoxColor  = color.NRGBA{R: 60, G: 220, B: 90, A: 110}
	hitBoxColor   = color.NRGBA{R: 240, G: 40, B: 40, A: 150}
	defeatedColor = color.NRGBA(colornames.Dimgray)
	healthBack    = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	healthFront   = color.NRGBA(colornames.Crimson)
)

// RenderSystem draws fighters as debug rectangles.
type RenderSystem struct {
	camEntity ecs.Entity
	pixel     *ebiten.Image
	Debug     bool
}

func NewRenderSystem(debug bool) *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel, Debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraTagComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	var cam cp.Vector
	zoom := 1.0
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok {
		cam = camComp.Offset
		if camComp.Zoom > 0 {
			zoom = camComp.Zoom
		}
	}
	view := func(bb cp.BB) cp.BB {
		return cp.BB{
			L: (bb.L + cam.X) * zoom, R: (bb.R + cam.X) * zoom,
			B: (bb.B + cam.Y) * zoom, T: (bb.T + cam.Y) * zoom,
		}
	}

	entities := drawOrder(w)
	for _, e := range entities {
		f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
		if !ok || f.Character == nil {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		c := f.Character

		tint := bodyColor
		if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			tint = enemyColor
		}
		if ecs.Has(w, e, component.DefeatedTagComponent.Kind()) {
			tint = defeatedColor
		}
		if flash, ok := ecs.Get(w, e, component.ColorFlashComponent.Kind()); ok && flash.On {
			tint = flash.Color
		}

		for _, bb := range c.HurtBoxRects() {
			r.fill(screen, view(scaled(bb, t)), tint, t.Alpha)
		}
		if r.Debug {
			for _, bb := range c.HurtBoxRects() {
				r.fill(screen, view(bb), hurtBoxColor, 1)
			}
		}
		for _, hb := range c.ActiveHitBoxes() {
			r.fill(screen, view(hb.Rect), hitBoxColor, 1)
		}

		r.healthBar(screen, view(top(c.HurtBoxRects(), t)), c.Health()/c.MaxHealth())
		if r.Debug {
			label := c.Name
			if a := c.CurrentAction(); a != nil {
				label = fmt.Sprintf("%s %s x%d", c.Name, a.Name, c.Combo())
			}
			p := view(top(c.HurtBoxRects(), t))
			ebitenutil.DebugPrintAt(screen, label, int(p.L), int(p.B)-32)
		}
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ParticleComponent.Kind(), func(_ ecs.Entity, t *component.Transform, p *component.Particle) {
		half := p.Size / 2
		if half <= 0 {
			half = 2
		}
		bb := cp.BB{L: t.X - half, R: t.X + half, B: t.Y - half, T: t.Y + half}
		r.fill(screen, view(bb), p.Color, 1)
	})
}

// drawOrder sorts fighters by render layer. Fighters flashing in front are
// drawn last.
func drawOrder(w *ecs.World) []ecs.Entity {
	var entities []ecs.Entity
	ecs.ForEach(w, component.FighterComponent.Kind(), func(e ecs.Entity, _ *component.Fighter) {
		entities = append(entities, e)
	})
	layer := func(e ecs.Entity) int {
		li := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			li = l.Index
		}
		if flash, ok := ecs.Get(w, e, component.ColorFlashComponent.Kind()); ok && flash.On && flash.RenderInFront {
			li += 1000
		}
		return li
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

func (r *RenderSystem) fill(screen *ebiten.Image, bb cp.BB, c color.NRGBA, a float64) {
	width, height := bb.R-bb.L, bb.T-bb.B
	if width <= 0 || height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width, height)
	op.GeoM.Translate(bb.L, bb.B)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(a))
	screen.DrawImage(r.pixel, op)
}

func (r *RenderSystem) healthBar(screen *ebiten.Image, anchor cp.BB, ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	const barW, barH = 40.0, 4.0
	x, y := (anchor.L+anchor.R)/2-barW/2, anchor.B-10
	r.fill(screen, cp.BB{L: x, R: x + barW, B: y, T: y + barH}, healthBack, 1)
	r.fill(screen, cp.BB{L: x, R: x + barW*ratio, B: y, T: y + barH}, healthFront, 1)
}

// scaled grows bb about its center by the transform scale.
func scaled(bb cp.BB, t *component.Transform) cp.BB {
	sx, sy := t.ScaleX, t.ScaleY
	c := bb.Center()
	hw, hh := (bb.R-bb.L)/2*sx, (bb.T-bb.B)/2*sy
	return cp.BB{L: c.X - hw, R: c.X + hw, B: c.Y - hh, T: c.Y + hh}
}

// top returns the union of rects, or a point at the transform when empty.
// In screen space B is the upper edge.
func top(rects []cp.BB, t *component.Transform) cp.BB {
	if len(rects) == 0 {
		return cp.BB{L: t.X, R: t.X, B: t.Y, T: t.Y}
	}
	out := rects[0]
	for _, bb := range rects[1:] {
		out = out.Merge(bb)
	}
	return out
}
