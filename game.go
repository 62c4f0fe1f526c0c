package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/entity"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	floorY     = 520
)

var (
	backgroundColor = color.NRGBA{R: 24, G: 22, B: 30, A: 255}
	floorColor      = color.NRGBA{R: 60, G: 56, B: 70, A: 255}
)

type Game struct {
	cfg     Config
	frames  int
	paused  bool
	restart bool
	pause   *ebitenui.UI

	world     *ecs.World
	arena     *combat.Arena
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	watcher   *prefabs.Watcher
}

func NewGame(cfg Config) (*Game, error) {
	prefabs.SetDir(cfg.PrefabDir)

	g := &Game{cfg: cfg, render: system.NewRenderSystem(cfg.Debug)}
	g.pause = NewPauseUI(g)
	if err := g.reset(); err != nil {
		return nil, err
	}

	if cfg.HotReload && cfg.PrefabDir != "" {
		w, err := prefabs.NewWatcher(cfg.PrefabDir)
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// reset builds a fresh round: world, arena, systems and fighters.
func (g *Game) reset() error {
	world := ecs.NewWorld()
	arena := combat.NewArena(float64(g.cfg.TPS), g.cfg.Seed)

	if _, err := entity.NewCamera(world); err != nil {
		return err
	}
	if _, err := entity.NewFighter(world, arena, g.cfg.Player, entity.FighterOptions{Seed: g.cfg.Seed}); err != nil {
		return err
	}
	for i, name := range g.cfg.Enemies {
		if _, err := entity.NewFighter(world, arena, name, entity.FighterOptions{Seed: g.cfg.Seed + int64(i) + 1}); err != nil {
			return err
		}
	}

	g.world = world
	g.arena = arena
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewAIInputSystem(),
		system.NewActionSystem(),
		system.NewHitDetectionSystem(arena),
		system.NewArenaSystem(arena),
		system.NewPhysicsSystem(arena),
		system.NewAnimationSystem(arena),
		system.NewTweenSystem(),
		system.NewCameraSystem(arena.FrameRate()),
		system.NewParticleSystem(arena),
		system.NewTTLSystem(),
		system.NewAudioSystem(),
	)
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pause.Update()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart = true
	}
	if g.restart {
		g.restart = false
		if err := g.reset(); err != nil {
			log.Printf("game: restart: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.render.Debug = !g.render.Debug
	}
	if g.paused {
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

// applyReloads rebuilds action sets when a yaml prefab changed and refreshes
// AI scripts when a tengo file changed.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("game: prefab watcher: %v", err)
	default:
	}
	specs := false
	for _, name := range g.watcher.Drain() {
		if prefabs.IsScript(name) {
			entity.ReloadScript(g.world, name)
			continue
		}
		specs = true
	}
	if specs {
		entity.ReloadActions(g.world, g.arena.FrameRate())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	screen.SubImage(image.Rect(0, floorY, baseWidth, baseHeight)).(*ebiten.Image).Fill(floorColor)

	g.render.Draw(g.world, screen)
	ebitenutil.DebugPrint(screen, g.hud())
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) hud() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Frame: %d    FPS: %.2f    Time scale: %.2f\n", g.arena.Frame(), ebiten.ActualFPS(), g.arena.TimeScale().Scale())
	ecs.ForEach(g.world, component.FighterComponent.Kind(), func(_ ecs.Entity, f *component.Fighter) {
		c := f.Character
		if c == nil {
			return
		}
		current := "-"
		if a := c.CurrentAction(); a != nil {
			current = a.Name
		}
		fmt.Fprintf(&b, "%-8s hp %5.1f/%-5.1f combo %-2d %s\n", c.Name, c.Health(), c.MaxHealth(), c.Combo(), current)
	})
	b.WriteString("click: attack/walk  swipe: sweep/dash/focus  Esc: pause  R: restart  F1: debug")
	return b.String()
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close watcher: %v", err)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
