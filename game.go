package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scene"
	"go.uber.org/zap"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type GameOptions struct {
	Level   string
	Debug   bool
	Log     *zap.Logger
	Watcher *prefabs.Watcher
}

// Game adapts the scene manager to ebiten.Game. The load scene starts on the
// first Update so its errors end RunGame.
type Game struct {
	scenes  *scene.Manager
	started bool
}

func NewGame(opts GameOptions) *Game {
	m := scene.NewManager(&scene.Context{
		Log:     opts.Log,
		Debug:   opts.Debug,
		Level:   opts.Level,
		Watcher: opts.Watcher,
		ViewW:   baseWidth,
		ViewH:   baseHeight,
	})
	m.Register(scene.NewLoadScene())
	m.Register(scene.NewPlatformerScene())
	m.Register(scene.NewVictoryScene())
	return &Game{scenes: m}
}

func (g *Game) Update() error {
	if !g.started {
		g.started = true
		return g.scenes.Start(scene.LoadName)
	}
	return g.scenes.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scenes.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
