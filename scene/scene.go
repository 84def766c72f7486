// Package scene runs the game as a sequence of scenes that share decoded
// resources through a Context.
package scene

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/logging"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

// Scene names.
const (
	LoadName       = "load"
	PlatformerName = "platformer"
	VictoryName    = "victory"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// Transition asks the manager to change scene. The zero value stays.
type Transition struct {
	Next    string
	Restart bool
}

func (t Transition) IsZero() bool {
	return t.Next == "" && !t.Restart
}

type Scene interface {
	Name() string
	Enter(ctx *Context) error
	Update() (Transition, error)
	Draw(screen *ebiten.Image)
	Exit()
}

// Stats is the outcome of the last platformer run.
type Stats struct {
	CoinsCollected int
	CoinsTotal     int
	Deaths         int
	Frames         int
}

// Context is shared by every scene the manager runs.
type Context struct {
	Resources *Resources
	Log       *zap.Logger
	Debug     bool
	// Level selects the manifest tilemap; empty uses the first one.
	Level string
	// Watcher is nil unless prefab hot reload is enabled.
	Watcher *prefabs.Watcher
	ViewW   float64
	ViewH   float64
	Stats   Stats
}

type Manager struct {
	ctx     *Context
	scenes  map[string]Scene
	current Scene
}

func NewManager(ctx *Context) *Manager {
	if ctx == nil {
		ctx = &Context{}
	}
	ctx.Log = logging.OrNop(ctx.Log)
	if ctx.Resources == nil {
		ctx.Resources = NewResources()
	}
	return &Manager{ctx: ctx, scenes: make(map[string]Scene)}
}

// Register adds s, replacing any scene with the same name.
func (m *Manager) Register(s Scene) {
	if s == nil {
		return
	}
	m.scenes[s.Name()] = s
}

// Start exits the current scene and enters the named one.
func (m *Manager) Start(name string) error {
	next, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if m.current != nil {
		m.current.Exit()
		m.current = nil
	}
	if err := next.Enter(m.ctx); err != nil {
		return fmt.Errorf("scene: enter %q: %w", name, err)
	}
	m.current = next
	m.ctx.Log.Info("scene started", zap.String("scene", name))
	return nil
}

func (m *Manager) Update() error {
	if m.current == nil {
		return nil
	}
	tr, err := m.current.Update()
	if err != nil {
		return err
	}
	switch {
	case tr.Restart:
		return m.Start(m.current.Name())
	case tr.Next != "":
		return m.Start(tr.Next)
	}
	return nil
}

func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(screen)
	}
}

func (m *Manager) Current() Scene {
	return m.current
}

func (m *Manager) Context() *Context {
	return m.ctx
}
