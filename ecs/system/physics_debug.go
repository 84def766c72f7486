package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var (
	debugCoinColor = color.NRGBA{R: 255, G: 220, B: 60, A: 220}
	debugZoneColor = color.NRGBA{R: 80, G: 160, B: 255, A: 220}
)

// PhysicsDebugSystem toggles and draws the collider overlay.
type PhysicsDebugSystem struct {
	physics *PhysicsSystem
}

func NewPhysicsDebugSystem(physics *PhysicsSystem) *PhysicsDebugSystem {
	return &PhysicsDebugSystem{physics: physics}
}

// Update flips the overlay whenever any entity's input asks for it.
func (d *PhysicsDebugSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	toggled := false
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		if in.DebugToggled {
			toggled = true
		}
	})
	if !toggled {
		return
	}
	dbg := debugState(w)
	dbg.Enabled = !dbg.Enabled
}

// Enabled reports whether the overlay is on.
func (d *PhysicsDebugSystem) Enabled(w *ecs.World) bool {
	if d == nil || w == nil {
		return false
	}
	e, ok := ecs.First(w, component.PhysicsDebugComponent.Kind())
	if !ok {
		return false
	}
	dbg, ok := ecs.Get(w, e, component.PhysicsDebugComponent.Kind())
	return ok && dbg.Enabled
}

func debugState(w *ecs.World) *component.PhysicsDebug {
	if e, ok := ecs.First(w, component.PhysicsDebugComponent.Kind()); ok {
		if dbg, ok := ecs.Get(w, e, component.PhysicsDebugComponent.Kind()); ok {
			return dbg
		}
	}
	dbg := &component.PhysicsDebug{}
	_ = ecs.Add(w, w.CreateEntity(), component.PhysicsDebugComponent.Kind(), dbg)
	return dbg
}

func (d *PhysicsDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if !d.Enabled(w) || screen == nil {
		return
	}
	v := cameraView(w)
	drawer := &physicsDebugDrawer{screen: screen, view: v}
	if space := d.physics.Space(); space != nil {
		cp.DrawSpace(space, drawer)
	}

	ecs.ForEach2(w, component.CoinComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, c *component.Coin, t *component.Transform) {
		drawer.drawRect(t.X, t.Y, c.Width, c.Height, debugCoinColor)
	})
	ecs.ForEach2(w, component.EndZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.EndZone, t *component.Transform) {
		drawer.drawRect(t.X, t.Y, z.Width, z.Height, debugZoneColor)
	})
	drawPlayerDebug(w, screen)
}

func drawPlayerDebug(w *ecs.World, screen *ebiten.Image) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	state := "none"
	if st, ok := ecs.Get(w, player, component.PlayerStateComponent.Kind()); ok {
		state = string(st.Current)
	}
	grounded := false
	if pc, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = pc.BlockedDown
	}
	deaths := 0
	if death, ok := ecs.Get(w, player, component.DeathComponent.Kind()); ok {
		deaths = death.Count
	}
	vx, vy := 0.0, 0.0
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		vel := body.Body.Velocity()
		vx, vy = vel.X, vel.Y
	}
	msg := fmt.Sprintf("State: %s\nGrounded: %v\nVelocity: %.0f, %.0f\nDeaths: %d\nTPS: %0.1f", state, grounded, vx, vy, deaths, ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   view
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Sensor() {
		return cp.FColor{R: 1, G: 1, B: 0.2, A: 0.7}
	}
	if shape != nil && shape.CollisionType() == collisionTypeHazard {
		return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.8}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	d.strokeLine(a.X, a.Y, b.X, b.Y, toNRGBA(c))
}

func (d *physicsDebugDrawer) strokeLine(x1, y1, x2, y2 float64, c color.Color) {
	sx1, sy1 := d.view.toScreen(x1, y1)
	sx2, sy2 := d.view.toScreen(x2, y2)
	vector.StrokeLine(d.screen, float32(sx1), float32(sy1), float32(sx2), float32(sy2), 1, c, false)
}

func (d *physicsDebugDrawer) drawRect(x, y, w, h float64, c color.Color) {
	d.strokeLine(x, y, x+w, y, c)
	d.strokeLine(x+w, y, x+w, y+h, c)
	d.strokeLine(x+w, y+h, x, y+h, c)
	d.strokeLine(x, y+h, x, y, c)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
