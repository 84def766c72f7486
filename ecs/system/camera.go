package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraSystem follows the camera's target with a deadzone and lerp, then
// clamps the view to the level bounds.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	target, ok := findEntityByNameOrTag(w, cam.TargetName)
	if !ok {
		return
	}
	fx, fy, ok := visualCenter(w, target)
	if !ok {
		return
	}
	FollowCamera(cam, fx, fy)
}

// FollowCamera moves cam toward the point (fx, fy). The first call snaps.
func FollowCamera(cam *component.Camera, fx, fy float64) {
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	visW, visH := cam.ViewW/zoom, cam.ViewH/zoom

	if !cam.Initialized {
		cam.ScrollX = fx - visW/2
		cam.ScrollY = fy - visH/2
		cam.Initialized = true
	} else {
		cam.ScrollX = followAxis(cam.ScrollX, fx, visW, cam.DeadzoneW, cam.LerpX)
		cam.ScrollY = followAxis(cam.ScrollY, fy, visH, cam.DeadzoneH, cam.LerpY)
	}

	cam.ScrollX = clampAxis(cam.ScrollX, visW, cam.BoundsW)
	cam.ScrollY = clampAxis(cam.ScrollY, visH, cam.BoundsH)
}

// followAxis keeps f inside a deadzone centered on the view, moving by lerp
// of the remaining distance each tick.
func followAxis(scroll, f, vis, deadzone, lerpFactor float64) float64 {
	if lerpFactor <= 0 || lerpFactor > 1 {
		lerpFactor = 1
	}
	mid := scroll + vis/2
	half := deadzone / 2
	var want float64
	switch {
	case f < mid-half:
		want = scroll - (mid - half - f)
	case f > mid+half:
		want = scroll + (f - (mid + half))
	default:
		return scroll
	}
	return lerp(scroll, want, lerpFactor)
}

func clampAxis(scroll, vis, bound float64) float64 {
	if bound <= 0 {
		return scroll
	}
	if vis >= bound {
		return (bound - vis) / 2
	}
	if scroll < 0 {
		return 0
	}
	if scroll > bound-vis {
		return bound - vis
	}
	return scroll
}

func findEntityByNameOrTag(w *ecs.World, name string) (ecs.Entity, bool) {
	switch name {
	case "", "player":
		return ecs.First(w, component.PlayerTagComponent.Kind())
	}
	return 0, false
}

// visualCenter returns the world-space center of an entity's sprite frame,
// falling back to its collider.
func visualCenter(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok && anim.Sheet != nil {
		return t.X + float64(anim.Sheet.FrameW)/2, t.Y + float64(anim.Sheet.FrameH)/2, true
	}
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && s.Image != nil {
		sw, sh := s.Size()
		return t.X + sw/2, t.Y + sh/2, true
	}
	if box, ok := bodyBox(w, e); ok {
		return box.x + box.w/2, box.y + box.h/2, true
	}
	return t.X, t.Y, true
}

// view maps world coordinates to the screen.
type view struct {
	scrollX, scrollY float64
	zoom             float64
}

func (v view) apply(g *ebiten.GeoM) {
	g.Translate(-v.scrollX, -v.scrollY)
	g.Scale(v.zoom, v.zoom)
}

func (v view) toScreen(x, y float64) (float64, float64) {
	return (x - v.scrollX) * v.zoom, (y - v.scrollY) * v.zoom
}

func cameraView(w *ecs.World) view {
	v := view{zoom: 1}
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	v.scrollX, v.scrollY = cam.ScrollX, cam.ScrollY
	if cam.Zoom > 0 {
		v.zoom = cam.Zoom
	}
	return v
}
