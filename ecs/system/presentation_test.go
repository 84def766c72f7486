package system

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestTicksPerFrame(t *testing.T) {
	tests := []struct {
		fps  float64
		want int
	}{
		{fps: 8, want: 8},
		{fps: 10, want: 6},
		{fps: 12, want: 5},
		{fps: 60, want: 1},
		{fps: 120, want: 1},
		{fps: 0, want: TPS},
	}
	for _, tt := range tests {
		if got := TicksPerFrame(tt.fps); got != tt.want {
			t.Errorf("TicksPerFrame(%v) = %d, want %d", tt.fps, got, tt.want)
		}
	}
}

func TestAnimationLoopsAndStops(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	anim := &component.Animation{Defs: playerDefs()}
	mustAdd(t, w, e, component.AnimationComponent.Kind(), anim)
	sys := NewAnimationSystem()

	anim.Play(runAnimation, false)
	for i := 0; i < 5*8; i++ {
		sys.Update(w)
	}
	if anim.Frame != 0 || !anim.Playing {
		t.Fatalf("run after one cycle: frame %d playing %v", anim.Frame, anim.Playing)
	}
	if anim.SheetFrame() != 16 {
		t.Fatalf("sheet frame = %d, want 16", anim.SheetFrame())
	}

	anim.Play(deathAnimation, false)
	for i := 0; i < 6*10; i++ {
		sys.Update(w)
	}
	if anim.Playing {
		t.Fatalf("death should stop after one pass")
	}
	if anim.SheetFrame() != 59 {
		t.Fatalf("death holds frame %d, want 59", anim.SheetFrame())
	}
}

func TestFollowCamera(t *testing.T) {
	cam := &component.Camera{
		Zoom:      2,
		LerpX:     0.25,
		LerpY:     0.25,
		DeadzoneW: 50,
		DeadzoneH: 50,
		ViewW:     1280,
		ViewH:     720,
		BoundsW:   1600,
		BoundsH:   640,
	}

	FollowCamera(cam, 800, 320)
	if cam.ScrollX != 480 || cam.ScrollY != 140 {
		t.Fatalf("snap scroll = (%v, %v), want (480, 140)", cam.ScrollX, cam.ScrollY)
	}

	// Inside the deadzone nothing moves.
	FollowCamera(cam, 810, 330)
	if cam.ScrollX != 480 || cam.ScrollY != 140 {
		t.Fatalf("deadzone moved camera to (%v, %v)", cam.ScrollX, cam.ScrollY)
	}

	// 100px past the deadzone edge moves a quarter of the way.
	FollowCamera(cam, 925, 320)
	if math.Abs(cam.ScrollX-505) > 1e-9 {
		t.Fatalf("lerp scroll x = %v, want 505", cam.ScrollX)
	}

	// Clamped at the left and top of the level.
	cam.Initialized = false
	FollowCamera(cam, 10, 10)
	if cam.ScrollX != 0 || cam.ScrollY != 0 {
		t.Fatalf("clamped scroll = (%v, %v), want (0, 0)", cam.ScrollX, cam.ScrollY)
	}

	// Clamped at the right and bottom.
	cam.Initialized = false
	FollowCamera(cam, 1590, 630)
	if cam.ScrollX != 1600-640 || cam.ScrollY != 640-360 {
		t.Fatalf("clamped scroll = (%v, %v), want (960, 280)", cam.ScrollX, cam.ScrollY)
	}
}

func TestCameraSystemTracksPlayerCenter(t *testing.T) {
	w := ecs.NewWorld()
	newTestPlayer(t, w, 400, 200)
	e := w.CreateEntity()
	cam := &component.Camera{TargetName: "player", Zoom: 1, ViewW: 200, ViewH: 100}
	mustAdd(t, w, e, component.CameraComponent.Kind(), cam)

	NewCameraSystem().Update(w)
	// No sheet or image: the collider center (408, 210) is tracked.
	if cam.ScrollX != 308 || cam.ScrollY != 160 {
		t.Fatalf("scroll = (%v, %v), want (308, 160)", cam.ScrollX, cam.ScrollY)
	}
}

func TestParticlesEmitFollowAndExpire(t *testing.T) {
	w := ecs.NewWorld()
	player := newTestPlayer(t, w, 100, 50)
	em := newTestEmitter(t, w)
	em.Lifespan = 100 * time.Millisecond
	em.Follow(uint64(player), em.FollowOffX, em.FollowOffY)
	em.SetParticleSpeed(20, 0)
	em.Start()

	sys := NewParticleSystem()
	sys.Update(w)
	if len(em.Particles) != 1 {
		t.Fatalf("particles = %d, want 1", len(em.Particles))
	}
	if em.X != 122 || em.Y != 77 {
		t.Fatalf("emitter at (%v, %v), want (122, 77)", em.X, em.Y)
	}
	for i := 0; i < 4; i++ {
		sys.Update(w)
	}
	if len(em.Particles) != 5 {
		t.Fatalf("particles = %d, want 5", len(em.Particles))
	}
	first := em.Particles[0]
	if first.X <= 122 {
		t.Fatalf("particle did not move: x = %v", first.X)
	}
	if first.Scale <= em.ScaleStart || first.Alpha >= em.AlphaStart {
		t.Fatalf("particle not interpolated: scale %v alpha %v", first.Scale, first.Alpha)
	}
	if first.Frame != 0 || em.Particles[1].Frame != 1 {
		t.Fatalf("frames should alternate, got %d %d", first.Frame, em.Particles[1].Frame)
	}

	em.Stop()
	for i := 0; i < FramesFor(em.Lifespan); i++ {
		sys.Update(w)
	}
	if len(em.Particles) != 0 {
		t.Fatalf("particles = %d after lifespan, want 0", len(em.Particles))
	}
}

func TestParticlesRespectMaxAlive(t *testing.T) {
	w := ecs.NewWorld()
	em := newTestEmitter(t, w)
	em.MaxAlive = 3
	em.Start()
	sys := NewParticleSystem()
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if len(em.Particles) > 3 {
		t.Fatalf("particles = %d, want at most 3", len(em.Particles))
	}
}

func TestTTLDestroysAfterFrames(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 2})
	sys := NewTTLSystem()

	sys.Update(w)
	if !w.IsAlive(e) {
		t.Fatalf("destroyed after one frame")
	}
	sys.Update(w)
	if w.IsAlive(e) {
		t.Fatalf("still alive after two frames")
	}
}

func TestPhysicsDebugToggle(t *testing.T) {
	w := ecs.NewWorld()
	player := newTestPlayer(t, w, 0, 0)
	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	dbg := NewPhysicsDebugSystem(nil)

	if dbg.Enabled(w) {
		t.Fatalf("overlay on by default")
	}
	input.DebugToggled = true
	dbg.Update(w)
	if !dbg.Enabled(w) {
		t.Fatalf("overlay not enabled")
	}
	input.DebugToggled = false
	dbg.Update(w)
	if !dbg.Enabled(w) {
		t.Fatalf("overlay changed without a toggle")
	}
	input.DebugToggled = true
	dbg.Update(w)
	if dbg.Enabled(w) {
		t.Fatalf("overlay not disabled")
	}
}

func TestAudioSystemClearsRequests(t *testing.T) {
	w := ecs.NewWorld()
	sounds := newTestSounds(t, w)
	sounds.RequestPlay(walkSound)

	sys := NewAudioSystem()
	sys.Update(w)
	if sounds.Play[0] {
		t.Fatalf("play request not cleared")
	}
	// Without a device the requested state is kept.
	if !sounds.IsPlaying(walkSound) {
		t.Fatalf("walk should still be active")
	}

	sys.StopAll(w)
	if sounds.IsPlaying(walkSound) {
		t.Fatalf("StopAll left walk active")
	}
}
