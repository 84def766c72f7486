package entity

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

func loadLevel(t *testing.T) (*levels.Map, *prefabs.LevelSpec) {
	t.Helper()
	m, err := levels.LoadMap("platformer-level-1")
	if err != nil {
		t.Fatalf("load map: %v", err)
	}
	spec, err := prefabs.LoadLevelSpec()
	if err != nil {
		t.Fatalf("load level spec: %v", err)
	}
	return m, spec
}

func TestLoadTilemapToWorld(t *testing.T) {
	m, spec := loadLevel(t)
	w := ecs.NewWorld()

	stats, err := LoadTilemapToWorld(w, m, spec, nil)
	if err != nil {
		t.Fatalf("LoadTilemapToWorld: %v", err)
	}
	if stats.Tiles != 835 {
		t.Fatalf("tiles = %d, want 835", stats.Tiles)
	}
	if stats.Solids == 0 || stats.Hazards == 0 {
		t.Fatalf("solids = %d hazards = %d, want both", stats.Solids, stats.Hazards)
	}
	if stats.WidthPx != 1280 || stats.HeightPx != 640 {
		t.Fatalf("bounds = %vx%v, want 1280x640", stats.WidthPx, stats.HeightPx)
	}

	hazards := w.Query(component.HazardComponent.Kind().ID(), component.PhysicsBodyComponent.Kind().ID())
	if len(hazards) != stats.Hazards {
		t.Fatalf("hazard entities = %d, want %d", len(hazards), stats.Hazards)
	}
	var hazardArea float64
	for _, e := range hazards {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !body.Static {
			t.Fatalf("hazard collider must be static")
		}
		hazardArea += body.Width * body.Height
	}
	if hazardArea != 6*16*16 {
		t.Fatalf("hazard area = %v, want six tiles", hazardArea)
	}

	if _, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); !ok {
		t.Fatalf("level bounds not created")
	}
}

func TestLoadTilemapMissingLayer(t *testing.T) {
	m, spec := loadLevel(t)
	bad := *spec
	bad.GroundLayer = "Nope"
	_, err := LoadTilemapToWorld(ecs.NewWorld(), m, &bad, nil)
	if !errors.Is(err, levels.ErrLayerNotFound) {
		t.Fatalf("err = %v, want ErrLayerNotFound", err)
	}
}

func TestAddMergedTileColliders(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		cells  []bool
		want   int
	}{
		{name: "empty", width: 2, height: 2, cells: make([]bool, 4), want: 0},
		{name: "full block", width: 3, height: 2, cells: []bool{true, true, true, true, true, true}, want: 1},
		{name: "l shape", width: 2, height: 2, cells: []bool{true, false, true, true}, want: 2},
		{name: "checker", width: 2, height: 2, cells: []bool{true, false, false, true}, want: 2},
		{name: "row gap", width: 3, height: 1, cells: []bool{true, false, true}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			got, err := addMergedTileColliders(w, tt.cells, tt.width, tt.height, 16, 16, false)
			if err != nil {
				t.Fatalf("merge: %v", err)
			}
			if got != tt.want {
				t.Fatalf("colliders = %d, want %d", got, tt.want)
			}
			var area float64
			ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody) {
				area += b.Width * b.Height
			})
			filled := 0
			for _, c := range tt.cells {
				if c {
					filled++
				}
			}
			if area != float64(filled)*256 {
				t.Fatalf("area = %v, want %v", area, float64(filled)*256)
			}
		})
	}
}

func TestNewPlayer(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player spec: %v", err)
	}
	manifest, err := prefabs.LoadManifest()
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	w := ecs.NewWorld()
	player, err := NewPlayer(w, spec, nil, AnimationDefs(manifest.Animations, spec.Sprite.Sheet))
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.X != 0 || tr.Y != 184 {
		t.Fatalf("transform = (%v, %v), want (0, 184)", tr.X, tr.Y)
	}
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if p.SpawnX != 0 || p.SpawnY != 184 || p.MaxSpeed != 200 || p.JumpVelocity != -500 {
		t.Fatalf("player = %+v", *p)
	}
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if body.Width != 15 || body.Height != 20 || body.OffsetX != 8 || body.OffsetY != 8 {
		t.Fatalf("body = %+v", *body)
	}
	anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
	if anim.Current != "idle" || !anim.Playing {
		t.Fatalf("animation = %q playing %v", anim.Current, anim.Playing)
	}
	for _, has := range []bool{
		ecs.Has(w, player, component.PlayerTagComponent.Kind()),
		ecs.Has(w, player, component.InputComponent.Kind()),
		ecs.Has(w, player, component.DeathComponent.Kind()),
		ecs.Has(w, player, component.PlayerCollisionComponent.Kind()),
	} {
		if !has {
			t.Fatalf("player is missing a gameplay component")
		}
	}

	tuned := *spec
	tuned.MaxSpeed = 250
	if err := ApplyPlayerTuning(w, player, &tuned); err != nil {
		t.Fatalf("ApplyPlayerTuning: %v", err)
	}
	if p.MaxSpeed != 250 || p.SpawnY != 184 {
		t.Fatalf("tuned player = %+v", *p)
	}
}

func TestNewPlayerRejectsBadSpec(t *testing.T) {
	spec := &prefabs.PlayerSpec{}
	if _, err := NewPlayer(ecs.NewWorld(), spec, nil, nil); err == nil {
		t.Fatalf("expected an error for a zero collider")
	}
	spec.Collider = prefabs.ColliderSpec{Width: 10, Height: 10}
	spec.Animation = "missing"
	if _, err := NewPlayer(ecs.NewWorld(), spec, nil, nil); err == nil {
		t.Fatalf("expected an error for an unknown animation")
	}
}

func TestNewCoinsAndEndZone(t *testing.T) {
	m, spec := loadLevel(t)
	coinSpec, err := prefabs.LoadCoinSpec()
	if err != nil {
		t.Fatalf("coin spec: %v", err)
	}
	zoneSpec, err := prefabs.LoadEndZoneSpec()
	if err != nil {
		t.Fatalf("end zone spec: %v", err)
	}
	w := ecs.NewWorld()

	n, err := NewCoins(w, m, spec, coinSpec, nil)
	if err != nil {
		t.Fatalf("NewCoins: %v", err)
	}
	if n != 10 || len(w.Query(component.CoinComponent.Kind().ID())) != 10 {
		t.Fatalf("coins = %d, want 10", n)
	}
	first, _ := ecs.First(w, component.CoinComponent.Kind())
	tr, _ := ecs.Get(w, first, component.TransformComponent.Kind())
	if tr.X != 163 || tr.Y != 451 {
		t.Fatalf("first coin at (%v, %v), want (163, 451)", tr.X, tr.Y)
	}

	zone, err := NewEndZone(w, m, spec, zoneSpec)
	if err != nil {
		t.Fatalf("NewEndZone: %v", err)
	}
	ez, _ := ecs.Get(w, zone, component.EndZoneComponent.Kind())
	if ez.Width != 48 || ez.Height != 64 || ez.NextScene != "victory" || ez.RequiredCoins != 0 {
		t.Fatalf("end zone = %+v", *ez)
	}
	if got := ez.Delay.Milliseconds(); got != 1500 {
		t.Fatalf("delay = %dms, want 1500", got)
	}
}

func TestNewEndZoneMissingObject(t *testing.T) {
	m, spec := loadLevel(t)
	bad := *spec
	bad.EndZoneObject = "nowhere"
	_, err := NewEndZone(ecs.NewWorld(), m, &bad, &prefabs.EndZoneSpec{})
	if !errors.Is(err, levels.ErrObjectNotFound) {
		t.Fatalf("err = %v, want ErrObjectNotFound", err)
	}
}

func TestNewRunningEmitter(t *testing.T) {
	data, err := assets.LoadFile("kenny-particles.json")
	if err != nil {
		t.Fatalf("load atlas json: %v", err)
	}
	atlas, err := assets.ParseMultiAtlas(data)
	if err != nil {
		t.Fatalf("parse atlas: %v", err)
	}
	spec, err := prefabs.LoadEmitterSpec("running_vfx.yaml")
	if err != nil {
		t.Fatalf("emitter spec: %v", err)
	}

	w := ecs.NewWorld()
	e, err := NewRunningEmitter(w, spec, atlas, 32, 32)
	if err != nil {
		t.Fatalf("NewRunningEmitter: %v", err)
	}
	em, _ := ecs.Get(w, e, component.ParticleEmitterComponent.Kind())
	if em.Running {
		t.Fatalf("emitter should start stopped")
	}
	if math.Abs(em.ScaleStart-0.48) > 1e-9 || math.Abs(em.ScaleEnd-1.6) > 1e-9 {
		t.Fatalf("scales = %v -> %v, want 0.48 -> 1.6", em.ScaleStart, em.ScaleEnd)
	}
	if em.FollowOffX != 22 || em.FollowOffY != 27 {
		t.Fatalf("follow offset = (%v, %v), want (22, 27)", em.FollowOffX, em.FollowOffY)
	}
	if em.Frequency != 1 || len(em.FrameNames) != 2 {
		t.Fatalf("frequency %d frames %v", em.Frequency, em.FrameNames)
	}

	bad := *spec
	bad.Frames = []string{"missing.png"}
	if _, err := NewRunningEmitter(w, &bad, atlas, 32, 32); !errors.Is(err, assets.ErrFrameNotFound) {
		t.Fatalf("err = %v, want ErrFrameNotFound", err)
	}
}

func TestFrequencyTicks(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "0s", want: 1},
		{in: "16ms", want: 1},
		{in: "100ms", want: 6},
		{in: "1s", want: 60},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := time.ParseDuration(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := frequencyTicks(d); got != tt.want {
				t.Fatalf("frequencyTicks(%s) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewSoundEffects(t *testing.T) {
	spec, err := prefabs.LoadSoundsSpec()
	if err != nil {
		t.Fatalf("sounds spec: %v", err)
	}
	files := map[string]string{"deathImpact": "death_impact.wav", "walkConcrete": "walk_concrete.wav"}
	loops := map[string]bool{}
	load := func(path string, loop bool) (*audio.Player, error) {
		loops[path] = loop
		return nil, nil
	}

	w := ecs.NewWorld()
	e, err := newSoundEffects(w, spec, files, load)
	if err != nil {
		t.Fatalf("newSoundEffects: %v", err)
	}
	a, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	if len(a.Names) != 2 || a.Names[0] != "death" || a.Names[1] != "walk" {
		t.Fatalf("names = %v", a.Names)
	}
	if a.Volume[1] != 0.2 || !loops["walk_concrete.wav"] || loops["death_impact.wav"] {
		t.Fatalf("volume %v loops %v", a.Volume, loops)
	}
	if !a.RequestPlay("walk") || !a.IsPlaying("walk") {
		t.Fatalf("walk request not recorded")
	}

	if _, err := newSoundEffects(w, spec, map[string]string{}, load); err == nil {
		t.Fatalf("expected an error for a missing audio asset")
	}
}

func TestAnchorPosition(t *testing.T) {
	tests := []struct {
		anchor       string
		x, y, ox, oy float64
		wantErr      bool
	}{
		{anchor: "center", x: 640, y: 360, ox: 0.5, oy: 0.5},
		{anchor: "top_left", x: 12, y: 12},
		{anchor: "top_right", x: 1268, y: 12, ox: 1},
		{anchor: "bottom", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			x, y, ox, oy, err := AnchorPosition(tt.anchor, 12, 1280, 720)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if tt.wantErr {
				return
			}
			if x != tt.x || y != tt.y || ox != tt.ox || oy != tt.oy {
				t.Fatalf("got (%v, %v) origin (%v, %v)", x, y, ox, oy)
			}
		})
	}
}

func TestTextEntities(t *testing.T) {
	cleared, err := prefabs.LoadTextSpec("level_cleared.yaml")
	if err != nil {
		t.Fatalf("level cleared spec: %v", err)
	}
	counterSpec, err := prefabs.LoadTextSpec("coin_counter.yaml")
	if err != nil {
		t.Fatalf("coin counter spec: %v", err)
	}
	w := ecs.NewWorld()

	e, err := NewLevelClearedText(w, cleared, nil, 1280, 720)
	if err != nil {
		t.Fatalf("NewLevelClearedText: %v", err)
	}
	label, _ := ecs.Get(w, e, component.TextComponent.Kind())
	if label.Visible || label.Value != "Level Cleared!" || label.X != 640 || label.Y != 360 {
		t.Fatalf("label = %+v", *label)
	}
	if !ecs.Has(w, e, component.ScreenSpaceComponent.Kind()) {
		t.Fatalf("level cleared text should be screen space")
	}

	c, err := NewCoinCounter(w, counterSpec, nil, 10, 1280, 720)
	if err != nil {
		t.Fatalf("NewCoinCounter: %v", err)
	}
	hud, _ := ecs.Get(w, c, component.TextComponent.Kind())
	if hud.Value != "Coins: 0 / 10" || !hud.Visible {
		t.Fatalf("hud = %+v", *hud)
	}
}

func TestAnimationDefs(t *testing.T) {
	manifest, err := prefabs.LoadManifest()
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	defs := AnimationDefs(manifest.Animations, "knight")
	want := map[string]component.AnimationDef{
		"idle":  {Name: "idle", Start: 0, End: 3, FPS: 8, Loop: true},
		"run":   {Name: "run", Start: 16, End: 23, FPS: 12, Loop: true},
		"jump":  {Name: "jump", Start: 41, End: 48, FPS: 8, Loop: true},
		"death": {Name: "death", Start: 56, End: 59, FPS: 10, Loop: false},
	}
	if len(defs) != len(want) {
		t.Fatalf("defs = %v", defs)
	}
	for name, def := range want {
		if defs[name] != def {
			t.Fatalf("%s = %+v, want %+v", name, defs[name], def)
		}
	}
	if len(AnimationDefs(manifest.Animations, "coins")) != 0 {
		t.Fatalf("coins sheet has no animations")
	}
}
