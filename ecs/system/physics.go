package system

import (
	"math"

	"github.com/jakecoffman/cp/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
	collisionTypeHazard
)

const (
	// TPS is the fixed update rate every frame-counted duration assumes.
	TPS = 60

	defaultGravity = 1500.0
	stepSeconds    = 1.0 / TPS
)

type PhysicsSystem struct {
	space         *cp.Space
	gravity       float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	groundShapes map[*cp.Shape]ecs.Entity
	contacts     map[ecs.Entity]*playerContactState
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
	inSpace     bool
}

type playerContactState struct {
	blockedDown bool
	hazard      bool
}

// NewPhysicsSystem creates a space with downward gravity in pixels/s^2. A
// non-positive gravity uses the default.
func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	if gravity <= 0 {
		gravity = defaultGravity
	}
	ps := &PhysicsSystem{gravity: gravity}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	ps.space = cp.NewSpace()
	ps.space.Iterations = 20
	ps.space.SetGravity(cp.Vector{X: 0, Y: ps.gravity})
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.playerShapes = make(map[*cp.Shape]ecs.Entity)
	ps.groundShapes = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[ecs.Entity]*playerContactState)
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.reset()
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.resetPlayerContacts(w)
	ps.integrate(w)

	ps.space.Step(stepSeconds)

	ps.clampSpeeds(w)
	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	hazardHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeHazard)
	hazardHandler.UserData = ps
	hazardHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		if st := sys.contactFor(sys.playerShapes, arb); st != nil {
			st.hazard = true
		}
		return true
	}

	grounded := func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		if st := sys.contactFor(sys.groundShapes, arb); st != nil {
			st.blockedDown = true
		}
		return true
	}
	for _, other := range []cp.CollisionType{collisionTypeSolid, collisionTypeHazard} {
		h := ps.space.NewCollisionHandler(collisionTypePlayerGround, other)
		h.UserData = ps
		h.PreSolveFunc = grounded
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) contactFor(shapes map[*cp.Shape]ecs.Entity, arb *cp.Arbiter) *playerContactState {
	a, b := arb.Shapes()
	e, ok := shapes[a]
	if !ok {
		if e, ok = shapes[b]; !ok {
			return nil
		}
	}
	st := ps.contacts[e]
	if st == nil {
		st = &playerContactState{}
		ps.contacts[e] = st
	}
	return st
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind().ID(), component.TransformComponent.Kind().ID()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
			isHazard := ecs.Has(w, e, component.HazardComponent.Kind())
			info = ps.createBodyInfo(transform, bodyComp, isPlayer, isHazard)
			if info == nil {
				continue
			}
			ps.entities[e] = info
			if isPlayer {
				ps.playerShapes[info.mainShape] = e
				if info.groundShape != nil {
					ps.groundShapes[info.groundShape] = e
				}
			}
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape

		ps.setEnabled(info, !bodyComp.Disabled)
	}
}

func (ps *PhysicsSystem) setEnabled(info *bodyInfo, enabled bool) {
	if info.inSpace == enabled {
		return
	}
	if enabled {
		if !info.static {
			ps.space.AddBody(info.body)
		}
		for _, shape := range info.shapes {
			ps.space.AddShape(shape)
		}
	} else {
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
	}
	info.inSpace = enabled
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer, isHazard bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}

	topLeftX := transform.X + bodyComp.OffsetX
	topLeftY := transform.Y + bodyComp.OffsetY

	if bodyComp.Static {
		bb := cp.BB{L: topLeftX, B: topLeftY, R: topLeftX + width, T: topLeftY + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		if isHazard {
			shape.SetCollisionType(collisionTypeHazard)
		}
		return &bodyInfo{
			body:      ps.space.StaticBody,
			mainShape: shape,
			shapes:    []*cp.Shape{shape},
			static:    true,
		}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Infinite moment keeps the box upright.
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: topLeftX + width/2, Y: topLeftY + height/2})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)

	info := &bodyInfo{body: body, mainShape: shape, shapes: []*cp.Shape{shape}}
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
		if ground := createGroundSensor(width, height, body); ground != nil {
			info.groundShape = ground
			info.shapes = append(info.shapes, ground)
		}
	}
	return info
}

func createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind().ID())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: worldH}, {X: worldW, Y: worldH}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], 1)
		shape.SetCollisionType(collisionTypeSolid)
		info.shapes = append(info.shapes, shape)
	}
	info.mainShape = info.shapes[0]
	ps.setEnabled(info, true)
	ps.entities[boundsEntity] = info
}

// integrate applies horizontal acceleration and drag to dynamic bodies.
func (ps *PhysicsSystem) integrate(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody) {
		if body.Body == nil || body.Static || body.Disabled {
			return
		}
		v := body.Body.Velocity()
		v.X = stepVelocityX(v.X, body.AccelX, body.DragX, stepSeconds)
		body.Body.SetVelocity(v.X, v.Y)
	})
}

// stepVelocityX advances vx by one step: acceleration when set, otherwise
// drag toward zero without overshooting.
func stepVelocityX(vx, accel, drag, dt float64) float64 {
	if accel != 0 {
		return vx + accel*dt
	}
	if drag <= 0 || vx == 0 {
		return vx
	}
	d := drag * dt
	if math.Abs(vx) <= d {
		return 0
	}
	if vx > 0 {
		return vx - d
	}
	return vx + d
}

func (ps *PhysicsSystem) clampSpeeds(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody) {
		ClampVelocityX(body, body.MaxSpeedX)
	})
}

// ClampVelocityX caps the body's horizontal speed at maxSpeed.
func ClampVelocityX(body *component.PhysicsBody, maxSpeed float64) {
	if body == nil || body.Body == nil || maxSpeed <= 0 {
		return
	}
	v := body.Body.Velocity()
	switch {
	case v.X > maxSpeed:
		body.Body.SetVelocity(maxSpeed, v.Y)
	case v.X < -maxSpeed:
		body.Body.SetVelocity(-maxSpeed, v.Y)
	}
}

// SetBodyTopLeft moves the transform and its body so the sprite's top-left
// sits at (x, y).
func SetBodyTopLeft(transform *component.Transform, body *component.PhysicsBody, x, y float64) {
	if transform != nil {
		transform.X = x
		transform.Y = y
	}
	if body == nil || body.Body == nil || body.Static {
		return
	}
	body.Body.SetPosition(cp.Vector{
		X: x + body.OffsetX + body.Width/2,
		Y: y + body.OffsetY + body.Height/2,
	})
}

func (ps *PhysicsSystem) resetPlayerContacts(w *ecs.World) {
	for e := range ps.contacts {
		if !w.IsAlive(e) {
			delete(ps.contacts, e)
			continue
		}
		*ps.contacts[e] = playerContactState{}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		st := ps.contacts[e]
		if st == nil {
			st = &playerContactState{}
		}
		pc.BlockedDown = st.blockedDown
		pc.HazardContact = st.hazard
		if !st.hazard {
			return
		}
		if death, ok := ecs.Get(w, e, component.DeathComponent.Kind()); ok && death.Dead {
			return
		}
		_ = ecs.Add(w, e, component.DeathRequestComponent.Kind(), &component.DeathRequest{})
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody, transform *component.Transform) {
		if body.Body == nil || body.Static || body.Disabled {
			return
		}
		pos := body.Body.Position()
		transform.X = pos.X - body.Width/2 - body.OffsetX
		transform.Y = pos.Y - body.Height/2 - body.OffsetY
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}
		ps.setEnabled(info, false)
		for _, shape := range info.shapes {
			delete(ps.playerShapes, shape)
			delete(ps.groundShapes, shape)
		}
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}
