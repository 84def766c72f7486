package component

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Particle is one live puff owned by a ParticleEmitter.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    int
	Life   int
	Frame  int
	Scale  float64
	Alpha  float64
}

// ParticleEmitter spawns short-lived sprites while running.
type ParticleEmitter struct {
	Frames     []*ebiten.Image
	FrameNames []string
	Lifespan   time.Duration
	ScaleStart float64
	ScaleEnd   float64
	AlphaStart float64
	AlphaEnd   float64
	// Frequency is the number of ticks between emissions.
	Frequency    int
	MaxAlive     int
	GravityY     float64
	SpeedX       float64
	SpeedY       float64
	Running      bool
	FollowTarget uint64
	FollowOffX   float64
	FollowOffY   float64
	X, Y         float64
	Particles    []Particle
	cooldown     int
	next         int
}

// Start begins emitting. Starting a running emitter is a no-op.
func (p *ParticleEmitter) Start() {
	if p == nil || p.Running {
		return
	}
	p.Running = true
	p.cooldown = 0
}

// Stop halts emission; live particles finish their lifespan.
func (p *ParticleEmitter) Stop() {
	if p == nil {
		return
	}
	p.Running = false
}

// Follow attaches the emitter to an entity with an offset from its
// transform.
func (p *ParticleEmitter) Follow(target uint64, offX, offY float64) {
	if p == nil {
		return
	}
	p.FollowTarget = target
	p.FollowOffX = offX
	p.FollowOffY = offY
}

// SetParticleSpeed sets the initial velocity given to new particles.
func (p *ParticleEmitter) SetParticleSpeed(x, y float64) {
	if p == nil {
		return
	}
	p.SpeedX = x
	p.SpeedY = y
}

// Tick advances the emission cooldown and reports whether a particle should
// be spawned this tick, along with the frame index to use.
func (p *ParticleEmitter) Tick() (bool, int) {
	if p == nil || !p.Running {
		return false, 0
	}
	if p.cooldown > 0 {
		p.cooldown--
		return false, 0
	}
	freq := p.Frequency
	if freq < 1 {
		freq = 1
	}
	p.cooldown = freq - 1
	if p.MaxAlive > 0 && len(p.Particles) >= p.MaxAlive {
		return false, 0
	}
	n := len(p.FrameNames)
	if len(p.Frames) > n {
		n = len(p.Frames)
	}
	frame := 0
	if n > 0 {
		frame = p.next % n
		p.next++
	}
	return true, frame
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()
