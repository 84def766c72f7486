package component

import "github.com/milk9111/platformer/assets"

// AnimationDef is a run of linear frame indices on a spritesheet.
type AnimationDef struct {
	Name  string
	Start int
	End   int
	FPS   float64
	Loop  bool
}

// FrameCount returns the number of frames in the run.
func (d AnimationDef) FrameCount() int {
	if d.End < d.Start {
		return 0
	}
	return d.End - d.Start + 1
}

type Animation struct {
	Sheet      *assets.SpriteSheet
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

// Play switches to the named animation. With ignoreIfPlaying set, asking for
// the animation that is already running leaves its frame position alone.
// Unknown names are ignored and reported as false.
func (a *Animation) Play(name string, ignoreIfPlaying bool) bool {
	if a == nil {
		return false
	}
	if _, ok := a.Defs[name]; !ok {
		return false
	}
	if ignoreIfPlaying && a.Current == name && a.Playing {
		return true
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

// SheetFrame returns the spritesheet index of the frame being shown.
func (a *Animation) SheetFrame() int {
	if a == nil {
		return 0
	}
	def, ok := a.Defs[a.Current]
	if !ok {
		return 0
	}
	return def.Start + a.Frame
}

var AnimationComponent = NewComponent[Animation]()
