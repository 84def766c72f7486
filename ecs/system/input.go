package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const stickDeadzone = 0.2

// InputSystem polls the keyboard and the first gamepad into every Input
// component. Edge-triggered actions are true only on the press frame.
type InputSystem struct {
	poll func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{poll: pollInput}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.poll == nil {
		return
	}

	state := i.poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = state
	})
}

func pollInput() component.Input {
	in := component.Input{
		Left:           ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:          ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		JumpPressed:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		ExitPressed:    inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		RestartPressed: inpututil.IsKeyJustPressed(ebiten.KeyR),
		DebugToggled:   inpututil.IsKeyJustPressed(ebiten.KeyBackquote),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			return in
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		in.Left = in.Left || x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		in.Right = in.Right || x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.ExitPressed = in.ExitPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		in.RestartPressed = in.RestartPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	if in.Left && in.Right {
		// A wins, matching the keyboard branch order.
		in.Right = false
	}
	return in
}
