package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/memoryparasite/obj"
)

// Input polls the keyboard once per frame and exposes the player's intent
// plus the meta toggles.
type Input struct {
	left, right, jump, dash bool

	PauseJustPressed bool
	DebugJustPressed bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	i.left = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	i.right = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	i.jump = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeySpace)
	i.dash = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight)

	i.PauseJustPressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	i.DebugJustPressed = inpututil.IsKeyJustPressed(ebiten.KeyF1)
}

func (i *Input) Player() obj.Input {
	return obj.Input{
		Left:  i.left,
		Right: i.right,
		Jump:  i.jump,
		Dash:  i.dash,
	}
}
