package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/memoryparasite/common"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 10, G: 10, B: 18, A: 255})

	g.drawLevel(screen)
	g.drawFragments(screen)
	g.drawEnemies(screen)
	g.drawBoss(screen)
	g.drawPlayer(screen)
	g.particles.Draw(screen)
	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	memPercent := g.player.MemPercent()
	for _, p := range g.level.VisiblePlatforms(memPercent, g.player.Fragments) {
		c := color.NRGBA{R: 90, G: 110, B: 160, A: 255}
		switch {
		case p.Lost:
			c = color.NRGBA{R: 160, G: 60, B: 60, A: 200}
		case p.Glitch != "":
			c = color.NRGBA{R: 140, G: 80, B: 180, A: 220}
		case p.Conditional():
			c = color.NRGBA{R: 80, G: 160, B: 140, A: 220}
		}
		if ap := p.AppearProgress(); ap > 0 {
			c.A = uint8(float64(c.A) * (1.0 - ap))
		}
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), c, false)
	}

	if g.level.Tutorial != "" && g.frames < 600 {
		drawText(screen, g.level.Tutorial, 100, 80, color.NRGBA{R: 220, G: 220, B: 240, A: 255})
	}
}

func (g *Game) drawFragments(screen *ebiten.Image) {
	for _, f := range g.fragments {
		if f.collected {
			continue
		}
		pulse := 1.0 + 0.2*math.Sin(float64(g.frames)*0.1)
		vector.DrawFilledCircle(screen, float32(f.pos.X), float32(f.pos.Y), float32(8*pulse),
			color.NRGBA{R: 255, G: 220, B: 100, A: 230}, false)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.player
	pos := p.Body.Position

	w := p.Width() * p.GlitchSizeFactor
	h := p.Height() * p.GlitchSizeFactor

	c := color.NRGBA{R: 230, G: 230, B: 240, A: 255}
	if p.GlitchColor != nil {
		c = *p.GlitchColor
	}
	if p.IsDashing {
		c = color.NRGBA{R: 100, G: 200, B: 255, A: 180}
	}

	y := pos.Y - h/2
	if p.GlitchFlipY {
		y = pos.Y - h/2 + h*0.1 // glitched sprite sits slightly off
	}
	vector.DrawFilledRect(screen, float32(pos.X-w/2), float32(y), float32(w), float32(h), c, false)

	if g.debug {
		vector.StrokeRect(screen, float32(pos.X-p.Width()/2), float32(pos.Y-p.Height()/2),
			float32(p.Width()), float32(p.Height()), 2, color.NRGBA{G: 255, A: 255}, false)
		vel := p.Body.Velocity
		vector.StrokeLine(screen, float32(pos.X), float32(pos.Y),
			float32(pos.X+vel.X*0.1), float32(pos.Y+vel.Y*0.1), 2, color.NRGBA{R: 255, G: 255, A: 255}, false)
	}
}

func (g *Game) drawEnemies(screen *ebiten.Image) {
	for _, e := range g.enemies.Enemies {
		alpha := 1.0
		if e.IsDissolving {
			alpha = math.Max(0, 1.0-e.DissolveT*2.0)
		}
		cloud := color.NRGBA{R: 150, G: 150, B: 150, A: uint8(150 * alpha)}
		core := color.NRGBA{R: 80, G: 80, B: 100, A: uint8(200 * alpha)}

		pos := e.Body.Position
		for i := 0; i < 4; i++ {
			ang := e.AnimT + float64(i)*1.5
			ox := math.Cos(ang) * 10
			oy := math.Sin(ang) * 10
			scale := 1.0 + math.Sin(e.AnimT*2+float64(i))*0.3
			vector.DrawFilledCircle(screen, float32(pos.X+ox), float32(pos.Y+oy), float32(e.R*scale), cloud, false)
		}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(e.R*0.7), core, false)
	}
}

func (g *Game) drawBoss(screen *ebiten.Image) {
	b := g.enemies.Boss
	if b == nil {
		return
	}
	pos := b.Body.Position

	var c color.NRGBA
	if b.FreezeTimer > 0 {
		c = color.NRGBA{R: 150, G: 200, B: 255, A: 180}
	} else {
		c = color.NRGBA{
			R: uint8(common.Lerp(100, 255, b.Rage)),
			G: uint8(common.Lerp(100, 50, b.Rage)),
			B: uint8(common.Lerp(200, 100, b.Rage)),
			A: 180,
		}
	}

	numCircles := 6 + int(b.Rage*4)
	for i := 0; i < numCircles; i++ {
		ox := math.Sin(b.AnimT+float64(i)) * (30 + b.Rage*20)
		oy := math.Cos(b.AnimT*0.7+float64(i)) * (20 + b.Rage*15)
		r := b.R * (0.8 + math.Sin(b.AnimT*2+float64(i))*0.2)
		vector.DrawFilledCircle(screen, float32(pos.X+ox), float32(pos.Y+oy), float32(r), c, false)
	}

	arrowCol := color.NRGBA{G: 255, A: 255}
	glowCol := color.NRGBA{R: 50, G: 255, B: 50, A: 150}
	for _, atk := range b.Attacks {
		for _, t := range atk.Trail {
			a := uint8(255 * (t.Life / 0.6))
			drawText(screen, t.Char, t.Pos.X, t.Pos.Y, color.NRGBA{G: 255, A: a})
		}
		tail := atk.Pos.Sub(atk.Vel.Scale(0.06))
		vector.StrokeLine(screen, float32(atk.Pos.X), float32(atk.Pos.Y), float32(tail.X), float32(tail.Y), 10, glowCol, false)
		vector.StrokeLine(screen, float32(atk.Pos.X), float32(atk.Pos.Y), float32(tail.X), float32(tail.Y), 3, arrowCol, false)
	}

	for _, ray := range b.NoiseRays {
		alpha := uint8(200 * (ray.Timer / ray.MaxT))
		width := float32(12 + math.Sin(b.AnimT*20)*4)
		vector.StrokeLine(screen, float32(ray.Start.X), float32(ray.Start.Y), float32(ray.End.X), float32(ray.End.Y),
			width, color.NRGBA{R: 100, G: 255, B: 100, A: alpha}, false)
		vector.StrokeLine(screen, float32(ray.Start.X), float32(ray.Start.Y), float32(ray.End.X), float32(ray.End.Y),
			3, color.NRGBA{R: 200, G: 255, B: 200, A: alpha}, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	// Memory bar.
	memPercent := g.player.MemPercent()
	vector.DrawFilledRect(screen, 20, 20, 260, 18, color.NRGBA{R: 30, G: 30, B: 40, A: 220}, false)
	barCol := color.NRGBA{R: 100, G: 220, B: 140, A: 255}
	if memPercent < 0.3 {
		barCol = color.NRGBA{R: 220, G: 90, B: 90, A: 255}
	}
	vector.DrawFilledRect(screen, 22, 22, float32(256*memPercent), 14, barCol, false)

	drawText(screen, fmt.Sprintf("fragments: %d", g.player.Fragments), 20, 58, color.NRGBA{R: 255, G: 220, B: 100, A: 255})

	if b := g.enemies.Boss; b != nil {
		vector.DrawFilledRect(screen, common.BaseWidth/2-200, 20, 400, 14, color.NRGBA{R: 30, G: 30, B: 40, A: 220}, false)
		vector.DrawFilledRect(screen, common.BaseWidth/2-198, 22, float32(396*(b.HP/b.MaxHP)), 10,
			color.NRGBA{R: 200, G: 60, B: 120, A: 255}, false)
	}

	if g.visualNoiseTimer > 0 {
		// Cheap static flash while a noise ray connects.
		vector.DrawFilledRect(screen, 0, 0, common.BaseWidth, common.BaseHeight,
			color.NRGBA{R: 120, G: 255, B: 120, A: 20}, false)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f  mem: %.1f  corruption: %.2f  grounded: %v  particles: %d",
			ebiten.ActualFPS(), g.player.Memory, g.corruption, g.player.Grounded, g.particles.Count()))
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, c color.NRGBA) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, s, hudFace, op)
}
