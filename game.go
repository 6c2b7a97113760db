package main

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/memoryparasite/audio"
	"github.com/milk9111/memoryparasite/collision"
	"github.com/milk9111/memoryparasite/common"
	"github.com/milk9111/memoryparasite/levels"
	"github.com/milk9111/memoryparasite/obj"
	"github.com/milk9111/memoryparasite/particles"
	"github.com/milk9111/memoryparasite/physics"
)

type fragment struct {
	pos       physics.Vec2
	collected bool
}

type Game struct {
	frames int
	debug  bool
	paused bool

	pauseUI *ebitenui.UI

	input     *Input
	phys      *physics.World
	coll      *collision.World
	level     *levels.Level
	levelName string
	player    *obj.Player
	enemies   *obj.Manager
	particles *particles.System
	audio     *audio.Manager

	fragments []fragment

	corruption       float64
	lossIteration    int
	ghostThreshold   bool
	visualNoiseTimer float64
	stepTimer        float64

	noiseHandle   audio.Handle
	noiseLooping  bool
	bossWasActive bool

	watcher *levels.Watcher
	rng     *rand.Rand
}

func NewGame(levelName string, debug, mute bool, levelDir string) *Game {
	audioMgr := audio.NewManager()
	audio.RegisterDefaults(audioMgr)
	if !mute {
		if err := audioMgr.Start(); err != nil {
			log.Printf("audio unavailable, running silent: %v", err)
		}
	}

	g := &Game{
		debug:     debug,
		input:     NewInput(),
		phys:      physics.NewWorld(physics.Vec2{}),
		coll:      collision.NewWorld(),
		particles: particles.NewSystem(),
		audio:     audioMgr,
		rng:       rand.New(rand.NewSource(rand.Int63())),
	}
	g.enemies = obj.NewManager(g.phys, g.coll)
	g.pauseUI = NewPauseUI(g)

	g.loadLevel(levelName)

	if debug && levelDir != "" {
		w, err := levels.NewWatcher(levelDir)
		if err != nil {
			log.Printf("level watcher: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g
}

func (g *Game) loadLevel(name string) {
	lvl, err := levels.Load(name)
	if err != nil {
		log.Printf("failed to load level %s: %v", name, err)
		names := levels.Names()
		if len(names) == 0 {
			log.Fatal("no embedded levels")
		}
		name = names[0]
		if lvl, err = levels.Load(name); err != nil {
			log.Fatalf("failed to load fallback level %s: %v", name, err)
		}
	}
	g.applyLevel(lvl)
	g.levelName = name
}

func (g *Game) applyLevel(lvl *levels.Level) {
	if g.enemies != nil {
		g.enemies.ResetForDeath(false)
	}
	if g.player != nil {
		g.phys.RemoveBody(g.player.Body)
	}

	g.level = lvl
	g.player = obj.NewPlayer(g.phys, lvl.Spawn)

	g.fragments = g.fragments[:0]
	for _, pos := range lvl.Fragments {
		g.fragments = append(g.fragments, fragment{pos: pos})
	}

	for _, pos := range lvl.GhostSpawns {
		g.enemies.SpawnLostGhost(pos)
	}
	if lvl.BossSpawn != nil {
		g.enemies.SpawnBoss(*lvl.BossSpawn)
	}

	g.ghostThreshold = false
	g.bossWasActive = g.enemies.Boss != nil
}

func (g *Game) Update() error {
	g.frames++
	g.input.Update()

	if g.input.PauseJustPressed {
		g.paused = !g.paused
	}
	if g.input.DebugJustPressed {
		g.debug = !g.debug
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.drainWatcher()

	dt := min(1.0/float64(ebiten.TPS()), common.MaxFrameDT)

	// Fixed per-step order: input, player velocity, integration, static
	// resolution, dynamic sweep, behaviors, then side effects.
	wasDashing := g.player.IsDashing
	wasGrounded := g.player.Grounded

	g.player.HandleInput(g.input.Player())
	g.player.UpdateVelocity(dt, g.corruption)

	if g.player.IsDashing && !wasDashing {
		g.audio.Play("dash", 0.7, false, 0)
	}
	if wasGrounded && !g.player.Grounded && g.player.Body.Velocity.Y < 0 {
		g.audio.Play("jump", 0.6, false, 0)
	}
	g.updateFootsteps(dt)

	g.phys.Step(dt)

	events := g.player.UpdateState(dt, g.level, g.corruption)

	g.coll.CheckAndResolve()

	res := g.enemies.Update(dt, g.player, g.level, g.particles, g.audio)

	memPercent := g.player.MemPercent()
	g.level.Update(dt, memPercent, g.player.Fragments, g.particles)

	if g.level.StandingOnCorrupted(g.player.Body, g.player.Width(), g.player.Height(), memPercent, g.player.Fragments) {
		g.player.Memory -= (5.0 + g.corruption*20.0) * dt
	}

	if events.HeadBang {
		g.player.Memory -= 10.0
		g.audio.Play("hitWall", 0.6, false, 1.0-memPercent)
		g.particles.Emit(g.player.Body.Position, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, particles.Options{})
	}

	for _, dmg := range res.Damage {
		g.player.Memory -= dmg.Amount
		g.audio.Play("hitWall", 1.0, false, 1.0-memPercent)
		g.particles.Emit(dmg.Pos, 8, color.NRGBA{R: 255, G: 80, B: 80, A: 255}, particles.Options{})
	}

	if res.NoiseHit {
		g.visualNoiseTimer = 0.2
	}
	if g.visualNoiseTimer > 0 {
		g.visualNoiseTimer -= dt
	}

	if res.BossHit {
		g.audio.Play("shock", 0.8, false, 0)
	}
	if g.bossWasActive && g.enemies.Boss == nil {
		// Boss died this frame.
		g.bossWasActive = false
		g.audio.Play("shock", 1.0, false, 0.3)
	}

	g.collectFragments()
	g.updateGhostThreshold(memPercent)
	g.updateLowMemoryNoise(memPercent)

	if g.player.Memory <= 0 {
		g.respawn()
	}

	g.particles.Update(dt)
	return nil
}

func (g *Game) collectFragments() {
	for i := range g.fragments {
		f := &g.fragments[i]
		if f.collected {
			continue
		}
		if g.player.Body.Position.Sub(f.pos).Length() < 30 {
			f.collected = true
			g.player.Fragments++
			g.audio.Play("heal", 1.0, false, 0)
			g.particles.Emit(f.pos, 25, color.NRGBA{R: 255, G: 220, B: 100, A: 255},
				particles.Options{SpeedMin: 60, SpeedMax: 220})
		}
	}
}

// updateGhostThreshold loses platforms and spawns ghosts once memory first
// drops under half.
func (g *Game) updateGhostThreshold(memPercent float64) {
	if memPercent >= 0.5 || g.ghostThreshold {
		return
	}
	g.ghostThreshold = true
	if g.rng.Float64() < 0.7 {
		spawns := g.level.MarkRandomLost(1+g.rng.Intn(2), g.rng)
		if len(spawns) > 0 {
			g.audio.Play("noise", 0.8, false, 0)
		}
		for _, pt := range spawns {
			g.enemies.SpawnLostGhost(pt)
			g.particles.Emit(pt, 30, color.NRGBA{R: 100, G: 100, B: 100, A: 150},
				particles.Options{SpeedMin: 50, SpeedMax: 200})
		}
	}
}

func (g *Game) updateFootsteps(dt float64) {
	vx := g.player.Body.Velocity.X
	if !g.player.Grounded || g.player.IsDashing || (vx < 10 && vx > -10) {
		return
	}
	g.stepTimer -= dt
	if g.stepTimer <= 0 {
		g.audio.Play("step", 0.5, false, 0)
		g.stepTimer = 0.28
	}
}

// updateLowMemoryNoise fades a looped static voice in under 20% memory.
func (g *Game) updateLowMemoryNoise(memPercent float64) {
	if memPercent < 0.2 {
		vol := (0.2 - memPercent) / 0.2 * 0.5
		if !g.noiseLooping {
			g.noiseHandle = g.audio.Play("noise", vol, true, 0.5)
			g.noiseLooping = true
		} else {
			g.noiseHandle.SetVolume(vol)
		}
	} else if g.noiseLooping {
		g.noiseHandle.Stop()
		g.noiseLooping = false
	}
}

func (g *Game) respawn() {
	g.lossIteration++
	g.corruption += 0.15

	g.particles.Emit(g.player.Body.Position, 50, color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		particles.Options{SpeedMin: 200, SpeedMax: 500})
	g.audio.Play("shock", 1.0, false, 0)

	g.enemies.ResetForDeath(true)
	g.level.RestoreAll()

	g.player.Memory = g.player.Cfg.MaxMem
	g.player.Body.Position = g.level.Spawn
	g.player.Body.Velocity = physics.Vec2{}

	// The world remembers every loss: more ghosts each iteration.
	spawnPts := g.level.GhostSpawns
	for i := 0; i < 2+g.lossIteration && len(spawnPts) > 0; i++ {
		g.enemies.SpawnLostGhost(spawnPts[i%len(spawnPts)])
	}
}

// Close releases OS resources held by the game (the level watcher).
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close level watcher: %v", err)
		}
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			lvl, err := levels.LoadFile(path)
			if err != nil {
				log.Printf("level reload %s: %v", path, err)
				continue
			}
			log.Printf("level reloaded: %s", path)
			g.applyLevel(lvl)
		case err := <-g.watcher.Errors:
			log.Printf("level watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
