package levels

import (
	"embed"
	"fmt"
	"image/color"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/memoryparasite/collision"
	"github.com/milk9111/memoryparasite/particles"
	"github.com/milk9111/memoryparasite/physics"
)

//go:embed *.yaml
var LevelsFS embed.FS

// ParticleEmitter is the fire-and-forget VFX sink the level feeds when a
// conditional platform materializes.
type ParticleEmitter interface {
	Emit(pos physics.Vec2, count int, col color.NRGBA, opts particles.Options)
}

// Platform is one piece of level geometry. The physics layer never sees
// this type; queries hand out plain collision rects. IDs are assigned at
// load time and are the stable identity used by projectile penetration
// tracking.
type Platform struct {
	ID int `yaml:"-"`

	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`

	Permanent   bool     `yaml:"permanent"`
	Lost        bool     `yaml:"lost"`
	MemoryReq   *float64 `yaml:"memory_req"`   // visible while memory <= req
	MemoryMin   *float64 `yaml:"memory_min"`   // visible while memory >= min
	FragmentReq *int     `yaml:"fragment_req"` // visible once enough fragments held
	BlinkFreq   *float64 `yaml:"blink_freq"`
	Glitch      string   `yaml:"glitch"` // "chaos" jitters position
	Gate        string   `yaml:"gate"`   // scripted visibility expression

	origX, origY float64
	glitchT      float64
	wasVisible   bool
	appearT      float64
	gateExpr     *gateExpr
}

// Conditional reports whether standing on this platform drains memory.
func (p *Platform) Conditional() bool {
	return p.Lost || p.MemoryReq != nil || p.MemoryMin != nil ||
		p.FragmentReq != nil || p.Glitch != "" || p.Gate != ""
}

func (p *Platform) Rect() collision.StaticRect {
	return collision.StaticRect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// AppearProgress is nonzero while the materialize animation runs.
func (p *Platform) AppearProgress() float64 {
	return p.appearT
}

// Level is a loaded level document. Owned by the game; the collision and
// physics layers only ever receive filtered rect lists.
type Level struct {
	Name        string         `yaml:"name"`
	Tutorial    string         `yaml:"tutorial"`
	Spawn       physics.Vec2   `yaml:"spawn"`
	BossSpawn   *physics.Vec2  `yaml:"boss_spawn"`
	Platforms   []*Platform    `yaml:"platforms"`
	Fragments   []physics.Vec2 `yaml:"fragments"`
	GhostSpawns []physics.Vec2 `yaml:"ghost_spawns"`

	elapsed float64
}

// Load reads an embedded level by basename (".yaml" optional).
func Load(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	return parse(data)
}

// LoadFile reads a level from disk; used by the debug live-reload path.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level file %s: %w", path, err)
	}
	return parse(data)
}

// Names lists the embedded levels in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

func parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	for i, p := range lvl.Platforms {
		p.ID = i + 1
		p.origX, p.origY = p.X, p.Y
		if p.Gate != "" {
			expr, err := compileGate(p.Gate)
			if err != nil {
				return nil, fmt.Errorf("platform %d gate %q: %w", p.ID, p.Gate, err)
			}
			p.gateExpr = expr
		}
	}
	return &lvl, nil
}

// Update advances per-platform timers, chaos jitter, and the materialize
// animation for platforms whose gate just opened.
func (l *Level) Update(dt float64, memPercent float64, fragments int, emitter ParticleEmitter) {
	if l == nil {
		return
	}
	l.elapsed += dt

	for _, p := range l.Platforms {
		visible := l.platformVisible(p, memPercent, fragments)

		if visible && !p.wasVisible &&
			(p.MemoryReq != nil || p.MemoryMin != nil || p.FragmentReq != nil || p.Gate != "") {
			p.appearT = 0.5
			if emitter != nil {
				emitter.Emit(
					physics.Vec2{X: p.X + p.W/2, Y: p.Y + p.H/2},
					15,
					color.NRGBA{R: 150, G: 100, B: 255, A: 255},
					particles.Options{SpeedMin: 50, SpeedMax: 150},
				)
			}
		}
		p.wasVisible = visible
		if p.appearT > 0 {
			p.appearT -= dt
		}

		if p.Lost || p.Glitch != "" || p.BlinkFreq != nil {
			p.glitchT += dt
		}

		if p.Glitch == "chaos" && !p.Permanent {
			p.X = p.origX + math.Sin(p.glitchT*5)*25
			p.Y = p.origY + math.Cos(p.glitchT*7)*20
			if rand.Float64() < 0.05 {
				p.W *= 0.9 + rand.Float64()*0.2
				if p.W < 20 {
					p.W = 20
				}
				if p.W > 500 {
					p.W = 500
				}
			}
		} else if p.Lost || p.Glitch != "" {
			p.X = p.origX
			p.Y = p.origY
		}
	}
}

func (l *Level) platformVisible(p *Platform, memPercent float64, fragments int) bool {
	if p.MemoryReq != nil && memPercent > *p.MemoryReq {
		return false
	}
	if p.MemoryMin != nil && memPercent < *p.MemoryMin {
		return false
	}
	if p.FragmentReq != nil && fragments < *p.FragmentReq {
		return false
	}
	if p.BlinkFreq != nil {
		// Blink speeds up as memory fills.
		freq := *p.BlinkFreq * (0.2 + memPercent*2.0)
		if math.Sin(l.elapsed*freq) <= 0 {
			return false
		}
	}
	if p.gateExpr != nil {
		ok, err := p.gateExpr.eval(memPercent, fragments, l.elapsed)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// VisiblePlatforms returns the platforms currently passing every gate.
func (l *Level) VisiblePlatforms(memPercent float64, fragments int) []*Platform {
	if l == nil {
		return nil
	}
	var visible []*Platform
	for _, p := range l.Platforms {
		if l.platformVisible(p, memPercent, fragments) {
			visible = append(visible, p)
		}
	}
	return visible
}

// ResolveCollision snaps the player box out of visible geometry. World
// corruption narrows every platform toward its center, so corrupted runs
// are literally harder to stand on.
func (l *Level) ResolveCollision(body *physics.RigidBody, width, height, memPercent, corruption float64, fragments int) (grounded, hitCeiling bool) {
	if l == nil || body == nil {
		return false, false
	}
	visible := l.VisiblePlatforms(memPercent, fragments)
	rects := make([]collision.StaticRect, 0, len(visible))
	for _, p := range visible {
		scaleW := 1.0 - corruption*0.2
		nw := p.W * scaleW
		nx := p.X + (p.W-nw)/2
		rects = append(rects, collision.StaticRect{X: nx, Y: p.Y, W: nw, H: p.H})
	}
	return collision.ResolveRectVsStatic(body, width, height, rects, 4.0, 0.01)
}

// StandingOnCorrupted reports whether the player box rests on a platform
// that drains memory.
func (l *Level) StandingOnCorrupted(body *physics.RigidBody, width, height, memPercent float64, fragments int) bool {
	if l == nil || body == nil {
		return false
	}
	px := body.Position.X - width/2
	py := body.Position.Y - height/2
	checkX, checkY := px+4, py+height
	checkW, checkH := width-8, 2.0

	for _, p := range l.VisiblePlatforms(memPercent, fragments) {
		if !p.Conditional() {
			continue
		}
		if checkX < p.X+p.W && checkX+checkW > p.X &&
			checkY < p.Y+p.H && checkY+checkH > p.Y {
			return true
		}
	}
	return false
}

// MarkRandomLost tags up to count eligible platforms as lost and returns
// ghost spawn points at their centers.
func (l *Level) MarkRandomLost(count int, rng *rand.Rand) []physics.Vec2 {
	if l == nil {
		return nil
	}
	var targets []*Platform
	for _, p := range l.Platforms {
		if !p.Lost && !p.Permanent && p.MemoryReq == nil {
			targets = append(targets, p)
		}
	}
	rng.Shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })

	var spawns []physics.Vec2
	for i := 0; i < count && i < len(targets); i++ {
		targets[i].Lost = true
		spawns = append(spawns, physics.Vec2{X: targets[i].X + targets[i].W/2, Y: targets[i].Y + targets[i].H/2})
	}
	return spawns
}

// RestoreAll clears every lost flag and replays the appear animation.
func (l *Level) RestoreAll() {
	if l == nil {
		return
	}
	for _, p := range l.Platforms {
		if p.Lost {
			p.Lost = false
			p.appearT = 0.5
		}
	}
}
