package levels

import (
	"fmt"

	"github.com/d5/tengo/v2"
)

// gateExpr is a compiled platform visibility expression. Levels can gate a
// platform on an arbitrary combination of the player's memory fraction
// (mem), fragments held (frags), and level time (t), e.g.
//
//	gate: "mem <= 0.5 && frags >= 2"
//
// Expressions are compiled once at load and re-evaluated per query.
// Evaluation happens only on the simulation thread.
type gateExpr struct {
	compiled *tengo.Compiled
}

func compileGate(expr string) (*gateExpr, error) {
	script := tengo.NewScript([]byte("visible := (" + expr + ")"))
	for name, value := range map[string]interface{}{
		"mem":   0.0,
		"frags": 0,
		"t":     0.0,
	} {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("add gate variable %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile gate: %w", err)
	}
	return &gateExpr{compiled: compiled}, nil
}

func (g *gateExpr) eval(mem float64, frags int, t float64) (bool, error) {
	if err := g.compiled.Set("mem", mem); err != nil {
		return false, err
	}
	if err := g.compiled.Set("frags", frags); err != nil {
		return false, err
	}
	if err := g.compiled.Set("t", t); err != nil {
		return false, err
	}
	if err := g.compiled.Run(); err != nil {
		return false, err
	}
	return g.compiled.Get("visible").Bool(), nil
}
