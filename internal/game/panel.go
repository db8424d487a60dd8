package game

import (
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/ui"
)

// tuningPanel edits the rules of a running world.
type tuningPanel struct {
	*ui.UIPanel

	center *ui.Slider
	avoid  *ui.Slider
	match  *ui.Slider
	wall   *ui.Slider

	wallRule *ui.Checkbox
	debug    *ui.Checkbox
}

func newTuningPanel(g *Game) *tuningPanel {
	r := g.world.Rules()
	p := &tuningPanel{UIPanel: ui.NewUIPanel(10, 10, 260, 330, "Flock tuning (P to hide)")}

	p.AddSection("Rules")
	p.center = p.AddSlider("Cohesion", 0, max(0.0003, r.CenterNudge), r.CenterNudge)
	p.avoid = p.AddSlider("Separation", 0, max(0.1, r.AvoidNudge), r.AvoidNudge)
	p.match = p.AddSlider("Alignment", 0, max(0.1, r.MatchNudge), r.MatchNudge)
	p.wall = p.AddSlider("Wall push", 0, max(0.2, r.WallNudge), r.WallNudge)
	p.wallRule = p.AddCheckbox("Wall avoidance", r.WallAvoidance)

	p.AddSection("View")
	p.debug = p.AddCheckbox("Debug lines (Tab)", g.world.Controls.DebugVisible)
	p.AddButton("Reset flock (R)", func() { g.apply(simulation.CommandReset) })
	p.EndSection()

	push := func(float64) { g.world.SetRules(p.rules()) }
	p.center.OnChange = push
	p.avoid.OnChange = push
	p.match.OnChange = push
	p.wall.OnChange = push
	p.wallRule.OnToggle = func(bool) { g.world.SetRules(p.rules()) }
	p.debug.OnToggle = func(v bool) { g.world.Controls.DebugVisible = v }
	return p
}

// rules reads the current widget values.
func (p *tuningPanel) rules() simulation.Rules {
	return simulation.Rules{
		CenterNudge:   p.center.Value,
		AvoidNudge:    p.avoid.Value,
		MatchNudge:    p.match.Value,
		WallNudge:     p.wall.Value,
		WallAvoidance: p.wallRule.Value,
	}
}
