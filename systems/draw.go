package systems

import (
	"math"

	"github.com/automoto/splashed/camera"
	cfg "github.com/automoto/splashed/config"
	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/messages"
)

// DrawBackground clears the screen and draws the world grid. It expects the
// camera transform to be applied.
func DrawBackground(c render.Canvas, cam camera.Config, vp camera.Viewport) {
	c.Clear(cfg.Background)

	size := cfg.Camera.GridSize
	if size <= 0 {
		return
	}
	b := camera.Visible(cam, vp)
	startCol := math.Floor(b.Left/size) * size
	endCol := math.Ceil(b.Right/size) * size
	startRow := math.Floor(b.Top/size) * size
	endRow := math.Ceil(b.Bottom/size) * size

	stroke := render.Stroked(cfg.GridLine, cfg.Camera.GridLine)
	for x := startCol; x <= endCol; x += size {
		c.Line(x, b.Top, x, b.Bottom, stroke)
	}
	for y := startRow; y <= endRow; y += size {
		c.Line(b.Left, y, b.Right, y, stroke)
	}
}

// DrawEntities draws every visible entity in map order. Culled entities and
// destroyed players are skipped. It expects the camera transform to be
// applied.
func DrawEntities(c render.Canvas, m entities.Map, cam camera.Config, vp camera.Viewport, debug bool) {
	for _, entry := range m.Sorted() {
		if p, ok := entry.Entity.(*entities.Player); ok && p.Destroyed() {
			continue
		}
		if camera.Culled(cam, vp, entry.Entity.Position()) {
			continue
		}
		entry.Entity.Draw(c, debug)
	}
}

// DrawMinimap draws the radar in the bottom-right corner. Other entities
// are placed by bearing from the camera focus with distance clamped to the
// radar edge.
func DrawMinimap(c render.Canvas, m entities.Map, cam camera.Config, vp camera.Viewport, clientID messages.EntityID) {
	radius := cfg.Minimap.Radius

	c.Push()
	c.Translate(vp.Width-cfg.Minimap.Offset, vp.Height-cfg.Minimap.Offset)
	c.Circle(0, 0, radius, render.Style{Fill: cfg.Background, Stroke: cfg.White})

	for _, entry := range m.Sorted() {
		if entry.ID == clientID {
			continue
		}
		if p, ok := entry.Entity.(*entities.Player); ok && p.Destroyed() {
			continue
		}
		pos := entry.Entity.Position()
		dx, dy := pos.X-cam.X, pos.Y-cam.Y
		theta := math.Atan2(dy, dx)
		clamped := math.Min(math.Hypot(dx, dy)*cfg.Minimap.Scale, 1) * radius

		c.Push()
		c.Translate(math.Cos(theta)*clamped, math.Sin(theta)*clamped)
		entry.Entity.DrawIcon(c)
		c.Pop()
	}

	if p, ok := m.Player(clientID); ok && !p.Destroyed() {
		c.Push()
		c.Rotate(p.Rotation())
		c.Polygon(markerTriangle, render.Filled(cfg.White))
		c.Pop()
	}

	c.Pop()
}

// DrawHUD draws the speedometer around the minimap and the score. A nil
// player shows an unknown score and zero speed.
func DrawHUD(c render.Canvas, p *entities.Player, throttle float64, vp camera.Viewport) {
	drawSpeedometer(c, p, throttle, vp)
	drawScore(c, p, vp)
}

func drawSpeedometer(c render.Canvas, p *entities.Player, throttle float64, vp camera.Viewport) {
	start := 3.0 / 4 * math.Pi
	end := 7.0 / 4 * math.Pi

	c.Push()
	c.Translate(vp.Width-cfg.Minimap.Offset, vp.Height-cfg.Minimap.Offset)

	r := cfg.HUD.ThrottleDiameter / 2
	c.Arc(0, 0, r, start, end, render.Stroked(cfg.ThrottleBack, 4))
	if throttle > 0 {
		c.Arc(0, 0, r, start, start+throttle*(end-start), render.Stroked(cfg.White, 4))
	}

	speed := 0.0
	if p != nil && !p.Destroyed() {
		speed = p.Speed()
	}
	segments := cfg.HUD.SpeedSegments
	interval := cfg.HUD.SegmentInterval
	gap := (math.Pi - interval*float64(segments)) / float64(segments-1)
	lit := 0.0
	if cfg.Player.MaxSpeed > 0 {
		lit = speed / cfg.Player.MaxSpeed * float64(segments)
	}
	sr := cfg.HUD.SpeedDiameter / 2
	for i := 0; float64(i) < lit && i < segments; i++ {
		col := cfg.SpeedGreen
		if i >= cfg.HUD.SpeedRedFrom {
			col = cfg.SpeedRed
		}
		from := start + (interval+gap)*float64(i)
		c.Arc(0, 0, sr, from, from+interval, render.Stroked(col, 12))
	}

	c.Pop()
}

func drawScore(c render.Canvas, p *entities.Player, vp camera.Viewport) {
	score := "?"
	if p != nil {
		score = itoa(p.Score)
	}
	c.Text("score: "+score, vp.Width-cfg.HUD.ScoreOffsetX, vp.Height-cfg.HUD.ScoreOffsetY,
		cfg.HUD.TextSize, render.AlignCenter, cfg.White)
}

// DrawFeed lists recent room events in the top-left corner, newest last.
func DrawFeed(c render.Canvas, lines []string) {
	lineHeight := cfg.HUD.TextSize * 1.4
	for i, line := range lines {
		c.Text(line, cfg.HUD.FeedX, cfg.HUD.FeedY+float64(i)*lineHeight, cfg.HUD.TextSize, render.AlignLeft, cfg.White)
	}
}

// DrawRespawnPrompt dims the screen and asks the player to click.
func DrawRespawnPrompt(c render.Canvas, vp camera.Viewport) {
	c.Rect(0, 0, vp.Width, vp.Height, render.Filled(cfg.Overlay))

	c.Push()
	c.Translate(vp.Width/2, vp.Height/2)
	c.Text("splashed!", 0, -32, 32, render.AlignCenter, cfg.White)
	c.Text("click to respawn", 0, 8, 16, render.AlignCenter, cfg.White)
	c.Pop()
}
