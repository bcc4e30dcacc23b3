package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-fighter/internal/combat"
	"github.com/vovakirdan/tui-fighter/internal/core"
)

// Layout
const (
	hudRows    = 5
	maxBarW    = 20
	flashTicks = 6 // Special meter flash period when full
	groundChar = '▀'
	fullChar   = '█'
	emptyChar  = '░'
	auraChar   = '*'
)

// Stick-figure poses, facing right. Column poseAnchor is the torso.
const poseAnchor = 2

var poses = map[combat.ActionState][]string{
	combat.Idle: {
		"  o   ",
		" /|\\  ",
		"  |   ",
		" / \\  ",
	},
	combat.Punch: {
		"  o   ",
		" /|--=",
		"  |   ",
		" / \\  ",
	},
	combat.Kick: {
		"  o   ",
		" /|\\  ",
		"  |\\__",
		" /    ",
	},
	combat.Block: {
		"  o]  ",
		" /|]  ",
		"  |   ",
		" / \\  ",
	},
	combat.Special: {
		" \\o/ *",
		"  |=**",
		"  |  *",
		" / \\  ",
	},
}

var mirrored = strings.NewReplacer("/", "\\", "\\", "/", "[", "]", "]", "[", "<", ">", ">", "<")

// Fighter colors
var playerColors = [2]core.Color{core.ColorBlue, core.ColorRed}

// Render draws the arena, both fighters, particles, the HUD and any overlay.
func (m *Match) Render(dst *core.Screen) {
	dst.Clear()
	v := newViewport(m.rules, dst)

	dst.DrawHLine(0, v.groundRow, dst.Width(), groundChar, core.ColorBrown)

	for i, f := range m.fighters {
		drawFighter(dst, v, f, playerColors[i])
	}
	for _, p := range m.particles.Particles() {
		col, row := v.project(p.X, p.Y)
		if row > v.top && row < v.groundRow {
			dst.SetColor(col, row, particleRune(p), p.Color)
		}
	}

	m.drawHUD(dst)

	switch m.phase {
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "ESC resume | ENTER restart | B menu")
	case PhaseOver:
		drawCenteredMessage(dst, m.winnerTitle(), m.overHint())
	}
}

// viewport maps world units onto terminal cells.
// Feet rest on the row above the ground line.
type viewport struct {
	width     int
	top       int
	groundRow int
	worldW    float64
	feetY     float64
}

func newViewport(r combat.Rules, dst *core.Screen) viewport {
	return viewport{
		width:     dst.Width(),
		top:       hudRows - 1,
		groundRow: dst.Height() - 1,
		worldW:    float64(r.ScreenWidth),
		feetY:     float64(r.GroundY() + r.FighterHeight/2),
	}
}

func (v viewport) project(x, y float64) (col, row int) {
	col = int(x * float64(v.width) / v.worldW)
	row = v.top + int(y*float64(v.groundRow-v.top)/v.feetY)
	return col, row
}

func drawFighter(dst *core.Screen, v viewport, f *combat.Fighter, color core.Color) {
	pose := poses[f.Action()]
	col, _ := v.project(float64(f.X()), 0)
	left := col - poseAnchor
	if f.Direction() == combat.DirLeft {
		left = col - (len(pose[0]) - 1 - poseAnchor)
	}
	top := v.groundRow - len(pose)

	for dy, line := range pose {
		if f.Direction() == combat.DirLeft {
			line = reverse(mirrored.Replace(line))
		}
		for dx, r := range line {
			if r == ' ' {
				continue
			}
			c := color
			if r == auraChar {
				c = core.ColorBrightYellow
			}
			dst.SetColor(left+dx, top+dy, r, c)
		}
	}
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// particleRune shrinks the glyph as the particle fades.
func particleRune(p Particle) rune {
	switch {
	case p.Life > 30:
		return '@'
	case p.Life > 15:
		return '*'
	case p.Life > 5:
		return '+'
	default:
		return '.'
	}
}

func (m *Match) drawHUD(dst *core.Screen) {
	w := dst.Width()
	barW := min(maxBarW, (w-24)/2)

	dst.DrawTextCentered(0, "MODE: "+m.mode.String(), core.ColorWhite)

	for i, f := range m.fighters {
		id := core.PlayerID(i + 1)
		rows := []struct {
			label string
			value float64
			max   float64
			fill  core.Color
			bg    core.Color
		}{
			{"HP", f.Health(), m.rules.MaxHealth, core.ColorGreen, core.ColorRed},
			{"EN", f.Energy(), m.rules.MaxEnergy, core.ColorBlue, core.ColorGray},
			{"SP", f.SpecialMeter(), m.rules.SpecialThreshold, m.meterColor(f), core.ColorGray},
		}

		name := m.playerLabel(id)
		x := 1
		if id == core.Player2 {
			x = w - 1 - max(len(name), barW+5)
		}
		dst.DrawTextColor(x, 0, name, playerColors[i])
		for j, row := range rows {
			drawBar(dst, x, j+1, barW, row.label, row.value, row.max, row.fill, row.bg)
		}
		if f.ComboCount() > 1 {
			dst.DrawTextColor(x, 4, fmt.Sprintf("%dx COMBO", f.ComboCount()), core.ColorYellow)
		}
	}
}

// meterColor is purple while charging and flashes once the special is ready.
func (m *Match) meterColor(f *combat.Fighter) core.Color {
	if f.SpecialMeter() < m.rules.SpecialThreshold {
		return core.ColorPurple
	}
	if (m.tick/flashTicks)%2 == 0 {
		return core.ColorYellow
	}
	return core.ColorOrange
}

// drawBar draws "XX [████░░░░]" with the fill clamped to the bar.
func drawBar(dst *core.Screen, x, y, width int, label string, value, maxValue float64, fill, bg core.Color) {
	if width <= 0 {
		return
	}
	filled := 0
	if maxValue > 0 {
		filled = core.Clamp(int(float64(width)*value/maxValue), 0, width)
	}
	dst.DrawTextColor(x, y, label+" [", core.ColorWhite)
	dst.DrawHLine(x+4, y, filled, fullChar, fill)
	dst.DrawHLine(x+4+filled, y, width-filled, emptyChar, bg)
	dst.SetColor(x+4+width, y, ']', core.ColorWhite)
}

func (m *Match) playerLabel(id core.PlayerID) string {
	if m.mode == ModeDemo {
		return fmt.Sprintf("CPU %d", id)
	}
	if m.cpuSide(id) {
		return "CPU"
	}
	if id == core.Player2 {
		return "PLAYER 2"
	}
	return "PLAYER 1"
}

func (m *Match) winnerTitle() string {
	switch {
	case m.mode == ModeSolo && m.winner == core.Player1:
		return "YOU WIN!"
	case m.mode == ModeSolo:
		return "CPU WINS!"
	default:
		return m.playerLabel(m.winner) + " WINS!"
	}
}

func (m *Match) overHint() string {
	if m.mode == ModeOnline {
		return "Q to leave"
	}
	return "ENTER rematch | B menu"
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorYellow)
	dst.DrawTextColor(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorWhite)
}
