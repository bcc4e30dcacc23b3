package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-fighter/internal/combat"
	"github.com/vovakirdan/tui-fighter/internal/core"
)

func TestRenderHUD(t *testing.T) {
	m := New(Options{Mode: ModeSolo})
	scr := core.NewScreen(80, 24)
	m.Render(scr)

	top := scr.Row(0)
	assert.Contains(t, top, "PLAYER 1")
	assert.Contains(t, top, "MODE: SOLO")
	assert.Contains(t, top, "CPU")
	assert.Contains(t, scr.Row(1), "HP ["+strings.Repeat("█", 20)+"]")
	assert.Contains(t, scr.Row(3), "SP ["+strings.Repeat("░", 20)+"]")
	assert.NotContains(t, scr.String(), "COMBO")
	assert.Equal(t, core.ColorGreen, scr.GetCell(5, 1).Color)
}

func TestRenderFightersStandOnGround(t *testing.T) {
	m := New(Options{Mode: ModeVersus})
	scr := core.NewScreen(80, 24)
	m.Render(scr)

	assert.Equal(t, strings.Repeat("▀", 80), scr.Row(23))
	assert.Equal(t, 'o', scr.Get(20, 19))
	assert.Equal(t, 'o', scr.Get(60, 19))
	assert.Equal(t, core.ColorBlue, scr.GetCell(20, 19).Color)
	assert.Equal(t, core.ColorRed, scr.GetCell(60, 19).Color)
	assert.Contains(t, scr.Row(0), "PLAYER 2")
}

func TestRenderPunchFacesOpponent(t *testing.T) {
	m := New(Options{Mode: ModeVersus})
	in := press(core.Player1, core.ActionPunch)
	in.Press(core.Player2, core.ActionPunch)
	m.StepMulti(in)

	scr := core.NewScreen(80, 24)
	m.Render(scr)

	assert.Contains(t, scr.Row(20), "/|--=")
	assert.Contains(t, scr.Row(20), "=--|\\")
}

func TestRenderComboAndOverlays(t *testing.T) {
	cfg := closeConfig()
	cfg.Fighter.MaxHealth = 10
	m := New(Options{Mode: ModeVersus, Config: cfg})
	scr := core.NewScreen(80, 24)

	m.StepMulti(press(core.Player1, core.ActionPunch))
	run(m, 20)
	m.StepMulti(press(core.Player1, core.ActionPunch))
	m.Render(scr)
	assert.Contains(t, scr.String(), "2x COMBO")

	m.StepMulti(press(core.Player1, core.ActionPause))
	m.Render(scr)
	assert.Contains(t, scr.String(), "PAUSED")

	m.StepMulti(press(core.Player1, core.ActionPause))
	run(m, 10)
	assert.True(t, m.IsGameOver())
	m.Render(scr)
	assert.Contains(t, scr.String(), "PLAYER 1 WINS!")
	assert.Contains(t, scr.String(), "ENTER rematch")
}

func TestRenderSoloResultTitles(t *testing.T) {
	m := New(Options{Mode: ModeSolo})
	m.Forfeit(core.Player2)
	scr := core.NewScreen(80, 24)
	m.Render(scr)
	assert.Contains(t, scr.String(), "CPU WINS!")

	m = New(Options{Mode: ModeSolo})
	m.Forfeit(core.Player1)
	m.Render(scr)
	assert.Contains(t, scr.String(), "YOU WIN!")
}

func TestMirroredPose(t *testing.T) {
	pose := poses[combat.Kick]
	assert.Equal(t, "__/|  ", reverse(mirrored.Replace(pose[2])))
}
