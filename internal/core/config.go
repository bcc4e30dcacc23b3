package core

// Fallbacks for a RuntimeConfig that was built from a missing terminal size
// or an unset flag.
const (
	DefaultScreenW  = 80
	DefaultScreenH  = 24
	DefaultTickRate = 60
)

// RuntimeConfig describes the terminal a match is shown on and how fast it runs.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // 0 lets the platform pick a time-based seed
}

// WithDefaults fills non-positive sizes and rates with the defaults.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = DefaultScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = DefaultScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// GameState summarizes a match for the platform layer.
type GameState struct {
	Tick     uint64
	GameOver bool
	Paused   bool
	Winner   PlayerID // 0 while the match is running
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State GameState
}
