package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to size their layout and for deterministic puzzles.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for reproducible puzzles
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Score of the last reveal
	GameOver bool // A round has been revealed and awaits the next puzzle
}

// RoundResult describes a round that was just revealed.
type RoundResult struct {
	Rows     int     // Grid row count
	SeedHex  string  // The answer
	GuessHex string  // The committed guess
	Accuracy float64 // In [0, 1]
	DeltaE   float64 // Perceptual distance between guess and answer
	Score    int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Round is set only on the tick that revealed a round.
	Round *RoundResult
}
