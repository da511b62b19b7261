// internal/game/types.go
//
// Core type definitions for the WordTia game engine.
// Defines:
//   - Mark: per-letter verdict of a guess (exact/present/absent).
//   - Feedback: one scored guess with its two console renderings.
//   - Result: the attestation record built once at game end.
//   - State/Outcome: where the loop finished and what it produced.

package game

import "time"

const (
	// WordLength is the fixed length of secrets and guesses.
	WordLength = 5
	// MaxAttempts is the default number of valid guesses per game.
	MaxAttempts = 6
)

// Mark represents the evaluation result for a single letter in a guess.
//   - "exact":   letter is correct and in the correct position.
//   - "present": letter occurs somewhere else in the secret.
//   - "absent":  letter does not occur in the secret at all.
type Mark string

const (
	MarkExact   Mark = "exact"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Symbol is the tile drawn for a mark on the symbol line.
func (m Mark) Symbol() string {
	switch m {
	case MarkExact:
		return "🟩"
	case MarkPresent:
		return "🟨"
	default:
		return "⬜"
	}
}

// Feedback is a scored guess. Marks is positionally aligned with Guess.
type Feedback struct {
	Guess   string
	Marks   []Mark
	Symbols string // e.g. "🟩 🟨 ⬜ ⬜ 🟩"
	Letters string // e.g. "C  R  A  T  E"
}

// Result is the record committed to the attestation sink.
// The JSON field names are part of the on-chain format.
type Result struct {
	WordHash    string   `json:"word_hash"`
	GuessHashes []string `json:"guess_hashes"`
	Success     bool     `json:"success"`
	Timestamp   string   `json:"timestamp"`
}

// State is a step of the game loop.
type State int

const (
	StateAwaitingGuess State = iota
	StateValidating
	StateScoring
	StateContinue
	StateWon
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateAwaitingGuess:
		return "awaiting_guess"
	case StateValidating:
		return "validating"
	case StateScoring:
		return "scoring"
	case StateContinue:
		return "continue"
	case StateWon:
		return "won"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Terminal reports whether the loop stops in this state.
func (s State) Terminal() bool { return s == StateWon || s == StateExhausted }

// Outcome is what a finished game hands back to the caller.
type Outcome struct {
	State    State
	Attempts int
	Board    []Feedback // display only; not part of the attestation
	Result   Result
}

// Config tunes a game. Zero values fall back to the defaults.
type Config struct {
	MaxAttempts int
	Now         func() time.Time
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = MaxAttempts
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
