// internal/game/play.go
//
// The interactive loop for one game.
//
//	AwaitingGuess → Validating → Scoring → Continue | Won | Exhausted
//
// Invalid input re-prompts without consuming an attempt. A valid guess is
// scored, printed and hashed into the history. The loop stops on an exact
// match or once MaxAttempts valid guesses are recorded.
package game

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordtia/internal/words"
)

// ErrInputClosed is returned when the console reaches end of input before the
// game is decided. No Result is produced in that case.
var ErrInputClosed = errors.New("game: input closed")

// Console is the line-oriented port the loop talks to.
type Console interface {
	// ReadLine writes prompt and returns the next line of input without its
	// line terminator. io.EOF means no further input will arrive.
	ReadLine(prompt string) (string, error)
	// WriteLine prints a plain line.
	WriteLine(line string)
	// Announce prints a highlighted banner line.
	Announce(line string)
}

var invalidGuessMsg = fmt.Sprintf("❌ Guess must be exactly %d alphabetic letters.", WordLength)

// Play runs one game to a terminal state and returns its outcome.
func Play(src words.Source, con Console, cfg Config) (*Outcome, error) {
	cfg = cfg.withDefaults()

	secret, err := src.Word()
	if err != nil {
		return nil, fmt.Errorf("draw secret: %w", err)
	}
	secret = Normalize(secret)
	if !ValidGuess(secret) {
		return nil, fmt.Errorf("draw secret: %q is not a %d-letter word", secret, WordLength)
	}

	out := &Outcome{State: StateAwaitingGuess}
	hashes := make([]string, 0, cfg.MaxAttempts)
	var last string

	for !out.State.Terminal() {
		out.State = StateAwaitingGuess
		line, err := con.ReadLine("> ")
		if errors.Is(err, io.EOF) {
			return nil, ErrInputClosed
		}
		if err != nil {
			// a failed read is reported like bad input and re-prompted
			log.Warn().Err(err).Msg("read guess")
			con.WriteLine(invalidGuessMsg)
			continue
		}

		out.State = StateValidating
		guess := Normalize(line)
		if !ValidGuess(guess) {
			con.WriteLine(invalidGuessMsg)
			continue
		}

		out.State = StateScoring
		out.Attempts++
		fb := Evaluate(guess, secret)
		out.Board = append(out.Board, fb)
		hashes = append(hashes, HashWord(guess))
		last = guess
		con.WriteLine(fb.Symbols)
		con.WriteLine(fb.Letters)
		con.WriteLine("")

		switch {
		case guess == secret:
			out.State = StateWon
		case out.Attempts >= cfg.MaxAttempts:
			out.State = StateExhausted
		default:
			out.State = StateContinue
		}
	}

	success := last == secret
	if success {
		con.Announce("🎉 You guessed the word!")
	} else {
		con.Announce("💀 You didn't guess the word.")
	}
	con.WriteLine("")
	con.Announce("📊 Final Board:")
	for _, fb := range out.Board {
		con.WriteLine(fb.Symbols)
		con.WriteLine(fb.Letters)
		con.WriteLine("")
	}

	out.Result = Result{
		WordHash:    HashWord(secret),
		GuessHashes: hashes,
		Success:     success,
		Timestamp:   cfg.Now().UTC().Format(time.RFC3339),
	}
	log.Debug().
		Str("state", out.State.String()).
		Int("attempts", out.Attempts).
		Bool("success", success).
		Msg("game finished")
	return out, nil
}
