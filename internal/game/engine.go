// internal/game/engine.go
//
// Pure functions behind a single round:
//   - HashWord:   SHA-256 commitment for the secret and for each guess.
//   - Normalize/ValidGuess: shape checks for raw console input.
//   - Score:      per-position exact/present/absent verdicts.
//   - Render:     symbol line + uppercase letter line for the console.
//
// Scoring is a per-letter containment check, not frequency-aware: a letter that
// occurs once in the secret is marked present at every non-exact position of
// the guess that carries it. Existing attestations were produced with this
// rule, so it must not change silently.
package game

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashWord returns the lowercase hex SHA-256 digest of w.
func HashWord(w string) string {
	sum := sha256.Sum256([]byte(w))
	return hex.EncodeToString(sum[:])
}

// Normalize trims surrounding whitespace and lowercases raw input.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidGuess reports whether s is exactly WordLength ASCII letters.
func ValidGuess(s string) bool {
	return len(s) == WordLength && isAlpha(s)
}

// Score classifies every position of guess against secret.
// Both are expected to be validated words of equal length.
func Score(guess, secret string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(secret) && guess[i] == secret[i]:
			res[i] = MarkExact
		case strings.IndexByte(secret, guess[i]) >= 0:
			res[i] = MarkPresent
		default:
			res[i] = MarkAbsent
		}
	}
	return res
}

// Render builds the two console lines for a scored guess.
func Render(guess string, marks []Mark) (symbols, letters string) {
	tiles := make([]string, len(marks))
	for i, m := range marks {
		tiles[i] = m.Symbol()
	}
	chars := make([]string, len(guess))
	for i := 0; i < len(guess); i++ {
		chars[i] = strings.ToUpper(guess[i : i+1])
	}
	return strings.Join(tiles, " "), strings.Join(chars, "  ")
}

// Evaluate scores and renders guess in one step.
func Evaluate(guess, secret string) Feedback {
	marks := Score(guess, secret)
	symbols, letters := Render(guess, marks)
	return Feedback{Guess: guess, Marks: marks, Symbols: symbols, Letters: letters}
}

// AllExact returns true if every mark is MarkExact.
func AllExact(m []Mark) bool {
	for _, x := range m {
		if x != MarkExact {
			return false
		}
	}
	return len(m) > 0
}

// isAlpha checks that a string consists only of ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
