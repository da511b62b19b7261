// internal/words/words.go
//
// Secret word supply for the game loop.
//
// Word lists:
//   - Default(): the closed list compiled in from assets/answers.txt.
//   - Load(path): one word per line from a file (WORDS_FILE).
//
// Sources:
//   - NewRandom: uniform draw with crypto/rand.
//   - Fixed:     always the same word (tests, replays).
//   - NewDaily:  word of the day, see daily.go.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase; invalid lines are dropped.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordtia/assets"
)

const wordLength = 5

// ErrEmptyList is returned when a word list has no usable entries.
var ErrEmptyList = errors.New("words: list is empty")

// Source hands out secret words.
type Source interface {
	Word() (string, error)
}

// Default returns the embedded word list.
func Default() ([]string, error) {
	lines, err := assets.AnswersList()
	if err != nil {
		return nil, fmt.Errorf("words: read embedded list: %w", err)
	}
	return filter(lines)
}

// Load reads one word per line from a file,
// lowercases, trims, and keeps only valid 5-letter alphabetic words.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse is Load for an already open reader.
func Parse(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return filter(lines)
}

// filter normalizes lines and drops anything that cannot be a secret.
func filter(lines []string) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == wordLength && isAlpha(w) {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random draws uniformly from a fixed list.
type Random struct {
	list []string
}

// NewRandom builds a Random source. The list must not be empty.
func NewRandom(list []string) (*Random, error) {
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return &Random{list: append([]string(nil), list...)}, nil
}

// Word returns a cryptographically random entry of the list.
func (r *Random) Word() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(r.list))))
	if err != nil {
		return "", fmt.Errorf("words: random draw: %w", err)
	}
	return r.list[n.Int64()], nil
}

// Fixed is a Source that always returns itself.
type Fixed string

// Word implements Source.
func (f Fixed) Word() (string, error) { return string(f), nil }
