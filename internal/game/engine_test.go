package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWordDeterministic(t *testing.T) {
	for _, w := range []string{"crane", "apple", "quill"} {
		h := HashWord(w)
		assert.Len(t, h, 64)
		assert.Equal(t, h, HashWord(w))
		assert.Equal(t, strings.ToLower(h), h)
	}
	assert.NotEqual(t, HashWord("crane"), HashWord("crate"))
	// sha256("apple")
	assert.Equal(t, "3a7bd3e2360a3d29eea436fcfb7e44c735d117c42d1c1835420b6b9942dd4f1b", HashWord("apple"))
}

func TestValidGuess(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"crane", true},
		{"CRANE", true},
		{"leap", false},
		{"cranes", false},
		{"", false},
		{"cr4ne", false},
		{"cr ne", false},
		{"cr-ne", false},
		{"crané", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidGuess(tc.in), "ValidGuess(%q)", tc.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "crane", Normalize("  CrAnE \r\n"))
}

func TestScoreCrateVsCrane(t *testing.T) {
	fb := Evaluate("crate", "crane")
	assert.Equal(t, []Mark{MarkExact, MarkExact, MarkExact, MarkAbsent, MarkExact}, fb.Marks)
	assert.Equal(t, "🟩 🟩 🟩 ⬜ 🟩", fb.Symbols)
	assert.Equal(t, "C  R  A  T  E", fb.Letters)
}

func TestScorePleadVsApple(t *testing.T) {
	marks := Score("plead", "apple")
	assert.Equal(t, []Mark{MarkPresent, MarkPresent, MarkPresent, MarkPresent, MarkAbsent}, marks)
}

// A letter that occurs once in the secret is marked present at every
// non-exact position that carries it.
func TestScoreDuplicateLettersUseContainment(t *testing.T) {
	marks := Score("eerie", "crane")
	assert.Equal(t, []Mark{MarkPresent, MarkPresent, MarkPresent, MarkAbsent, MarkExact}, marks)
}

func TestScoreExactMatch(t *testing.T) {
	for _, w := range []string{"crane", "apple", "shiny"} {
		marks := Score(w, w)
		require.Len(t, marks, len(w))
		assert.True(t, AllExact(marks))
	}
}

func TestScoreLengthAndDomain(t *testing.T) {
	secrets := []string{"crane", "apple", "mirth"}
	guesses := []string{"zzzzz", "elppa", "crate", "thirm"}
	for _, s := range secrets {
		for _, g := range guesses {
			marks := Score(g, s)
			require.Len(t, marks, len(g))
			for _, m := range marks {
				assert.Contains(t, []Mark{MarkExact, MarkPresent, MarkAbsent}, m)
			}
		}
	}
}

func TestAllExactEmpty(t *testing.T) {
	assert.False(t, AllExact(nil))
}
