package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLineStripsTerminators(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("crane\r\nplant\nquill"), &out, false)

	for _, want := range []string{"crane", "plant", "quill"} {
		got, err := c.ReadLine("> ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := c.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > ", out.String(), "no prompt after end of input")
}

func TestReadLineEmptyInput(t *testing.T) {
	c := New(strings.NewReader(""), io.Discard, false)
	_, err := c.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriteAndAnnounce(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, false)
	c.WriteLine("🟩 🟩")
	c.Announce("🎉 You guessed the word!")
	assert.Equal(t, "🟩 🟩\n🎉 You guessed the word!\n", out.String())
}

func TestAnnounceStyledKeepsText(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, true)
	c.Announce("📊 Final Board:")
	assert.Contains(t, out.String(), "📊 Final Board:")
}
