// Package console adapts a reader/writer pair to the game's line port.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var bannerStyle = lipgloss.NewStyle().Bold(true)

// Console reads lines from r and writes to w.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
	eof    bool
}

// New wraps r and w. Banners are styled only when styled is true, so piped
// output and tests see plain text.
func New(r io.Reader, w io.Writer, styled bool) *Console {
	return &Console{in: bufio.NewReader(r), out: w, styled: styled}
}

// ReadLine prints prompt and reads one line, stripping "\n" or "\r\n".
// A final line without a terminator is returned before io.EOF.
func (c *Console) ReadLine(prompt string) (string, error) {
	if c.eof {
		return "", io.EOF
	}
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		c.eof = true
		if line == "" {
			return "", io.EOF
		}
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine prints line followed by a newline.
func (c *Console) WriteLine(line string) {
	fmt.Fprintln(c.out, line)
}

// Announce prints a banner line.
func (c *Console) Announce(line string) {
	if c.styled {
		line = bannerStyle.Render(line)
	}
	fmt.Fprintln(c.out, line)
}
