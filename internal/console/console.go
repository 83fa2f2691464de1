package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrClosed is returned when reading from a closed console
var ErrClosed = errors.New("console closed")

// Console reads lines from an input stream and writes to an output stream
type Console struct {
	in          io.Reader
	out         io.Writer
	scanner     *bufio.Scanner
	interactive bool
	echo        bool
	closed      bool
}

// New wraps in and out. When in is a file that is not a terminal (piped
// stdin), every consumed line is echoed to out so transcripts stay readable.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:      in,
		out:     out,
		scanner: bufio.NewScanner(in),
	}
	if f, ok := in.(*os.File); ok {
		fd := f.Fd()
		c.interactive = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		c.echo = !c.interactive
	}
	return c
}

// Interactive reports whether input comes from a terminal
func (c *Console) Interactive() bool {
	return c.interactive
}

// ReadLine returns the next line without its line terminator. It returns
// io.EOF when input is exhausted.
func (c *Console) ReadLine() (string, error) {
	if c.closed {
		return "", ErrClosed
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	line := strings.TrimSuffix(c.scanner.Text(), "\r")
	if c.echo {
		fmt.Fprintln(c.out, line)
	}
	return line, nil
}

// Print writes to the output stream
func (c *Console) Print(a ...any) {
	fmt.Fprint(c.out, a...)
}

// Printf writes formatted output
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Println writes a line
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Close releases the input stream. It is safe to call more than once.
func (c *Console) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if closer, ok := c.in.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
