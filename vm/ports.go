package vm

import (
	"bufio"
	"io"
	"strings"
)

// ---------------------------------------------------------------------------
// Injected ports: input, output, randomness
// ---------------------------------------------------------------------------

// InputPort supplies one line of user input per call. ReadLine blocks
// until a line is available; the returned text excludes the terminator.
type InputPort interface {
	ReadLine() (string, error)
}

// OutputPort receives program output. OUT appends its own newline;
// prompts are written without one.
type OutputPort interface {
	WriteText(text string) error
}

// RandSource is the random-number port. *math/rand.Rand satisfies it,
// so tests inject a seeded generator.
type RandSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform integer in [0, n). Panics if n <= 0, as
	// math/rand does; the interpreter validates ranges first.
	Intn(n int) int
}

// ReaderPort adapts an io.Reader into an InputPort, splitting on
// newlines and trimming a trailing carriage return.
type ReaderPort struct {
	br *bufio.Reader
}

// NewReaderPort wraps r.
func NewReaderPort(r io.Reader) *ReaderPort {
	return &ReaderPort{br: bufio.NewReader(r)}
}

func (p *ReaderPort) ReadLine() (string, error) {
	line, err := p.br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriterPort adapts an io.Writer into an OutputPort.
type WriterPort struct {
	w io.Writer
}

// NewWriterPort wraps w.
func NewWriterPort(w io.Writer) *WriterPort {
	return &WriterPort{w: w}
}

func (p *WriterPort) WriteText(text string) error {
	_, err := io.WriteString(p.w, text)
	return err
}
