package protocol

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/go-faster/errors"
)

// DefaultMaxLineBytes bounds a single message on a line-delimited stream.
const DefaultMaxLineBytes = 64 * 1024

var (
	// ErrMalformed marks a line that could not be decoded. The stream itself is
	// still usable and the next call to Decode reads the following line.
	ErrMalformed = errors.New("malformed message")
	// ErrLineTooLong is returned when a line exceeds the configured maximum.
	// The stream is unusable afterwards.
	ErrLineTooLong = errors.New("message exceeds maximum line length")
)

// Decoder reads newline-delimited messages.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder returns a Decoder reading from r. Lines longer than maxLineBytes
// fail with ErrLineTooLong; a non-positive value selects DefaultMaxLineBytes.
func NewDecoder(r io.Reader, maxLineBytes int) *Decoder {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(4096, maxLineBytes)), maxLineBytes)

	return &Decoder{scanner: scanner}
}

// Decode returns the next message. Blank lines are skipped. It returns io.EOF
// once the underlying reader is exhausted.
func (d *Decoder) Decode() (Message, error) {
	for d.scanner.Scan() {
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		m, err := Unmarshal(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		return m, nil
	}

	if err := d.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, ErrLineTooLong
		}

		return nil, fmt.Errorf("read message: %w", err)
	}

	return nil, io.EOF
}

// Encoder writes newline-delimited messages. It is not safe for concurrent use.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes m followed by a newline and flushes.
func (e *Encoder) Encode(m Message) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}

	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("flush message: %w", err)
	}

	return nil
}
