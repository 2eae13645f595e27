package aritext

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.amprs.dev/ari/ari"
)

// Decode parses a single ARI from text.
func Decode(text string) (ari.ARI, error) {
	return parseARI(text)
}

// Encode renders value as ARI text and writes it to w, followed by a
// newline.
func Encode(w io.Writer, value ari.ARI) error {
	text, err := EncodeString(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)

	return err
}

// Decoder reads a sequence of ARIs from a reader, one per logical
// "entry". Entries may themselves span several physical lines: if a line
// fails to parse on its own, the decoder appends the next line and
// retries, mirroring the reference CLI's tolerance of ARIs that were
// hand-wrapped across lines in a text file. A line is only reported as a
// hard error once appending further lines no longer helps (EOF reached).
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder returns a Decoder reading newline-separated ARI text entries
// from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{scanner: bufio.NewScanner(r)}
}

// Next returns the next decoded ARI, or io.EOF once the input is
// exhausted.
func (d *Decoder) Next() (ari.ARI, error) {
	var accum string

	for {
		if !d.scanner.Scan() {
			if err := d.scanner.Err(); err != nil {
				return nil, err
			}
			if accum != "" {
				return nil, fmt.Errorf("%w: incomplete trailing entry %q", ErrSyntax, accum)
			}

			return nil, io.EOF
		}

		line := d.scanner.Text()
		if accum == "" {
			accum = line
		} else {
			accum += line
		}
		if accum == "" {
			continue
		}

		val, err := parseARI(accum)
		if err == nil {
			return val, nil
		}
		if !errors.Is(err, ErrSyntax) {
			return nil, err
		}
		// retry with the next line appended
	}
}

// DecodeAll reads every entry from r until EOF.
func DecodeAll(r io.Reader) ([]ari.ARI, error) {
	dec := NewDecoder(r)

	var out []ari.ARI
	for {
		val, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, val)
	}
}
