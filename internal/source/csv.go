package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV reads a delimited ledger. The delimiter is sniffed from the header
// line; input that is not valid UTF-8 is decoded as Windows-1252, which is
// what spreadsheet exports on pt-BR Windows produce.
func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, parseFailure(FormatCSV, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var in io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		in = transform.NewReader(in, charmap.Windows1252.NewDecoder())
	}

	r := csv.NewReader(in)
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		pe := &ParseError{Err: err}
		var ce *csv.ParseError
		if errors.As(err, &ce) {
			pe.Line = ce.Line
			pe.Err = ce.Err
		}
		return nil, pe
	}
	return records, nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first
// line, outside quotes. Comma wins ties.
func sniffDelimiter(data []byte) rune {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}

	counts := map[rune]int{',': 0, ';': 0, '\t': 0}
	quoted := false
	for _, b := range data {
		switch {
		case b == '"':
			quoted = !quoted
		case quoted:
		case b == ',' || b == ';' || b == '\t':
			counts[rune(b)]++
		}
	}

	best := ','
	for _, d := range []rune{';', '\t'} {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
