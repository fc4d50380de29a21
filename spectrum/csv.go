package spectrum

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses a comma-delimited two-column numeric table into a Spectrum.
// Each record must contain exactly two parseable numbers (wavenumber,
// intensity); anything else fails with ErrInvalidShape before any data is
// returned. Blank lines are skipped.
func ReadCSV(r io.Reader) (Spectrum, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // shape is validated per record below
	cr.TrimLeadingSpace = true

	var s Spectrum
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("spectrum: reading CSV: %w", err)
		}
		line++

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidShape, line, len(record))
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d wavenumber %q is not numeric", ErrInvalidShape, line, record[0])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d intensity %q is not numeric", ErrInvalidShape, line, record[1])
		}

		s = append(s, Point{Wavenumber: x, Intensity: y})
	}

	if len(s) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrInvalidShape)
	}
	return s, nil
}

// WriteDelimited serializes the spectrum one row per sample, columns joined
// by delim. Values are rendered with %.8g so at least eight significant
// digits survive a round trip through text.
func WriteDelimited(w io.Writer, s Spectrum, delim rune) error {
	for _, p := range s {
		if _, err := fmt.Fprintf(w, "%.8g%c%.8g\n", p.Wavenumber, delim, p.Intensity); err != nil {
			return fmt.Errorf("spectrum: writing row: %w", err)
		}
	}
	return nil
}

// Format renders the spectrum as delimited text, rows separated by newlines
// with no trailing newline. Tab-delimited output pastes directly into a
// spreadsheet.
func Format(s Spectrum, delim rune) string {
	var b strings.Builder
	for i, p := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%.8g%c%.8g", p.Wavenumber, delim, p.Intensity)
	}
	return b.String()
}
