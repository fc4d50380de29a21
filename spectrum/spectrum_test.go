package spectrum

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	in := "100.5,12.25\n101,13\n101.5,11.75\n"

	s, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("row count: got %d want 3", s.Len())
	}
	if s[0].Wavenumber != 100.5 || s[0].Intensity != 12.25 {
		t.Fatalf("first row mismatch: %+v", s[0])
	}
	if s[2].Wavenumber != 101.5 || s[2].Intensity != 11.75 {
		t.Fatalf("last row mismatch: %+v", s[2])
	}
}

func TestReadCSVSkipsBlankLines(t *testing.T) {
	s, err := ReadCSV(strings.NewReader("1,2\n\n3,4\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("row count: got %d want 2", s.Len())
	}
}

func TestReadCSVShapeErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"one column", "1\n2\n3\n"},
		{"three columns", "1,2,3\n4,5,6\n"},
		{"non-numeric wavenumber", "abc,2\n"},
		{"non-numeric intensity", "1,xyz\n"},
		{"empty input", ""},
	}
	for _, tc := range cases {
		if _, err := ReadCSV(strings.NewReader(tc.in)); !errors.Is(err, ErrInvalidShape) {
			t.Fatalf("%s: expected ErrInvalidShape, got %v", tc.name, err)
		}
	}
}

func TestWriteDelimitedFormatting(t *testing.T) {
	s := Spectrum{
		{Wavenumber: 100, Intensity: 0.000012345678},
		{Wavenumber: 1234.5678, Intensity: -3},
	}

	var b strings.Builder
	if err := WriteDelimited(&b, s, '\t'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "100\t1.2345678e-05\n1234.5678\t-3\n"
	if b.String() != want {
		t.Fatalf("output mismatch:\ngot  %q\nwant %q", b.String(), want)
	}
}

func TestFormatNoTrailingNewline(t *testing.T) {
	s := Spectrum{{Wavenumber: 1, Intensity: 2}, {Wavenumber: 3, Intensity: 4}}

	got := Format(s, '\t')
	want := "1\t2\n3\t4"
	if got != want {
		t.Fatalf("format mismatch: got %q want %q", got, want)
	}
}

func TestWithIntensities(t *testing.T) {
	s := Spectrum{{Wavenumber: 1, Intensity: 10}, {Wavenumber: 2, Intensity: 20}}

	out, err := s.WithIntensities([]float64{5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Wavenumber != 1 || out[0].Intensity != 5 || out[1].Intensity != 6 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if s[0].Intensity != 10 {
		t.Fatal("original spectrum modified")
	}

	if _, err := s.WithIntensities([]float64{1}); err == nil {
		t.Fatal("length mismatch accepted")
	}
}

func TestStats(t *testing.T) {
	s := Spectrum{
		{Wavenumber: 1, Intensity: 2},
		{Wavenumber: 2, Intensity: 4},
		{Wavenumber: 3, Intensity: 6},
	}

	sum := s.Stats()
	if sum.Min != 2 || sum.Max != 6 {
		t.Fatalf("min/max mismatch: %+v", sum)
	}
	if math.Abs(sum.Mean-4) > 1e-12 {
		t.Fatalf("mean mismatch: got %g", sum.Mean)
	}
	if math.Abs(sum.StdDev-2) > 1e-12 {
		t.Fatalf("stddev mismatch: got %g", sum.StdDev)
	}
}
