package csv

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, r *Reader) ([][]string, error) {
	t.Helper()
	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func TestReadSimple(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "basic record",
			input: "a,b,c\n",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "crlf terminated",
			input: "a,b,c\r\n1,2,3\r\n",
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "bare cr kept inside field",
			input: "a,b\rc,d\r\n",
			want:  [][]string{{"a", "b\rc", "d"}},
		},
		{
			name:  "blank lines skipped",
			input: "a,b,c\n\nd,e,f\n\n",
			want:  [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name:  "quoted field with embedded delimiter and newline",
			input: "\"two\nline\",\"one line\",\"three\nline\nfield\"",
			want:  [][]string{{"two\nline", "one line", "three\nline\nfield"}},
		},
		{
			name:  "crlf inside quoted field folds to lf",
			input: "A,\"Hello\r\nHi\",B\r\n",
			want:  [][]string{{"A", "Hello\nHi", "B"}},
		},
		{
			name:  "doubled quote unescapes",
			input: `"a,a","b""b",c` + "\n",
			want:  [][]string{{"a,a", `b"b`, "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			r.FieldsPerRecord = -1
			got, err := readAll(t, r)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !recordsEqual(got, tt.want) {
				t.Errorf("Read() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadQuoteErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantLine   int
		wantColumn int
	}{
		{
			name:       "bare quote in unquoted field",
			input:      "a\"\"b,c\n",
			wantLine:   1,
			wantColumn: 2,
		},
		{
			name:       "unterminated quote, odd run of quote bytes",
			input:      `"""""""""`,
			wantLine:   1,
			wantColumn: 8,
		},
		{
			name:       "trailing bare cr after closing quote",
			input:      "\"field\"\r\r",
			wantLine:   1,
			wantColumn: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			r.FieldsPerRecord = -1
			_, err := readAll(t, r)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Read() error = %v, want *ParseError", err)
			}
			if !errors.Is(perr.Err, ErrQuote) {
				t.Errorf("Err = %v, want ErrQuote", perr.Err)
			}
			if perr.Line != tt.wantLine || perr.Column != tt.wantColumn {
				t.Errorf("position = (%d,%d), want (%d,%d)", perr.Line, perr.Column, tt.wantLine, tt.wantColumn)
			}
		})
	}
}

func TestReadEvenQuotesSucceeds(t *testing.T) {
	r := NewReader(strings.NewReader(`""""""""`))
	r.FieldsPerRecord = -1
	got, err := readAll(t, r)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := [][]string{{`"""`}}
	if !recordsEqual(got, want) {
		t.Errorf("Read() = %#v, want %#v", got, want)
	}
}

func TestLazyQuotes(t *testing.T) {
	r := NewReader(strings.NewReader("a\"b,c\n"))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	got, err := readAll(t, r)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := [][]string{{`a"b`, "c"}}
	if !recordsEqual(got, want) {
		t.Errorf("Read() = %#v, want %#v", got, want)
	}
}

func TestFieldCountMismatch(t *testing.T) {
	r := NewReader(strings.NewReader("a,b,c\nd,e\n"))
	_, err := r.Read()
	if err != nil {
		t.Fatalf("first Read() error = %v", err)
	}
	_, err = r.Read()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("second Read() error = %v, want *ParseError", err)
	}
	var fcErr *FieldCountError
	if !errors.As(perr.Err, &fcErr) {
		t.Fatalf("Err = %v, want *FieldCountError", perr.Err)
	}
	if fcErr.Expected != 3 || fcErr.Got != 2 {
		t.Errorf("Expected=%d Got=%d, want 3,2", fcErr.Expected, fcErr.Got)
	}
	if perr.Line != 2 || perr.Column != 3 {
		t.Errorf("position = (%d,%d), want (2,3)", perr.Line, perr.Column)
	}
}

func TestVariableFieldCountAllowed(t *testing.T) {
	r := NewReader(strings.NewReader("a,b,c\nd,e\n"))
	r.FieldsPerRecord = -1
	got, err := readAll(t, r)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := [][]string{{"a", "b", "c"}, {"d", "e"}}
	if !recordsEqual(got, want) {
		t.Errorf("Read() = %#v, want %#v", got, want)
	}
}

func TestSkipHeader(t *testing.T) {
	r := NewReader(strings.NewReader("name,age\nalice,30\n"))
	r.SkipHeader = true
	r.FieldsPerRecord = -1
	got, err := readAll(t, r)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := [][]string{{"alice", "30"}}
	if !recordsEqual(got, want) {
		t.Errorf("Read() = %#v, want %#v", got, want)
	}
	if len(r.Header) != 2 || r.Header[0] != "name" || r.Header[1] != "age" {
		t.Errorf("Header = %#v, want [name age]", r.Header)
	}
}

func TestCustomDelimiter(t *testing.T) {
	r := NewReader(strings.NewReader("a;b;c\n"))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	got, err := readAll(t, r)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := [][]string{{"a", "b", "c"}}
	if !recordsEqual(got, want) {
		t.Errorf("Read() = %#v, want %#v", got, want)
	}
}

func TestInvalidDelimiter(t *testing.T) {
	r := NewReader(strings.NewReader("a,b\n"))
	r.Comma = '"'
	_, err := r.Read()
	if !errors.Is(err, ErrInvalidDelim) {
		t.Errorf("Read() error = %v, want ErrInvalidDelim", err)
	}
}

func TestFieldPos(t *testing.T) {
	r := NewReader(strings.NewReader("aa,\"bb\",ccc\n"))
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	line, col := r.FieldPos(2)
	if line != 1 || col != 9 {
		t.Errorf("FieldPos(2) = (%d,%d), want (1,9)", line, col)
	}
}

func recordsEqual(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
