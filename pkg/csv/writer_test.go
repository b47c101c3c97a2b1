package csv

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteBasic(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		useCRLF bool
		want    string
	}{
		{
			name:    "unquoted fields",
			records: [][]string{{"a", "b", "c"}},
			want:    "a,b,c\n",
		},
		{
			name:    "field with delimiter gets quoted",
			records: [][]string{{"a,b", "c"}},
			want:    "\"a,b\",c\n",
		},
		{
			name:    "embedded quote doubled",
			records: [][]string{{`a"b`, "c"}},
			want:    "\"a\"\"b\",c\n",
		},
		{
			name:    "embedded newline quoted",
			records: [][]string{{"a\nb", "c"}},
			want:    "\"a\nb\",c\n",
		},
		{
			name:    "empty field not quoted",
			records: [][]string{{"", "a"}},
			want:    ",a\n",
		},
		{
			name:    "crlf mode translates embedded lf",
			records: [][]string{{"a\nb", "c"}},
			useCRLF: true,
			want:    "\"a\r\nb\",c\r\n",
		},
		{
			name:    "crlf mode drops lone cr inside field",
			records: [][]string{{"a\rb", "c"}},
			useCRLF: true,
			want:    "\"ab\",c\r\n",
		},
		{
			name:    "multiple records",
			records: [][]string{{"a", "b"}, {"1", "2"}},
			want:    "a,b\n1,2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			w.UseCRLF = tt.useCRLF
			if err := w.WriteAll(tt.records); err != nil {
				t.Fatalf("WriteAll() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteAll() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteHeader = true
	w.Header = []string{"name", "age"}
	if err := w.WriteAll([][]string{{"alice", "30"}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	want := "name,age\nalice,30\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteAll() = %q, want %q", got, want)
	}
}

func TestWriteInvalidDelimiter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Comma = '\n'
	err := w.Write([]string{"a", "b"})
	if !errors.Is(err, ErrInvalidDelim) {
		t.Errorf("Write() error = %v, want ErrInvalidDelim", err)
	}
}

func TestWriteCustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Comma = ';'
	if err := w.WriteAll([][]string{{"a", "b;c"}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	want := "a;\"b;c\"\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteAll() = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	records := [][]string{
		{"a,a", `b"b`, "c"},
		{"plain", "fields", "here"},
		{"multi\nline", "", "x"},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	r := NewReader(&buf)
	r.FieldsPerRecord = -1
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !recordsEqual(got, records) {
		t.Errorf("round trip = %#v, want %#v", got, records)
	}
}
