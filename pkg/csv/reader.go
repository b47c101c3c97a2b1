package csv

import (
	"bytes"
	"io"
)

// Reader reads records from a delimiter-separated stream.
//
// As returned by NewReader, a Reader expects input conforming to RFC 4180
// plus the relaxations documented on each field below. The exported
// fields may be changed to customize parsing before the first call to
// Read, but must not be mutated concurrently with a call in progress.
type Reader struct {
	// Comma is the field delimiter. Set to ',' by NewReader. Must not be
	// '\n', '\r', or '"'.
	Comma byte

	// LazyQuotes relaxes quote-state errors: a quote may appear in an
	// unquoted field, and a non-doubled quote may appear inside a quoted
	// field, both treated as literal bytes instead of errors.
	LazyQuotes bool

	// FieldsPerRecord controls the field-count policy:
	//   > 0: every record must have exactly this many fields.
	//   = 0: the first record's width is adopted as the required width.
	//   < 0: no validation; records may have variable field counts.
	FieldsPerRecord int

	// SkipHeader causes the first record read to be discarded before the
	// caller sees any record.
	SkipHeader bool

	// Header, if non-nil, is used as the discarded header when
	// SkipHeader is set; otherwise it is populated from that record once
	// read, so callers can retrieve the column names without consuming a
	// record themselves.
	Header []string

	// Encoding names the text encoding used to decode field bytes into
	// strings. The empty string (the default) means strict UTF-8
	// validation. See decode.go for recognized names.
	Encoding string

	src *lineReader

	rawLine []byte // remaining bytes of the physical line being scanned
	lineNo  int    // line number of the start of rawLine
	eofHit  bool   // whether the last fetched line carried isEOF

	record    []byte // accumulator for the current record's field bytes
	fieldEnds []int  // end offset (within record) of each field
	positions []position

	skipped bool
	decoder *decoder
}

type position struct {
	line, col int
}

// NewReader returns a new Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		Comma: ',',
		src:   newLineReader(r),
	}
}

// Read reads one record (a slice of fields) from the stream. Each call
// returns newly allocated strings; the underlying byte buffer is not
// shared between calls.
//
// If the stream is exhausted with no more records, Read returns
// (nil, io.EOF).
func (r *Reader) Read() (record []string, err error) {
	if err := validateComma(r.Comma); err != nil {
		return nil, err
	}
	fields, err := r.readRecordBytes()
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, io.EOF
	}

	if r.decoder == nil {
		r.decoder, err = newDecoder(r.Encoding)
		if err != nil {
			return nil, err
		}
	}

	out := make([]string, len(fields))
	for i, f := range fields {
		s, derr := r.decoder.decode(f)
		if derr != nil {
			return nil, derr
		}
		out[i] = s
	}
	return out, nil
}

// ReadAll reads all remaining records from the stream. A successful call
// returns err == nil, not err == io.EOF; ReadAll treats end of file as
// the expected termination, not an error.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// FieldPos returns the 1-based (line, column) at which field i of the
// most recently returned record began. It panics if i is out of range
// for that record.
func (r *Reader) FieldPos(i int) (line, col int) {
	if i < 0 || i >= len(r.positions) {
		panic("csv: FieldPos index out of range")
	}
	p := r.positions[i]
	return p.line, p.col
}

// readRecordBytes drives parseRecord, transparently skipping blank
// lines (handled inside parseRecord) and the optional header record,
// and enforces the field-count policy.
func (r *Reader) readRecordBytes() (fields [][]byte, err error) {
	fields, err = r.parseRecord()
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, nil
	}

	if r.SkipHeader && !r.skipped {
		r.skipped = true
		if r.Header == nil {
			hdr := make([]string, len(fields))
			for i, f := range fields {
				hdr[i] = string(f)
			}
			r.Header = hdr
		}
		return r.readRecordBytes()
	}

	if err := r.checkFieldCount(fields); err != nil {
		return fields, err
	}
	return fields, nil
}

func (r *Reader) checkFieldCount(fields [][]byte) error {
	n := len(fields)
	switch {
	case r.FieldsPerRecord < 0:
		return nil
	case r.FieldsPerRecord == 0:
		r.FieldsPerRecord = n
		return nil
	case n != r.FieldsPerRecord:
		last := r.positions[len(r.positions)-1]
		return &ParseError{
			StartLine: r.positions[0].line,
			Line:      last.line,
			Column:    last.col,
			Err: &FieldCountError{
				Line:     last.line,
				Column:   last.col,
				Expected: r.FieldsPerRecord,
				Got:      n,
			},
		}
	}
	return nil
}

// nextLine fetches the next physical line from the byte source / line
// assembler and updates rawLine/lineNo/eofHit accordingly.
func (r *Reader) nextLine() error {
	line, isEOF, err := r.src.readLine()
	if err != nil {
		return err
	}
	r.rawLine = line
	r.lineNo = r.src.line
	r.eofHit = isEOF
	return nil
}

// parseRecord implements the core state machine of spec.md §4.3. It
// returns (nil, nil) when, after skipping any run of blank lines, the
// source is exhausted with no record to report.
func (r *Reader) parseRecord() (fields [][]byte, err error) {
	// Obtain the first non-empty physical line, skipping blank lines.
	for {
		if r.rawLine == nil && !r.eofHit {
			if err := r.nextLine(); err != nil {
				return nil, err
			}
		}
		if r.rawLine == nil {
			// Only reachable once eofHit with nothing buffered: no more
			// input at all.
			return nil, nil
		}
		if isBlankLine(r.rawLine) {
			consumedEOF := r.eofHit
			r.rawLine = nil
			if consumedEOF {
				return nil, nil
			}
			continue
		}
		break
	}

	r.record = r.record[:0]
	r.fieldEnds = r.fieldEnds[:0]
	r.positions = r.positions[:0]

	recordStartLine := r.lineNo
	line := r.rawLine
	lineNo := r.lineNo
	col := 1

fieldStart:
	for {
		if len(line) == 0 || line[0] != '"' {
			// unquoted field
			fieldCol := col
			idx := bytes.IndexByte(line, r.Comma)
			var field []byte
			hasDelim := idx >= 0
			if hasDelim {
				field = line[:idx]
			} else {
				field = trimTrailingLF(line)
			}

			if !r.LazyQuotes {
				if qi := bytes.IndexByte(field, '"'); qi >= 0 {
					r.rawLine = nil
					return nil, &ParseError{
						StartLine: recordStartLine,
						Line:      lineNo,
						Column:    fieldCol + qi,
						Err:       ErrQuote,
					}
				}
			}

			r.record = append(r.record, field...)
			r.fieldEnds = append(r.fieldEnds, len(r.record))
			r.positions = append(r.positions, position{lineNo, fieldCol})

			if hasDelim {
				line = line[idx+1:]
				col = fieldCol + idx + 1
				continue fieldStart
			}

			r.rawLine = nil
			r.lineNo = lineNo
			break fieldStart
		}

		// quoted field
		fieldLine := lineNo
		fieldCol := col
		line = line[1:]
		col++

		// lastQuoteLine/lastQuoteCol track the most recently matched quote
		// byte. If the field never closes, the unterminated-quote error is
		// reported there rather than at the field's start: it is the
		// point where the scan last made progress before running dry.
		lastQuoteLine, lastQuoteCol := fieldLine, fieldCol

		for {
			qi := bytes.IndexByte(line, '"')
			if qi >= 0 {
				quoteCol := col + qi
				lastQuoteLine, lastQuoteCol = lineNo, quoteCol
				r.record = append(r.record, line[:qi]...)
				line = line[qi+1:]
				col = quoteCol + 1

				var next byte
				if len(line) > 0 {
					next = line[0]
				}
				switch {
				case next == '"':
					r.record = append(r.record, '"')
					line = line[1:]
					col++
					continue
				case next == r.Comma:
					line = line[1:]
					col++
					r.fieldEnds = append(r.fieldEnds, len(r.record))
					r.positions = append(r.positions, position{fieldLine, fieldCol})
					continue fieldStart
				case len(line) == 0, isTrailingLFOnly(line):
					r.fieldEnds = append(r.fieldEnds, len(r.record))
					r.positions = append(r.positions, position{fieldLine, fieldCol})
					r.rawLine = nil
					r.lineNo = lineNo
					break fieldStart
				default:
					if r.LazyQuotes {
						r.record = append(r.record, '"')
						continue
					}
					r.rawLine = nil
					return nil, &ParseError{
						StartLine: recordStartLine,
						Line:      lineNo,
						Column:    quoteCol,
						Err:       ErrQuote,
					}
				}
			}

			// No closing quote in the remaining slice.
			if len(line) > 0 {
				r.record = append(r.record, line...)
				if err := r.nextLine(); err != nil {
					return nil, err
				}
				if r.rawLine == nil {
					// Stream ended inside an open quote.
					if r.LazyQuotes {
						r.fieldEnds = append(r.fieldEnds, len(r.record))
						r.positions = append(r.positions, position{fieldLine, fieldCol})
						break fieldStart
					}
					return nil, &ParseError{
						StartLine: recordStartLine,
						Line:      lastQuoteLine,
						Column:    lastQuoteCol,
						Err:       ErrQuote,
					}
				}
				line = r.rawLine
				lineNo = r.lineNo
				col = 1
				continue
			}

			// Empty slice with no more input: unterminated quote.
			if r.LazyQuotes {
				r.fieldEnds = append(r.fieldEnds, len(r.record))
				r.positions = append(r.positions, position{fieldLine, fieldCol})
				r.rawLine = nil
				break fieldStart
			}
			r.rawLine = nil
			return nil, &ParseError{
				StartLine: recordStartLine,
				Line:      lastQuoteLine,
				Column:    lastQuoteCol,
				Err:       ErrQuote,
			}
		}
	}

	fields = make([][]byte, len(r.fieldEnds))
	start := 0
	for i, end := range r.fieldEnds {
		fields[i] = r.record[start:end]
		start = end
	}
	return fields, nil
}

func trimTrailingLF(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		return b[:n-1]
	}
	return b
}

func isTrailingLFOnly(b []byte) bool {
	return len(b) == 1 && b[0] == '\n'
}
