package csv

import (
	"bufio"
	"bytes"
	"io"
)

// lineReader is the Byte Source Adapter plus Line Assembler: it reads the
// underlying stream into physical-line-sized buffers, folding CRLF to LF
// and tracking the line number and byte offset consumed so far.
type lineReader struct {
	r    *bufio.Reader
	line int   // number of physical lines consumed so far
	pos  int64 // bytes consumed so far
}

func newLineReader(r io.Reader) *lineReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}
	return &lineReader{r: br}
}

// readLine returns the next physical line: bytes up to and including the
// terminating LF, or the final partial line at end-of-stream. isEOF is
// true when the stream is exhausted; it is still true alongside a
// non-empty buffer for a final line with no trailing newline.
//
// A trailing lone CR present only because the stream ended there (no
// following LF) is dropped. CRLF is folded to a single LF.
func (lr *lineReader) readLine() (line []byte, isEOF bool, err error) {
	line, err = lr.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// The physical line is longer than the bufio buffer; copy out
		// what we have and keep reading until the delimiter or EOF.
		full := append([]byte(nil), line...)
		for err == bufio.ErrBufferFull {
			line, err = lr.r.ReadSlice('\n')
			full = append(full, line...)
		}
		line = full
	}

	if err == io.EOF {
		isEOF = true
		err = nil
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
	} else if err != nil {
		return nil, false, err
	}

	lr.line++
	lr.pos += int64(len(line))

	if n := len(line); n >= 2 && line[n-2] == '\r' && line[n-1] == '\n' {
		line[n-2] = '\n'
		line = line[:n-1]
	}

	return line, isEOF, nil
}

// isBlankLine reports whether line is empty outside of a quoted field:
// either zero bytes (final EOF line with nothing in it) or a single LF.
func isBlankLine(line []byte) bool {
	return len(line) == 0 || bytes.Equal(line, []byte{'\n'})
}
