package gnt

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// lengthSize is the size of the little-endian total length prefix.
	lengthSize = 4
	// headerSize is the size of the length prefix plus tag code, width and height.
	headerSize = lengthSize + 6
)

// Record is one character sample decoded from a GNT stream.
// Pixels holds Width*Height 8-bit grayscale values, row-major, origin top-left.
type Record struct {
	TagCode uint16
	Width   uint16
	Height  uint16
	Pixels  []byte
}

// Len returns the on-disk length of the record, including the length prefix.
func (r *Record) Len() int {
	return headerSize + len(r.Pixels)
}

// MarshalBinary encodes the record in the GNT layout.
func (r *Record) MarshalBinary() ([]byte, error) {
	if int(r.Width)*int(r.Height) != len(r.Pixels) {
		return nil, ErrLengthMismatch
	}
	buf := make([]byte, r.Len())
	binary.LittleEndian.PutUint32(buf[0:], uint32(len(buf)))
	binary.LittleEndian.PutUint16(buf[4:], r.TagCode)
	binary.LittleEndian.PutUint16(buf[6:], r.Width)
	binary.LittleEndian.PutUint16(buf[8:], r.Height)
	copy(buf[headerSize:], r.Pixels)

	return buf, nil
}

// Parser reads character records one at a time from a GNT byte stream.
// It keeps no state besides the read cursor and never buffers the whole stream.
type Parser struct {
	r      io.Reader
	size   int64
	offset int64
	err    error
}

// NewParser returns a parser reading from r. The size is the total stream length in bytes;
// a negative size means unknown, in which case the stream ends at a clean EOF between records.
func NewParser(r io.Reader, size int64) *Parser {
	return &Parser{r: r, size: size}
}

// OpenFile opens the GNT file at path and returns a parser over it.
// The returned closer must be closed by the caller.
func OpenFile(path string) (*Parser, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &Error{Kind: KindFileOpen, Op: "open", Path: path, Err: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, &Error{Kind: KindFileOpen, Op: "stat", Path: path, Err: err}
	}
	if fi.IsDir() {
		f.Close()
		return nil, nil, &Error{Kind: KindFileOpen, Op: "open", Path: path, Err: errors.New("is a directory")}
	}
	return NewParser(bufio.NewReader(f), fi.Size()), f, nil
}

// Offset returns the number of bytes consumed so far.
func (p *Parser) Offset() int64 { return p.offset }

// Next returns the next record of the stream, or io.EOF once the stream is exhausted.
// Any malformed input is reported as a stream corruption error and is sticky:
// subsequent calls return the same error.
func (p *Parser) Next() (*Record, error) {
	if p.err != nil {
		return nil, p.err
	}
	rec, err := p.next()
	if err != nil {
		p.err = err
	}
	return rec, err
}

func (p *Parser) next() (*Record, error) {
	if p.size >= 0 && p.offset == p.size {
		return nil, io.EOF
	}

	var prefix [lengthSize]byte
	n, err := io.ReadFull(p.r, prefix[:])
	switch {
	case err == io.EOF && p.size < 0:
		return nil, io.EOF
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		return nil, corruptError(p.offset, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedLength, n, lengthSize))
	case err != nil:
		return nil, corruptError(p.offset, err)
	}

	length := int64(binary.LittleEndian.Uint32(prefix[:]))
	if length < headerSize {
		return nil, corruptError(p.offset, fmt.Errorf("%w: declared length %d is shorter than the record header", ErrLengthMismatch, length))
	}
	if p.size >= 0 && p.offset+length > p.size {
		return nil, corruptError(p.offset, fmt.Errorf("%w: declared length %d, %d bytes remaining", ErrOverrun, length, p.size-p.offset))
	}

	var header [headerSize - lengthSize]byte
	if n, err := io.ReadFull(p.r, header[:]); err != nil {
		return nil, corruptError(p.offset, fmt.Errorf("%w: got %d of %d header bytes", ErrTruncatedRecord, n, len(header)))
	}
	rec := &Record{
		TagCode: binary.LittleEndian.Uint16(header[0:]),
		Width:   binary.LittleEndian.Uint16(header[2:]),
		Height:  binary.LittleEndian.Uint16(header[4:]),
	}
	if rec.Width == 0 || rec.Height == 0 {
		return nil, corruptError(p.offset, fmt.Errorf("%w: %dx%d", ErrZeroDimension, rec.Width, rec.Height))
	}

	payload := length - headerSize
	if want := int64(rec.Width) * int64(rec.Height); payload != want {
		return nil, corruptError(p.offset, fmt.Errorf("%w: %d pixel bytes declared, %dx%d needs %d",
			ErrLengthMismatch, payload, rec.Width, rec.Height, want))
	}

	// Preallocate only when the stream size bounds the declared length.
	var pix bytes.Buffer
	if p.size >= 0 {
		pix.Grow(int(payload))
	}
	if n, err := io.CopyN(&pix, p.r, payload); err != nil {
		return nil, corruptError(p.offset, fmt.Errorf("%w: got %d of %d pixel bytes", ErrTruncatedRecord, n, payload))
	}
	rec.Pixels = pix.Bytes()
	p.offset += length

	return rec, nil
}

// Each calls fn for every record of the stream until the stream ends, fn returns an error
// or the context is cancelled. Reaching the end of the stream is not an error.
func (p *Parser) Each(ctx context.Context, fn func(*Record) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := p.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}
