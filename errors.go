package gnt

import (
	"errors"
	"fmt"
)

// Kind classifies the failures a decoding run can produce.
type Kind int

// The failure kinds reported by the package.
const (
	KindUnknown Kind = iota
	KindConfig
	KindFileOpen
	KindStreamCorruption
	KindOutputWrite
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration"
	case KindFileOpen:
		return "file open"
	case KindStreamCorruption:
		return "stream corruption"
	case KindOutputWrite:
		return "output write"
	default:
		return "unknown"
	}
}

// Sentinel errors matching each kind with errors.Is.
var (
	ErrConfig      = errors.New("invalid configuration")
	ErrFileOpen    = errors.New("cannot open source file")
	ErrCorrupt     = errors.New("corrupt record stream")
	ErrOutputWrite = errors.New("cannot write output")
)

// Stream corruption details.
var (
	ErrTruncatedLength = errors.New("truncated length prefix")
	ErrTruncatedRecord = errors.New("truncated record")
	ErrLengthMismatch  = errors.New("record length does not match its dimensions")
	ErrOverrun         = errors.New("record overruns the end of the stream")
	ErrZeroDimension   = errors.New("zero width or height")
)

// Error describes a classified failure.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether the target is the sentinel error of the same kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindConfig:
		return ErrConfig
	case KindFileOpen:
		return ErrFileOpen
	case KindStreamCorruption:
		return ErrCorrupt
	case KindOutputWrite:
		return ErrOutputWrite
	}
	return nil
}

// KindOf returns the kind of the first classified error found in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func configError(format string, args ...any) error {
	return &Error{Kind: KindConfig, Op: "validate", Err: fmt.Errorf(format, args...)}
}

func corruptError(offset int64, err error) error {
	return &Error{Kind: KindStreamCorruption, Op: fmt.Sprintf("decode record at offset %d", offset), Err: err}
}

func writeError(op, path string, err error) error {
	return &Error{Kind: KindOutputWrite, Op: op, Path: path, Err: err}
}
