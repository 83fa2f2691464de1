package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	ErrNoData            = errors.New("no data to export")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrFileNotFound      = errors.New("file not found")
	ErrIO                = errors.New("i/o failure")
	ErrParse             = errors.New("malformed content")
)

// UnsupportedFormatError reports a format with no registered adapter
type UnsupportedFormatError struct {
	Format string
	Known  []string
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unsupported format %q: no adapters registered", e.Format)
	}
	return fmt.Sprintf("unsupported format %q (registered: %s)", e.Format, strings.Join(e.Known, ", "))
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// IOError reports a storage failure. It matches ErrFileNotFound when the
// underlying cause is a missing file, and ErrIO always.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	switch target {
	case ErrIO:
		return true
	case ErrFileNotFound:
		return errors.Is(e.Err, fs.ErrNotExist)
	}
	return false
}

// ParseError reports content that is malformed for its format
type ParseError struct {
	Format    string
	Path      string
	MediaType string
	Err       error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse %s", e.Format)
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.MediaType != "" {
		fmt.Fprintf(&b, " (content looks like %s)", e.MediaType)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func parseErr(format string, err error) *ParseError {
	return &ParseError{Format: format, Err: err}
}

func parseErrf(format, msg string, args ...any) *ParseError {
	return parseErr(format, fmt.Errorf(msg, args...))
}
