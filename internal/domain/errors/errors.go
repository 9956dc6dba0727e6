package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalid = errors.New("invalid")

	ErrIO                = errors.New("io failure")
	ErrMetadataInvalid   = errors.New("metadata invalid")
	ErrUnrecognizedEntry = errors.New("unrecognized entry")
)

type Kind string

const (
	KindIO           Kind = "io"
	KindMetadata     Kind = "metadata"
	KindUnrecognized Kind = "unrecognized"
)

// Error is a fatal build error. Path names the content file or output that
// triggered it, Key the metadata key when Kind is KindMetadata.
type Error struct {
	Kind Kind
	Path string
	Key  string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Key != "" {
		fmt.Fprintf(&b, " key %q", e.Key)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrMetadataInvalid:
		return e.Kind == KindMetadata
	case ErrUnrecognizedEntry:
		return e.Kind == KindUnrecognized
	}
	return false
}

func IO(path string, err error) *Error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

func MetadataInvalid(key, msg string) *Error {
	return &Error{Kind: KindMetadata, Key: key, Msg: msg}
}

func Unrecognized(path, msg string) *Error {
	return &Error{Kind: KindUnrecognized, Path: path, Msg: msg}
}

// WithPath attaches path to err when err is an *Error without one.
// Other errors are wrapped as IO failures.
func WithPath(err error, path string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Path == "" {
			cp := *e
			cp.Path = path
			return &cp
		}
		return err
	}
	return IO(path, err)
}

// KeyOf returns the metadata key carried by err, if any.
func KeyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Key
	}
	return ""
}

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}
