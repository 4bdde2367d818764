package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseArithmetic  Phase = "arithmetic"   // checked address arithmetic
	PhaseRange       Phase = "range"        // range containment
	PhaseMemory      Phase = "memory"       // image access
	PhaseByteOrder   Phase = "byteorder"    // endianness selection
	PhaseHeader      Phase = "header"       // mach header
	PhaseLoadCommand Phase = "load_command" // load command walk
	PhaseSegment     Phase = "segment"      // segment commands
	PhaseSection     Phase = "section"      // section records
	PhaseClient      Phase = "client"       // caller supplied callbacks
)

// Kind categorizes the error. The set is closed.
type Kind uint8

const (
	KindSuccess Kind = iota
	KindClientError
	KindInvalidClientResult
	KindInternal
	KindInvalidArgument
	KindInvalidData
	KindNotFound
	KindUnavailable
	KindOutOfRange
	KindOverflow
	KindUnderflow
	KindBadAccess
)

var kindText = [...]string{
	KindSuccess:             "SUCCESS",
	KindClientError:         "CLIENT ERROR",
	KindInvalidClientResult: "INVALID CLIENT RESULT",
	KindInternal:            "INTERNAL ERROR",
	KindInvalidArgument:     "BAD INPUT",
	KindInvalidData:         "INVALID DATA",
	KindNotFound:            "NOT FOUND",
	KindUnavailable:         "UNAVAILABLE",
	KindOutOfRange:          "OUT OF RANGE",
	KindOverflow:            "OVERFLOW",
	KindUnderflow:           "UNDERFLOW",
	KindBadAccess:           "BAD ACCESS",
}

// Describe returns the fixed text for kind, or "" for an unknown kind.
func Describe(kind Kind) string {
	if int(kind) < len(kindText) {
		return kindText[kind]
	}
	return ""
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return Describe(k)
}

// Code is the result contract shared by every package: a kind plus the
// orthogonal memory-fault attribute.
type Code struct {
	Kind  Kind
	Fault bool
}

// Ok reports whether the code is a success, regardless of the fault flag.
func (c Code) Ok() bool {
	return c.Kind == KindSuccess
}

// String renders the kind only; the fault flag never changes the text.
func (c Code) String() string {
	return Describe(c.Kind)
}

// Error is the structured error type used throughout machokit
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Detail string
	Path   []string
	Kind   Kind
	Fault  bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	if text := Describe(e.Kind); text != "" {
		b.WriteString(text)
	} else {
		fmt.Fprintf(&b, "KIND(%d)", uint8(e.Kind))
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Fault {
		b.WriteString(" (memory fault)")
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kinds must be equal; the
// phase is compared only when the target names one. The fault flag is
// never part of the match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || t.Phase == e.Phase
}

// Code returns the (kind, fault) pair carried by e.
func (e *Error) Code() Code {
	return Code{Kind: e.Kind, Fault: e.Fault}
}

// Sentinels for errors.Is; they match any phase.
var (
	ErrClientError         = &Error{Kind: KindClientError}
	ErrInvalidClientResult = &Error{Kind: KindInvalidClientResult}
	ErrInternal            = &Error{Kind: KindInternal}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrInvalidData         = &Error{Kind: KindInvalidData}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrUnavailable         = &Error{Kind: KindUnavailable}
	ErrOutOfRange          = &Error{Kind: KindOutOfRange}
	ErrOverflow            = &Error{Kind: KindOverflow}
	ErrUnderflow           = &Error{Kind: KindUnderflow}
	ErrBadAccess           = &Error{Kind: KindBadAccess}
)

// CodeOf maps any error onto the closed Code set. A nil error is Success,
// the first *Error in the chain supplies its own code, and anything else is
// reported as an internal error.
func CodeOf(err error) Code {
	if err == nil {
		return Code{Kind: KindSuccess}
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code()
	}
	return Code{Kind: KindInternal}
}

// KindOf is CodeOf(err).Kind.
func KindOf(err error) Kind {
	return CodeOf(err).Kind
}

// IsFault reports whether the error chain carries the memory-fault attribute.
func IsFault(err error) bool {
	return CodeOf(err).Fault
}

// WithFault returns a copy of err with the memory-fault attribute set.
// Errors that are not *Error are wrapped as BadAccess.
func WithFault(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		c := *e
		c.Fault = true
		return &c
	}
	return &Error{Kind: KindBadAccess, Fault: true, Cause: err}
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the record path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Fault marks the error as a hard memory fault
func (b *Builder) Fault() *Builder {
	b.err.Fault = true
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	e := b.err
	return &e
}

// Convenience constructors for common error patterns

// Overflow creates an overflow error
func Overflow(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindOverflow).Detail(detail, args...).Build()
}

// Underflow creates an underflow error
func Underflow(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindUnderflow).Detail(detail, args...).Build()
}

// NotFound creates a not-found error
func NotFound(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindNotFound).Detail(detail, args...).Build()
}

// OutOfRange creates an out of range error
func OutOfRange(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindOutOfRange).Detail(detail, args...).Build()
}

// InvalidData creates an invalid data error for malformed image contents
func InvalidData(phase Phase, path []string, detail string, args ...any) *Error {
	return New(phase, KindInvalidData).Path(path...).Detail(detail, args...).Build()
}

// InvalidArgument creates an error for malformed caller input
func InvalidArgument(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidArgument).Detail(detail, args...).Build()
}

// BadAccess creates a fault error for an address that could not be touched
func BadAccess(phase Phase, addr uint64, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadAccess,
		Fault:  true,
		Value:  addr,
		Detail: fmt.Sprintf("fault reading 0x%x", addr),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context. The kind and fault
// of an *Error cause are inherited when kind is KindSuccess.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	fault := false
	if kind == KindSuccess {
		c := CodeOf(cause)
		kind, fault = c.Kind, c.Fault
	}
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Fault:  fault,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPath returns a copy of err with path prepended. Errors that are not
// *Error are returned unchanged.
func WithPath(err error, path ...string) error {
	var e *Error
	if !stderrors.As(err, &e) {
		return err
	}
	c := *e
	c.Path = append(append([]string(nil), path...), e.Path...)
	return &c
}
