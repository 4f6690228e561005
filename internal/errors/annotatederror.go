// Package errors provides error wrapping with slog annotations and source
// attribution. It re-exports the standard library helpers so callers only need
// one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// annotatedError carries a message, an optional wrapped error, slog attributes
// for structured logging, and the program counter of the frame that created it.
type annotatedError struct {
	msg   string
	err   error
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// NewSentinel creates an error intended for package-level sentinel values.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg, err: nil, attrs: nil, pc: interestingCallerPC()}
}

// Wrap annotates err with a message and optional slog attributes. The caller's
// source location is recorded for [SlogError].
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: err, attrs: attrs, pc: interestingCallerPC()}
}

// DecoratePanic converts a recovered panic value into an error pointing at the
// panic site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &annotatedError{
		msg:   fmt.Sprintf("panic: %v", recovered),
		err:   nil,
		attrs: nil,
		pc:    interestingCallerPC(),
	}
}

// interestingCallerPC walks the stack and returns the first frame outside this
// package and the runtime. Skipping runtime frames means that, inside a
// deferred recover, we attribute the error to the panic site rather than the
// deferred function.
func interestingCallerPC() uintptr {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:]) //nolint:mnd // skip runtime.Callers and this function.
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fn := frame.Function
		if !strings.Contains(fn, "liftlog/internal/errors.") &&
			!strings.HasPrefix(fn, "runtime.") {
			return frame.PC
		}
		if !more {
			return 0
		}
	}
}

// SlogError renders err as a structured "error" group attribute with the
// message, the originating source location, and any annotations attached with
// [Wrap] anywhere in the chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	args := []any{slog.String("message", err.Error())}

	if source := deepestSource(err); source != "" {
		args = append(args, slog.String("source", source))
	}

	var annotations []any
	for e := err; e != nil; e = Unwrap(e) {
		var annotated *annotatedError
		if errors.As(e, &annotated) {
			for _, attr := range annotated.attrs {
				annotations = append(annotations, attr)
			}
			e = annotated
		} else {
			break
		}
	}
	if len(annotations) > 0 {
		args = append(args, slog.Group("annotations", annotations...))
	}

	return slog.Group("error", args...)
}

// deepestSource returns the file:line of the innermost annotated error in the
// chain so the log points at the root cause rather than an outer wrap.
func deepestSource(err error) string {
	var pc uintptr
	for e := err; e != nil; e = Unwrap(e) {
		var annotated *annotatedError
		if !errors.As(e, &annotated) {
			break
		}
		if annotated.pc != 0 {
			pc = annotated.pc
		}
		e = annotated
	}
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	shortFile := frame.File
	if idx := strings.LastIndexByte(shortFile, '/'); idx >= 0 {
		shortFile = shortFile[idx+1:]
	}
	return fmt.Sprintf("%s:%d", shortFile, frame.Line)
}

// Standard library re-exports.

// New is [errors.New].
func New(msg string) error { return errors.New(msg) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As is [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
