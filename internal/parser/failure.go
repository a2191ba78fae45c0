package parser

import (
	"errors"
	"fmt"

	"ember/internal/diag"
	"ember/internal/source"
)

// Failure is a fail-fast parse or type error. It aborts the node being built
// and propagates up through the recursive descent as a plain error.
type Failure struct {
	Code    diag.Code
	Span    source.Span
	Message string
	Notes   []diag.Note
	Fixes   []diag.Fix
}

// Fail builds a Failure.
func Fail(code diag.Code, sp source.Span, msg string) *Failure {
	return &Failure{Code: code, Span: sp, Message: msg}
}

// Failf builds a Failure with a formatted message.
func Failf(code diag.Code, sp source.Span, format string, args ...any) *Failure {
	return Fail(code, sp, fmt.Sprintf(format, args...))
}

// WithNote attaches a secondary location.
func (f *Failure) WithNote(sp source.Span, msg string) *Failure {
	f.Notes = append(f.Notes, diag.Note{Span: sp, Msg: msg})
	return f
}

// WithFix attaches a suggested edit.
func (f *Failure) WithFix(fix diag.Fix) *Failure {
	f.Fixes = append(f.Fixes, fix)
	return f
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code.ID(), f.Message)
}

// ReportError converts err into a diagnostic. Errors that are not a Failure
// are reported as a generic semantic error at sp.
func ReportError(r diag.Reporter, err error, sp source.Span) {
	if r == nil || err == nil {
		return
	}
	var f *Failure
	if errors.As(err, &f) {
		r.Report(diag.Diagnostic{
			Severity: diag.SevError, Code: f.Code, Message: f.Message,
			Primary: f.Span, Notes: f.Notes, Fixes: f.Fixes,
		})
		return
	}
	r.Report(diag.NewError(diag.SemaError, sp, err.Error()))
}
