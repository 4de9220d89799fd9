// Package oskerr defines the structured error taxonomy shared by the
// compiler and the kernel. Every value here is a plain struct, never used
// for ordinary control flow — callers branch on Kind, not on error identity.
package oskerr

import (
	"fmt"
	"strings"
)

// Kind names one of the fixed error categories the engine can raise.
type Kind string

const (
	EmptyModel          Kind = "EmptyModel"
	AlgebraicLoop        Kind = "AlgebraicLoop"
	UnknownBlockVariant Kind = "UnknownBlockVariant"
	BadParameters       Kind = "BadParameters"
	DomainError         Kind = "DomainError"
	InternalCompile     Kind = "InternalCompile"
	RuntimeFailure      Kind = "RuntimeFailure"
)

// Error is the single structured error type surfaced by the compiler and
// the kernel. BlockIDs carries the witness for AlgebraicLoop and the
// offending block for the per-block kinds; it is empty for model-wide
// failures such as EmptyModel.
type Error struct {
	Kind     Kind
	BlockIDs []string
	Message  string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.BlockIDs) > 0 {
		fmt.Fprintf(&b, " (blocks: %s)", strings.Join(e.BlockIDs, ", "))
	}
	return b.String()
}

// Is lets errors.Is match on Kind alone, so callers can do
// errors.Is(err, oskerr.New(oskerr.AlgebraicLoop, nil, "")) without
// comparing messages or block lists.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an Error of the given kind.
func New(kind Kind, blockIDs []string, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		BlockIDs: blockIDs,
		Message:  fmt.Sprintf(format, args...),
	}
}
