package blake2

import "strings"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Op names the operation in which an error was raised.
type Op string

// Kind describes the class of an error. Kinds implement error themselves so that callers can
// write errors.Is(err, blake2.InvalidState).
type Kind int

// Error kinds.
const (
	Other            Kind = iota // Unclassified error -- does not appear in error strings
	InvalidParameter             // Digest, key, salt, personalization or tree parameter out of range
	InvalidState                 // Update or finalize on a finalized hasher
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "unclassified error"
	case InvalidParameter:
		return "invalid parameter"
	case InvalidState:
		return "invalid state"
	default:
		return "unknown error kind"
	}
}

func (k Kind) Error() string { return k.String() }

// Error describes a misuse of the hashing API. Errors are deterministic: repeating the same
// call with the same arguments fails the same way.
type Error struct {
	Op   Op
	Kind Kind
	Err  error
}

// ErrFinalized is returned by Update, Write and Finalize once a Digest has been finalized.
var ErrFinalized error = &Error{Kind: InvalidState, Err: errString("hasher already finalized")}

type errString string

func (e errString) Error() string { return string(e) }

func newError(op Op, kind Kind, msg string) error {
	return &Error{Op: op, Kind: kind, Err: errString(msg)}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("blake2")
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(string(e.Op))
	}
	if e.Kind != Other {
		b.WriteString(": ")
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of e, or an *Error whose non-zero fields all match.
// The Other kind never matches.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return t != Other && e.Kind == t
	case *Error:
		if t.Op != "" && t.Op != e.Op {
			return false
		}
		if t.Kind != Other && t.Kind != e.Kind {
			return false
		}
		return t.Err == nil || t.Err == e.Err
	}
	return false
}
