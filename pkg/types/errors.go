// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ErrorKind classifies a terminal extraction failure.
type ErrorKind string

const (
	KindSectionNotFound ErrorKind = "section_not_found"
	KindMassNotFound    ErrorKind = "mass_not_found"
	KindImageLoad       ErrorKind = "image_load"
	KindTableParse      ErrorKind = "table_parse"
	KindAnchorDetection ErrorKind = "anchor_detection"
)

// Error is a terminal extraction failure tied to a chain when one applies.
type Error struct {
	Kind  ErrorKind
	Chain Chain
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	prefix := string(e.Kind)
	if e.Chain != "" {
		prefix += " (" + string(e.Chain) + ")"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the Err* sentinels work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Msg == "" && t.Chain == ""
}

// Sentinels for errors.Is.
var (
	ErrSectionNotFound = &Error{Kind: KindSectionNotFound}
	ErrMassNotFound    = &Error{Kind: KindMassNotFound}
	ErrImageLoad       = &Error{Kind: KindImageLoad}
	ErrTableParse      = &Error{Kind: KindTableParse}
	ErrAnchorDetection = &Error{Kind: KindAnchorDetection}
)

func newError(kind ErrorKind, chain Chain, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Chain: chain, Msg: fmt.Sprintf(format, args...), Err: err}
}

// SectionNotFound reports malformed or unexpected report structure.
func SectionNotFound(chain Chain, format string, args ...any) *Error {
	return newError(KindSectionNotFound, chain, nil, format, args...)
}

// MassNotFound reports a missing or short descriptive paragraph.
func MassNotFound(chain Chain, format string, args ...any) *Error {
	return newError(KindMassNotFound, chain, nil, format, args...)
}

// ImageLoad reports a missing, corrupt, or out-of-bounds image.
func ImageLoad(chain Chain, err error, format string, args ...any) *Error {
	return newError(KindImageLoad, chain, err, format, args...)
}

// TableParse reports a table that is missing or lacks expected columns.
func TableParse(chain Chain, err error, format string, args ...any) *Error {
	return newError(KindTableParse, chain, err, format, args...)
}

// AnchorDetection reports a diagram with no marker pixels.
func AnchorDetection(chain Chain, format string, args ...any) *Error {
	return newError(KindAnchorDetection, chain, nil, format, args...)
}
