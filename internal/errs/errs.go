// Package errs holds the error taxonomy shared by the catalog and market
// client layers. Errors are classified by kind, not by the layer that raised
// them.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindSetUp
	KindCatalogInit
	KindParse
	KindNetwork
	KindDeserialization
)

func (k Kind) String() string {
	switch k {
	case KindSetUp:
		return "set up error"
	case KindCatalogInit:
		return "catalog init error"
	case KindParse:
		return "parse error"
	case KindNetwork:
		return "network error"
	case KindDeserialization:
		return "deserialization error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type for every kind. Code is the HTTP status
// for KindNetwork and zero otherwise.
type Error struct {
	Kind Kind
	Code int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Code != 0 {
		msg = fmt.Sprintf("%s %d", msg, e.Code)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether any error in err's chain is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func SetUp(msg string, err error) error { return &Error{Kind: KindSetUp, Msg: msg, Err: err} }

func CatalogInit(msg string, err error) error {
	return &Error{Kind: KindCatalogInit, Msg: msg, Err: err}
}

func Parse(msg string, err error) error { return &Error{Kind: KindParse, Msg: msg, Err: err} }

// Network records a request that came back with a non-success status.
func Network(code int, msg string) error { return &Error{Kind: KindNetwork, Code: code, Msg: msg} }

func Deserialization(err error) error { return &Error{Kind: KindDeserialization, Err: err} }

func Unknown(msg string, err error) error { return &Error{Kind: KindUnknown, Msg: msg, Err: err} }
