package chrony

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the failure modes of a chronyd query.
type ErrorKind int

const (
	// KindUnavailable means no daemon transport is registered or usable.
	// There is no point retrying at this layer.
	KindUnavailable ErrorKind = iota

	// KindConnection means the socket could not be opened or the session
	// could not be established. Typically chronyd is not running.
	KindConnection

	// KindPermission is a refinement of KindConnection raised when the
	// socket open failed due to access rights.
	KindPermission

	// KindData covers everything downstream of a working connection:
	// protocol step failures, missing fields, unknown enumeration values,
	// validation failures, and unconfigured features.
	KindData
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindConnection:
		return "connection"
	case KindPermission:
		return "permission"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every query operation. Code carries
// the underlying negative errno or protocol status when one is available,
// and is zero otherwise.
type Error struct {
	Kind    ErrorKind
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return e.Message + " (error code: " + strconv.Itoa(e.Code) + ")"
	}
	return e.Message
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func newErrorCode(kind ErrorKind, message string, code int) *Error {
	return &Error{Kind: kind, Message: message, Code: code}
}

// IsUnavailable reports whether err is a chrony error of kind Unavailable.
func IsUnavailable(err error) bool { return hasKind(err, KindUnavailable) }

// IsConnection reports whether err is a chrony error of kind Connection.
func IsConnection(err error) bool { return hasKind(err, KindConnection) }

// IsPermission reports whether err is a chrony error of kind Permission.
func IsPermission(err error) bool { return hasKind(err, KindPermission) }

// IsData reports whether err is a chrony error of kind Data.
func IsData(err error) bool { return hasKind(err, KindData) }

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
