// Package fault classifies the failures the storefront core can report so
// callers can react by kind (render a message, retry, refetch) without
// inspecting transport details.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation: a local precondition failed, no remote call was made.
	KindValidation Kind = iota + 1
	// KindConflict: local state already reflects the conflict (busy lock,
	// insufficient stock).
	KindConflict
	// KindRemote: the retail service reported a failure.
	KindRemote
	// KindInconsistency: a partial success left local and remote state
	// divergent; must not be retried silently.
	KindInconsistency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindRemote:
		return "remote"
	case KindInconsistency:
		return "inconsistency"
	default:
		return "unknown"
	}
}

type Code string

const (
	CodeUnauthenticated     Code = "unauthenticated"
	CodeNoOutletSelected    Code = "no_outlet_selected"
	CodeSizeRequired        Code = "size_required"
	CodeSizeUnavailable     Code = "size_unavailable"
	CodeInvalidAmount       Code = "invalid_amount"
	CodeInvalidOrderState   Code = "invalid_order_state"
	CodeOperationInProgress Code = "operation_in_progress"
	CodeInsufficientStock   Code = "insufficient_stock"
	CodeOrderAlreadyDeleted Code = "order_already_deleted"
	CodeItemAlreadyRemoved  Code = "item_already_removed"
	CodeCascadeDeleteFailed Code = "cascade_delete_failed"
	CodeNotFound            Code = "not_found"
	CodeRemoteUnavailable   Code = "remote_unavailable"
	CodeRemoteRejected      Code = "remote_rejected"
)

type Error struct {
	kind  Kind
	code  Code
	msg   string
	cause error
}

func New(kind Kind, code Code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func Newf(kind Kind, code Code, format string, args ...any) *Error {
	return &Error{kind: kind, code: code, msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, code Code, msg string, cause error) *Error {
	return &Error{kind: kind, code: code, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }
func (e *Error) Code() Code { return e.code }

// CodeOf returns the fault code carried by err, or "" if err is not a fault.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.code
	}
	return ""
}

// KindOf returns the fault kind carried by err, or 0 if err is not a fault.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return 0
}

func IsCode(err error, code Code) bool { return CodeOf(err) == code }
