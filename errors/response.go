package errors

import (
	stderrors "errors"
)

// AsSeqError converts an error to a SeqError if possible.
func AsSeqError(err error) (*SeqError, bool) {
	var seqErr *SeqError
	if stderrors.As(err, &seqErr) {
		return seqErr, true
	}
	return nil, false
}

// IsCode reports whether err is a SeqError carrying code.
func IsCode(err error, code ErrorCode) bool {
	seqErr, ok := AsSeqError(err)
	return ok && seqErr.Code == code
}

// Is is errors.Is re-exported so callers importing this package under the
// name "errors" keep access to the standard helper.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As is errors.As re-exported for the same reason as Is.
func As(err error, target any) bool { return stderrors.As(err, target) }
