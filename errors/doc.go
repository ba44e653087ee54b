// Package errors provides the structured error type shared by the seqkit packages.
// Every failure carries a machine-readable ErrorCode, so callers can branch on
// the kind of failure with errors.Is instead of matching messages.
package errors
