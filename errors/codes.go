package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Sequence errors
const (
	// ErrCodeEmptySequence indicates a terminal operation needed at least one element.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
	// ErrCodeInvalidRange indicates take/skip/slice bounds that do not resolve.
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"
	// ErrCodeIndexOutOfRange indicates indexed access beyond the bounds of a sequence.
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"
)

// Contract errors
const (
	// ErrCodeUnsupportedOperation indicates a mutation on a fixed or read-only view.
	ErrCodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	// ErrCodeInvalidState indicates an iterator was used outside its valid state,
	// such as reading Current before MoveNext.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates configuration that failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// contractCodes are programming errors rather than data conditions.
var contractCodes = map[ErrorCode]bool{
	ErrCodeUnsupportedOperation: true,
	ErrCodeInvalidState:         true,
}

// IsContractCode returns true if the code reports misuse of the API rather
// than a property of the data being processed.
func IsContractCode(code ErrorCode) bool {
	return contractCodes[code]
}
