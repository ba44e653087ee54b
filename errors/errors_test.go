package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestSeqError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidRange, "bad bounds")
	if err.Code != ErrCodeInvalidRange {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidRange, err.Code)
	}
	if err.Message != "bad bounds" {
		t.Errorf("expected message 'bad bounds', got %q", err.Message)
	}
	if err.Error() != "INVALID_RANGE: bad bounds" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}

func TestSeqError_EmptySequence(t *testing.T) {
	err := EmptySequence("First")
	if err.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", err.Code)
	}
	if err.Details["operation"] != "First" {
		t.Errorf("expected operation=First, got %v", err.Details["operation"])
	}
	if !strings.HasPrefix(err.Message, "First:") {
		t.Errorf("expected message to name the operation, got %q", err.Message)
	}
}

func TestSeqError_IndexOutOfRange(t *testing.T) {
	err := IndexOutOfRange(7, 3)
	if err.Code != ErrCodeIndexOutOfRange {
		t.Errorf("expected INDEX_OUT_OF_RANGE, got %s", err.Code)
	}
	if err.Details["index"] != 7 || err.Details["length"] != 3 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestSeqError_Is_MatchesByCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"empty sequence", EmptySequence("Aggregate"), ErrEmptySequence, true},
		{"invalid range", InvalidRange("start beyond length"), ErrInvalidRange, true},
		{"index", IndexOutOfRange(1, 0), ErrIndexOutOfRange, true},
		{"unsupported", UnsupportedOperation("Insert"), ErrUnsupportedOperation, true},
		{"state", InvalidState("Current before MoveNext"), ErrInvalidState, true},
		{"different code", EmptySequence("First"), ErrInvalidRange, false},
		{"wrapped", fmt.Errorf("slice: %w", InvalidRange("x")), ErrInvalidRange, true},
		{"plain error", stderrors.New("boom"), ErrInvalidRange, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stderrors.Is(tc.err, tc.target); got != tc.want {
				t.Errorf("expected Is=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestSeqError_WithCause(t *testing.T) {
	cause := fmt.Errorf("upstream failed")
	err := InvalidRange("count failed").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: upstream failed") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestSeqError_WithDetails(t *testing.T) {
	err := New(ErrCodeInvalidRange, "x").
		WithDetail("start", 4).
		WithDetails(map[string]any{"end": 2, "length": 3})
	if len(err.Details) != 3 {
		t.Fatalf("expected 3 details, got %d", len(err.Details))
	}
	if err.Details["start"] != 4 || err.Details["end"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAsSeqError(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", UnsupportedOperation("Set"))
	seqErr, ok := AsSeqError(wrapped)
	if !ok {
		t.Fatal("expected AsSeqError to succeed")
	}
	if seqErr.Code != ErrCodeUnsupportedOperation {
		t.Errorf("expected UNSUPPORTED_OPERATION, got %s", seqErr.Code)
	}
	if _, ok := AsSeqError(stderrors.New("plain")); ok {
		t.Error("expected AsSeqError to fail for a plain error")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(EmptySequence("Min"), ErrCodeEmptySequence) {
		t.Error("expected IsCode to match")
	}
	if IsCode(EmptySequence("Min"), ErrCodeInvalidRange) {
		t.Error("expected IsCode not to match a different code")
	}
	if IsCode(nil, ErrCodeInvalidRange) {
		t.Error("expected IsCode(nil) to be false")
	}
}

func TestIsContractCode(t *testing.T) {
	if !IsContractCode(ErrCodeInvalidState) || !IsContractCode(ErrCodeUnsupportedOperation) {
		t.Error("expected contract codes to be recognised")
	}
	if IsContractCode(ErrCodeEmptySequence) {
		t.Error("EMPTY_SEQUENCE is a data condition, not a contract violation")
	}
}
