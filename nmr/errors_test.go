package nmr

import (
	"errors"
	"fmt"
	"testing"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"plain", ErrNucleusNotFound, CodeNucleusNotFound},
		{"wrapped", fmt.Errorf("shift: %q: %w", "99Xx", ErrNucleusNotFound), CodeNucleusNotFound},
		{"joined", errors.Join(ErrInvalidFieldMagnitude, ErrInvalidFieldUnit), CodeInvalidFieldUnit},
		{"unknown", errors.New("boom"), CodeInternal},
		{"malformed", fmt.Errorf("simp: line 3: %w", ErrMalformedFile), CodeMalformedFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Fatalf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}
