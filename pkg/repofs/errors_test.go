package repofs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/repofs/pkg/repofs"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, repofs.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), repofs.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), repofs.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), repofs.ExitUsageError},
		{"general error", errors.New("something went wrong"), repofs.ExitGeneralError},
		{"invalid config", repofs.ErrInvalidConfig, repofs.ExitConfigError},
		{"no handler", fmt.Errorf("%w: no handler for /repo/x.json", repofs.ErrConfiguration), repofs.ExitConfigError},
		{"not found", fmt.Errorf("read /repo/x.json: %w", repofs.ErrNotFound), repofs.ExitNotFound},
		{"io failure", fmt.Errorf("%w: disk gone", repofs.ErrIOFailure), repofs.ExitIOFailure},
		{"bad json", fmt.Errorf("%w: unexpected EOF", repofs.ErrDataFormat), repofs.ExitDataFormatError},
		{"skipped documents", repofs.ErrInvalidDocuments, repofs.ExitInvalidDocuments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repofs.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestInflated_Skipped(t *testing.T) {
	if (repofs.Inflated{Object: "x"}).Skipped() {
		t.Error("result with object should not be skipped")
	}
	if !(repofs.Inflated{Cause: repofs.ErrDataFormat}).Skipped() {
		t.Error("result with cause should be skipped")
	}
}
