package errors

import (
	"testing"
)

func TestValidateRecordCount(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"upper bound", MaxRecords - 1, false},

		{"negative", -1, true},
		{"at limit", MaxRecords, true},
		{"far above", 1 << 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordCount(tt.input, 1)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecordCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeValidation) {
					t.Errorf("code = %v, want %v", GetCode(err), ErrCodeValidation)
				}
				if GetLine(err) != 1 {
					t.Errorf("line = %d, want 1", GetLine(err))
				}
			}
		})
	}
}

func TestValidateReference(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		ref     int
		wantErr bool
	}{
		{"root", 2, 1, false},
		{"previous", 5, 4, false},
		{"earliest", 5, 1, false},

		{"self", 5, 5, true},
		{"forward", 5, 6, true},
		{"zero", 5, 0, true},
		{"negative", 5, -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReference(tt.id, "left", tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReference(%d, %d) error = %v, wantErr %v", tt.id, tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrecision(t *testing.T) {
	for _, p := range []int{0, 3, 10} {
		if err := ValidatePrecision(p); err != nil {
			t.Errorf("ValidatePrecision(%d) error = %v", p, err)
		}
	}
	for _, p := range []int{-1, 11} {
		if err := ValidatePrecision(p); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidatePrecision(%d) error = %v, want %s", p, err, ErrCodeInvalidInput)
		}
	}
}
