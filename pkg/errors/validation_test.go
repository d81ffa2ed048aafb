package errors

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "bulbasaur", false},
		{"valid with dash", "mr-mime", false},
		{"valid with digit", "porygon2", false},
		{"valid numeric id", "25", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"uppercase", "Pikachu", true},
		{"path traversal", "../pokemon", true},
		{"slash", "pokemon/1", true},
		{"query", "ditto?x=1", true},
		{"space", "mr mime", true},
		{"null byte", "foo\x00bar", true},
		{"unicode", "flabébé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		page    int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{10, false},
		{20, false},
		{21, true},
		{-3, true},
	}

	for _, tt := range tests {
		err := ValidatePage(tt.page, 20)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePage(%d, 20) error = %v, wantErr %v", tt.page, err, tt.wantErr)
		}
	}
}
