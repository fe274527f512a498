package exitcode

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{ConfigError, "Configuration error"},
		{ScanError, "Scan error"},
		{PolicyViolation, "Policy violation"},
		{FileSystemError, "File system error"},
		{ServerError, "Server error"},
		{99, "Unknown error"},
		{-1, "Unknown error"},
	}

	for _, tt := range tests {
		if got := String(tt.code); got != tt.expected {
			t.Errorf("String(%d) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestCodesAreDistinct(t *testing.T) {
	codes := []int{Success, GeneralError, ConfigError, ScanError, PolicyViolation, FileSystemError, ServerError}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %d is assigned twice", c)
		}
		seen[c] = true
	}
}
