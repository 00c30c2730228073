package core

import "testing"

func TestLooksLikeDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2024-01-15", true},
		{"2024/01/15", true},
		{"15/01/2024", true},
		{"01/15/2024", true},
		{"15.01.2024", true},
		{"1/2/06", true},
		{"Jan 15, 2024", true},
		{"15 January 2024", true},
		{"20240115", true},
		{"2024-01-15T10:30:00Z", true},
		{"2024-01-15 10:30:00", true},
		{"15.01.2024 10:30", true},
		{"  2024-01-15  ", true},
		{"10-Jan-24", true},
		{"Jan-24", true},
		{"1/10/24 09:30", true},
		{"January 10, 2024 9:30 AM", true},
		{"09:30:00", true},
		{"", false},
		{"   ", false},
		{"hello", false},
		{"6912345678", false},
		{"1-AB12", false},
		{"32/13/2024", false},
		{"2024-13-01", false},
	}
	for _, tt := range tests {
		if got := looksLikeDate(tt.in); got != tt.want {
			t.Errorf("looksLikeDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
