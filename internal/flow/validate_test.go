package flow

import "testing"

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"45", 45, false},
		{"75.5", 75.5, false},
		{"75,5", 75.5, false},
		{" 100 ", 100, false},
		{"۴۵٫۵", 45.5, false}, // Persian keyboard
		{"٤٢", 42, false},     // Arabic-Indic digits
		{"-12.5", -12.5, false},
		{"abc", 0, true},
		{"", 0, true},
		{"12x", 0, true},
	}
	for _, tt := range tests {
		got, err := parseFloat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFloat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDigits(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1403", 1403, false},
		{"۱۴۰۳", 1403, false},
		{"9", 9, false},
		{"", 0, true},
		{"12.5", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDigits(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDigits(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseDigits(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
