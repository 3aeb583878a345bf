package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Downtown Garage  ",
			want:  "Downtown Garage",
		},
		{
			name:  "multiple spaces between words",
			input: "Downtown    Garage",
			want:  "Downtown Garage",
		},
		{
			name:  "tabs and newlines",
			input: "Downtown\t\nGarage",
			want:  "Downtown Garage",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Mercedes-Benz™ & Co ",
			want:  "Mercedes-Benz™ & Co",
		},
		{
			name:  "idempotent",
			input: "Tesla Model 3",
			want:  "Tesla Model 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Tesla   Model 3 ", "tesla model 3"},
		{"SUV", "suv"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeLabel(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
