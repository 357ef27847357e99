package logger

import "testing"

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expect)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		for _, debug := range []bool{true, false} {
			log, err := New(json, debug)
			if err != nil {
				t.Fatalf("New(%v, %v): %v", json, debug, err)
			}
			if log == nil {
				t.Fatalf("New(%v, %v) returned nil logger", json, debug)
			}
		}
	}
}
