package digitizer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1.4", 1.4, false},
		{"  0 ", 0, false},
		{"-2.5e3", -2500, false},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"inf", 0, true},
		{"1e999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseValue(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrompt_EOF(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader(""), &out)

	_, err := p.Float(context.Background(), "  Value: ")
	if !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF, got %v", err)
	}
}

func TestPrompt_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	p := NewPrompt(r, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Float(ctx, "  Value: ")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}
}
