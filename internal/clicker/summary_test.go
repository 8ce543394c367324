package clicker

import (
	"errors"
	"strings"
	"testing"
)

func TestSummaryFormat(t *testing.T) {
	s, err := NewSummary("Sold {{.Sold}} for ${{.Revenue}}")
	if err != nil {
		t.Fatalf("NewSummary() failed: %v", err)
	}

	tests := []struct {
		sold, revenue int
		expected      string
	}{
		{0, 0, "Sold 0 for $0"},
		{10, 75, "Sold 10 for $75"},
		{12345, 9876543, "Sold 12345 for $9876543"},
	}

	for _, tc := range tests {
		if got := s.Format(tc.sold, tc.revenue); got != tc.expected {
			t.Errorf("Format(%d, %d) = %q, expected %q", tc.sold, tc.revenue, got, tc.expected)
		}
	}
}

func TestNewSummaryRejectsBadTemplates(t *testing.T) {
	bad := []string{
		"{{.Sold",            // parse error
		"{{.Customers}}",     // unknown field
		"{{template \"x\"}}", // undefined template
		"Sold {{.Sold}} desserts!",
		"Earned ${{.Revenue}}",
		"{{.Sold}} / {{.Sold}}",
		"{{printf \"%x\" .Sold}} for ${{.Revenue}}",
		"{{printf \"%.2e\" .Revenue}} from {{.Sold}}",
	}

	for _, text := range bad {
		if _, err := NewSummary(text); err == nil {
			t.Errorf("NewSummary(%q) should fail", text)
		}
	}
}

func TestNewSummaryMissingValueError(t *testing.T) {
	_, err := NewSummary("Sold {{.Sold}} desserts!")
	if !errors.Is(err, ErrSummaryValues) {
		t.Errorf("NewSummary() error = %v, expected %v", err, ErrSummaryValues)
	}
}

func TestSummaryFormatPanicsOnRenderError(t *testing.T) {
	// Renders for the startup sample but cannot index an int when Sold is 5.
	s, err := NewSummary("{{if eq .Sold 5}}{{index .Sold 0}}{{end}}{{.Sold}} for {{.Revenue}}")
	if err != nil {
		t.Fatalf("NewSummary() failed: %v", err)
	}
	if got := s.Format(3, 15); got != "3 for 15" {
		t.Errorf("Format(3, 15) = %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Format() should panic instead of replacing the configured text")
		}
	}()
	s.Format(5, 25)
}

func TestDefaultSummary(t *testing.T) {
	got := DefaultSummary().Format(42, 1337)
	if !strings.Contains(got, "42") || !strings.Contains(got, "1337") {
		t.Errorf("default summary %q does not embed both values", got)
	}
}
