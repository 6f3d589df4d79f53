package pipeline

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{name: "iso", input: "2020-03-15", want: datePtr(2020, 3, 15)},
		{name: "day first", input: "15/03/2020", want: datePtr(2020, 3, 15)},
		{name: "ambiguous resolves iso first", input: "2020-01-02", want: datePtr(2020, 1, 2)},
		{name: "unparseable", input: "15-03-2020", want: nil},
		{name: "empty", input: "", want: nil},
		{name: "not a date", input: "soon", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC)
	b := time.Date(2020, 3, 20, 0, 0, 0, 0, time.UTC)
	c := time.Date(2020, 4, 2, 0, 0, 0, 0, time.UTC)
	d := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)

	if !sameMonth(a, b) {
		t.Error("expected same month for dates in March 2020")
	}
	if sameMonth(a, c) {
		t.Error("expected different months for March and April 2020")
	}
	if sameMonth(a, d) {
		t.Error("expected different months for March 2020 and March 2021")
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
