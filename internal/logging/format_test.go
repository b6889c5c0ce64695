package logging

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestRenderValue(t *testing.T) {
	cases := []struct {
		value slog.Value
		raw   bool
		want  string
	}{
		{slog.StringValue("a.jpg"), false, "a.jpg"},
		{slog.StringValue("my file.jpg"), false, `"my file.jpg"`},
		{slog.StringValue("my file.jpg"), true, "my file.jpg"},
		{slog.StringValue(""), false, `""`},
		{slog.IntValue(3), false, "3"},
		{slog.BoolValue(true), false, "true"},
		{slog.DurationValue(1500 * time.Millisecond), false, "1.5s"},
		{slog.AnyValue(errors.New("permission denied")), false, `"permission denied"`},
	}
	for _, tc := range cases {
		if got := renderValue(tc.value, tc.raw); got != tc.want {
			t.Errorf("renderValue(%v, %v) = %s, want %s", tc.value, tc.raw, got, tc.want)
		}
	}
}

func TestFormatTimestampZero(t *testing.T) {
	if got := formatTimestamp(time.Time{}); got != "" {
		t.Fatalf("formatTimestamp(zero) = %q", got)
	}
}
