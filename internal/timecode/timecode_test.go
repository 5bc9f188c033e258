package timecode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"00:00:00,000", 0},
		{"00:00:30,000", 30000},
		{"00:01:05,250", 65250},
		{"0:00:05,000", 5000},
		{"01:00:00,001", 3600001},
		{"00:02:10", 130000}, // millisecond suffix optional
		{" 00:00:01,500 ", 1500},
	}

	for _, tc := range cases {
		got, err := Parse(tc.raw)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"abc",
		"00:00",
		"xx:00:00,000",
		"00:yy:00",
		"00:00:zz,000",
		"00:00:01,abc",
		"-1:00:00,000",
	}

	for _, raw := range cases {
		_, err := Parse(raw)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want malformed error", raw)
			continue
		}
		var mt *MalformedTimestampError
		if !errors.As(err, &mt) {
			t.Errorf("Parse(%q) error = %T, want *MalformedTimestampError", raw, err)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, raw := range []string{"00:00:30,000", "00:01:05,250", "02:03:04,005"} {
		ms, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q): %v", raw, err)
		}
		back, err := Parse(Format(ms))
		if err != nil {
			t.Fatalf("Parse(Format(%d)): %v", ms, err)
		}
		if back != ms {
			t.Errorf("round trip %q: %d -> %d", raw, ms, back)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		ms   int
		want string
	}{
		{0, "0"},
		{30000, "30"},
		{65250, "65"}, // truncated, not rounded
		{65999, "65"},
		{-5, "0"},
	}

	for _, tc := range cases {
		if got := FormatSeconds(tc.ms); got != tc.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}
