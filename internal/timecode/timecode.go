// Package timecode converts between the artifact timestamp encoding
// (HH:MM:SS,mmm) and canonical millisecond offsets.
//
// Timestamps are elapsed offsets from the start of the media, not wall
// time. No timezone or calendar semantics apply anywhere in this package.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedTimestampError reports a timestamp string that could not be
// parsed. Callers should drop the offending row and continue; a single bad
// row never aborts an artifact parse.
type MalformedTimestampError struct {
	Raw string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q", e.Raw)
}

// Parse converts an HH:MM:SS,mmm string to a millisecond offset.
//
// The millisecond suffix is optional and defaults to zero. Single-digit
// hours are accepted (the inference pipeline emits both "0:00:05,000" and
// "00:00:05,000"). Empty input or a non-numeric component returns a
// *MalformedTimestampError.
func Parse(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &MalformedTimestampError{Raw: raw}
	}

	ms := 0
	if comma := strings.IndexByte(s, ','); comma >= 0 {
		frac := s[comma+1:]
		s = s[:comma]
		v, err := strconv.Atoi(frac)
		if err != nil || v < 0 {
			return 0, &MalformedTimestampError{Raw: raw}
		}
		ms = v
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, &MalformedTimestampError{Raw: raw}
	}

	var hms [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return 0, &MalformedTimestampError{Raw: raw}
		}
		hms[i] = v
	}

	return ((hms[0]*60+hms[1])*60+hms[2])*1000 + ms, nil
}

// Format renders a millisecond offset back into the canonical
// HH:MM:SS,mmm encoding. Format is the inverse of Parse for any
// non-negative offset.
func Format(ms int) string {
	if ms < 0 {
		ms = 0
	}
	frac := ms % 1000
	total := ms / 1000
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, frac)
}

// FormatSeconds renders a millisecond offset as whole elapsed seconds for
// chart axis labels. Truncated, not rounded: 65250ms displays as "65".
func FormatSeconds(ms int) string {
	if ms < 0 {
		ms = 0
	}
	return strconv.Itoa(ms / 1000)
}
