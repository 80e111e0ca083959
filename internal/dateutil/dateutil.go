// Package dateutil resolves front matter and default dates for the \date slot.
//
// A date value is either literal text, "today" (left to LaTeX as \today), or
// "auto[:PATTERN]", which is rendered from the clock using a pattern of
// YYYY, YY, MMMM, MMM, MM, M, DD and D tokens. Text in brackets is literal.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date pattern or auto syntax.
var ErrInvalidDateFormat = errors.New("invalid date format")

const (
	// MaxPatternLength bounds the PATTERN in "auto:PATTERN".
	MaxPatternLength = 50

	// DefaultPattern renders "auto".
	DefaultPattern = "YYYY-MM-DD"

	// TodayMacro is what "today" resolves to.
	TodayMacro = `\today`
)

// Presets are named patterns accepted after "auto:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"cn":       "YYYY[年]M[月]D[日]",
}

// tokens render components of t. Longer names come first so that
// "MMMM" is not read as two "MM".
var tokens = []struct {
	name   string
	render func(t time.Time) string
}{
	{"YYYY", func(t time.Time) string { return strconv.Itoa(t.Year()) }},
	{"MMMM", func(t time.Time) string { return t.Month().String() }},
	{"MMM", func(t time.Time) string { return t.Month().String()[:3] }},
	{"YY", func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) }},
	{"MM", func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"DD", func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

// Format renders t with pattern. Characters outside tokens and brackets are
// copied as they are, digits included.
func Format(pattern string, t time.Time) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: pattern cannot be empty", ErrInvalidDateFormat)
	}
	if len(pattern) > MaxPatternLength {
		return "", fmt.Errorf("%w: pattern exceeds %d characters", ErrInvalidDateFormat, MaxPatternLength)
	}

	var b strings.Builder
	rest := pattern
	for rest != "" {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(pattern)-len(rest))
			}
			b.WriteString(literal)
			rest = after
			continue
		}
		rest = writeToken(&b, rest, t)
	}
	return b.String(), nil
}

// writeToken writes the token or byte at the start of s and returns the rest.
func writeToken(b *strings.Builder, s string, t time.Time) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok.name) {
			b.WriteString(tok.render(t))
			return s[len(tok.name):]
		}
	}
	b.WriteByte(s[0])
	return s[1:]
}

// Resolve expands a date value against now:
//
//	"auto"          now as YYYY-MM-DD
//	"auto:PATTERN"  now in PATTERN, or in a named preset
//	"today"         \today
//	anything else   unchanged ("Autumn 2024" included)
//
// Keywords are case-insensitive; patterns are not.
func Resolve(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	switch {
	case lower == "today":
		return TodayMacro, nil
	case lower == "auto":
		return Format(DefaultPattern, now)
	case strings.HasPrefix(lower, "auto:"):
		pattern := value[len("auto:"):]
		if pattern == "" {
			return "", fmt.Errorf("%w: pattern cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := Presets[strings.ToLower(pattern)]; ok {
			pattern = preset
		}
		return Format(pattern, now)
	}
	return value, nil
}

// FromYAML renders a decoded front matter date. Timestamps at midnight
// become YYYY-MM-DD, other timestamps RFC 3339; strings go through Resolve;
// other scalars are printed. nil yields "".
func FromYAML(v any, now time.Time) (string, error) {
	switch d := v.(type) {
	case nil:
		return "", nil
	case string:
		return Resolve(d, now)
	case time.Time:
		if h, m, sec := d.Clock(); h == 0 && m == 0 && sec == 0 && d.Nanosecond() == 0 {
			return d.Format(time.DateOnly), nil
		}
		return d.Format(time.RFC3339), nil
	default:
		return fmt.Sprint(d), nil
	}
}
