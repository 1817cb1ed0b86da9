// Package timefmt renders custom date and time format specifiers such as
// "HH:mm:ss" or "mm:ss.fff". Elapsed durations are rendered as the instant
// Epoch plus the duration, so "HH" wraps after 24 hours and "dd" counts days
// starting at 01.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSpec indicates a format specifier that cannot be parsed.
var ErrInvalidSpec = errors.New("invalid format specifier")

// Epoch is the zero instant elapsed durations are added to: 0001-01-01 00:00:00 UTC.
var Epoch = time.Time{}

const maxFractionDigits = 7

type token struct {
	field   rune
	count   int
	literal string
}

// Layout is a parsed format specifier.
type Layout struct {
	spec   string
	tokens []token
}

// Parse compiles a format specifier.
func Parse(spec string) (Layout, error) {
	runes := []rune(spec)
	layout := Layout{spec: spec}

	for index := 0; index < len(runes); {
		current := runes[index]
		switch {
		case current == '\'' || current == '"':
			end := index + 1
			for end < len(runes) && runes[end] != current {
				end++
			}
			if end >= len(runes) {
				return Layout{}, fmt.Errorf("%w: unterminated quote at %d in %q", ErrInvalidSpec, index, spec)
			}
			layout.appendLiteral(string(runes[index+1 : end]))
			index = end + 1
		case current == '\\':
			if index+1 >= len(runes) {
				return Layout{}, fmt.Errorf("%w: trailing escape in %q", ErrInvalidSpec, spec)
			}
			layout.appendLiteral(string(runes[index+1]))
			index += 2
		case current == '%':
			if index+1 >= len(runes) || runes[index+1] == '%' {
				return Layout{}, fmt.Errorf("%w: dangling %% at %d in %q", ErrInvalidSpec, index, spec)
			}
			index++
		case isField(current):
			count := 1
			for index+count < len(runes) && runes[index+count] == current {
				count++
			}
			if (current == 'f' || current == 'F') && count > maxFractionDigits {
				return Layout{}, fmt.Errorf("%w: more than %d fraction digits in %q", ErrInvalidSpec, maxFractionDigits, spec)
			}
			layout.tokens = append(layout.tokens, token{field: current, count: count})
			index += count
		default:
			layout.appendLiteral(string(current))
			index++
		}
	}

	return layout, nil
}

// MustParse is like Parse but panics on error.
func MustParse(spec string) Layout {
	layout, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return layout
}

// Format renders a single instant with spec.
func Format(instant time.Time, spec string) (string, error) {
	layout, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return layout.Format(instant), nil
}

// FormatElapsed renders Epoch plus elapsed with spec.
func FormatElapsed(elapsed time.Duration, spec string) (string, error) {
	layout, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return layout.Elapsed(elapsed), nil
}

// String returns the source specifier.
func (layout Layout) String() string {
	return layout.spec
}

// Elapsed renders Epoch plus elapsed. Negative durations render as zero.
func (layout Layout) Elapsed(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	return layout.Format(Epoch.Add(elapsed))
}

// Format renders instant.
func (layout Layout) Format(instant time.Time) string {
	out := make([]byte, 0, len(layout.spec)+8)
	for _, tok := range layout.tokens {
		if tok.field == 0 {
			out = append(out, tok.literal...)
			continue
		}
		out = appendField(out, tok, instant)
	}
	return string(out)
}

func (layout *Layout) appendLiteral(literal string) {
	if literal == "" {
		return
	}
	if last := len(layout.tokens) - 1; last >= 0 && layout.tokens[last].field == 0 {
		layout.tokens[last].literal += literal
		return
	}
	layout.tokens = append(layout.tokens, token{literal: literal})
}

func isField(value rune) bool {
	return strings.ContainsRune("dfFghHKmMstyz", value)
}

func appendField(out []byte, tok token, instant time.Time) []byte {
	switch tok.field {
	case 'd':
		switch tok.count {
		case 1:
			return strconv.AppendInt(out, int64(instant.Day()), 10)
		case 2:
			return appendPadded(out, instant.Day(), 2)
		case 3:
			return append(out, instant.Weekday().String()[:3]...)
		default:
			return append(out, instant.Weekday().String()...)
		}
	case 'f', 'F':
		digits := fmt.Sprintf("%07d", instant.Nanosecond()/100)[:tok.count]
		if tok.field == 'F' {
			digits = strings.TrimRight(digits, "0")
			if digits == "" && len(out) > 0 && out[len(out)-1] == '.' {
				out = out[:len(out)-1]
			}
		}
		return append(out, digits...)
	case 'g':
		return append(out, "A.D."...)
	case 'h':
		hour := instant.Hour() % 12
		if hour == 0 {
			hour = 12
		}
		return appendNumber(out, hour, tok.count)
	case 'H':
		return appendNumber(out, instant.Hour(), tok.count)
	case 'K':
		if instant.Location() == time.UTC {
			return append(out, 'Z')
		}
		return appendOffset(out, instant, 3)
	case 'm':
		return appendNumber(out, instant.Minute(), tok.count)
	case 'M':
		switch tok.count {
		case 1, 2:
			return appendNumber(out, int(instant.Month()), tok.count)
		case 3:
			return append(out, instant.Month().String()[:3]...)
		default:
			return append(out, instant.Month().String()...)
		}
	case 's':
		return appendNumber(out, instant.Second(), tok.count)
	case 't':
		designator := "AM"
		if instant.Hour() >= 12 {
			designator = "PM"
		}
		if tok.count == 1 {
			designator = designator[:1]
		}
		return append(out, designator...)
	case 'y':
		year := instant.Year()
		switch tok.count {
		case 1:
			return strconv.AppendInt(out, int64(year%100), 10)
		case 2:
			return appendPadded(out, year%100, 2)
		default:
			return appendPadded(out, year, tok.count)
		}
	case 'z':
		return appendOffset(out, instant, tok.count)
	}
	return out
}

func appendNumber(out []byte, value, count int) []byte {
	if count == 1 {
		return strconv.AppendInt(out, int64(value), 10)
	}
	return appendPadded(out, value, 2)
}

func appendPadded(out []byte, value, width int) []byte {
	return fmt.Appendf(out, "%0*d", width, value)
}

func appendOffset(out []byte, instant time.Time, count int) []byte {
	_, offset := instant.Zone()
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	out = append(out, sign)
	hours := offset / 3600
	switch count {
	case 1:
		return strconv.AppendInt(out, int64(hours), 10)
	case 2:
		return appendPadded(out, hours, 2)
	default:
		out = appendPadded(out, hours, 2)
		out = append(out, ':')
		return appendPadded(out, (offset%3600)/60, 2)
	}
}
