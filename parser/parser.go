package parser

import (
	"strconv"
	"strings"

	"github.com/Jasmynewlk/netflix-content-analysis/models"
)

// ParseDuration extracts the numeric duration from a raw cell such as
// "90 min" or "2 Seasons". The value is the leading run of ASCII digits;
// a cell that does not start with a digit does not parse. The unit comes
// from the first alphabetic token after the digits.
func ParseDuration(raw string) (models.Duration, bool) {
	s := strings.TrimSpace(raw)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return models.Duration{}, false
	}
	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return models.Duration{}, false
	}
	return models.Duration{Value: value, Unit: classifyUnit(s[i:])}, true
}

func classifyUnit(rest string) models.DurationUnit {
	start := -1
	for i := 0; i < len(rest); i++ {
		if isAlpha(rest[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return models.UnitUnknown
	}
	end := start
	for end < len(rest) && isAlpha(rest[end]) {
		end++
	}
	token := strings.ToLower(rest[start:end])
	switch {
	case strings.Contains(token, "min"):
		return models.UnitMinutes
	case strings.Contains(token, "season"):
		return models.UnitSeasons
	default:
		return models.UnitUnknown
	}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// NormalizeHeader converts a column header to its canonical schema name:
// trimmed, lowercased, spaces replaced with underscores.
func NormalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NormalizeType trims surrounding whitespace from a content type label.
func NormalizeType(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeRating trims a rating label and maps the spreadsheet
// missing-value placeholders to the empty string.
func NormalizeRating(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// ParseYear coerces a raw release year cell to an integer. Fractional
// values truncate; anything non-numeric does not parse.
func ParseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if year, err := strconv.Atoi(s); err == nil {
		return year, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
