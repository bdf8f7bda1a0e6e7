package engine

import (
	"fmt"
	"strings"
)

// ParseLevel parses a check-in value. Accepts low, ok, high and a few aliases.
func ParseLevel(input string) (Level, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "low", "l", "1":
		return LevelLow, nil
	case "ok", "okay", "o", "2":
		return LevelOK, nil
	case "high", "h", "3":
		return LevelHigh, nil
	case "", "unset", "none":
		return LevelUnset, nil
	default:
		return LevelUnset, fmt.Errorf("invalid check-in value: %q (want low|ok|high)", input)
	}
}

func ParseDimension(input string) (Dimension, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "mood":
		return DimensionMood, nil
	case "focus":
		return DimensionFocus, nil
	case "connection", "conn":
		return DimensionConnection, nil
	default:
		return "", fmt.Errorf("invalid check-in dimension: %q", input)
	}
}

// ParseOption parses a duel pick. Empty input yields OptionNone.
func ParseOption(input string) (Option, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return OptionNone, nil
	case "a":
		return OptionA, nil
	case "b":
		return OptionB, nil
	default:
		return OptionNone, fmt.Errorf("invalid duel option: %q (want a|b)", input)
	}
}

// ParseHouse matches a roster name case-insensitively. Empty input yields "".
func ParseHouse(input string) (House, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", nil
	}
	for _, h := range Houses {
		if strings.EqualFold(string(h), s) {
			return h, nil
		}
	}
	return "", fmt.Errorf("unknown house: %q", input)
}
