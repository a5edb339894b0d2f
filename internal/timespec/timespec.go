// Package timespec parses the compact duration tokens used by the reminder
// command: an integer immediately followed by m, h, or d.
package timespec

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrMalformed is returned when a token does not match <integer><unit>.
var ErrMalformed = errors.New("malformed duration token")

var tokenPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// Parse converts a token like "10m", "2h" or "1d" into a duration.
// Minutes, hours and days are the only units; no whitespace, no decimals,
// no upper bound. "0m" is syntactically valid and parses to zero.
func Parse(token string) (time.Duration, error) {
	match := tokenPattern.FindStringSubmatch(token)
	if match == nil {
		return 0, ErrMalformed
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}

	switch match[2] {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, ErrMalformed
	}
}
