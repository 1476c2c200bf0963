package util

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var isoDurationRe = regexp.MustCompile(`(\d+(?:\.\d+)?)([HMS])`)

// ParseDuration parses an ISO 8601 time duration such as PT1H30M.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid ISO 8601 duration format: %s", s)
	}

	s = s[1:]
	if len(s) == 0 || s[0] != 'T' {
		return 0, fmt.Errorf("invalid ISO 8601 duration (missing T): P%s", s)
	}
	s = s[1:]

	// Every character must belong to a number+unit pair.
	if isoDurationRe.ReplaceAllString(s, "") != "" {
		return 0, fmt.Errorf("invalid ISO 8601 duration: PT%s", s)
	}

	var total time.Duration
	for _, match := range isoDurationRe.FindAllStringSubmatch(s, -1) {
		value, _ := strconv.ParseFloat(match[1], 64)
		switch match[2] {
		case "H":
			total += time.Duration(value * float64(time.Hour))
		case "M":
			total += time.Duration(value * float64(time.Minute))
		case "S":
			total += time.Duration(value * float64(time.Second))
		}
	}

	if total <= 0 {
		return 0, fmt.Errorf("invalid ISO 8601 duration: PT%s", s)
	}
	return total, nil
}

// ParseHours reads an hours credit. Accepted forms are a bare number of hours
// ("1.5"), a Go duration ("90m", "1h30m") or an ISO 8601 duration ("PT1H30M").
func ParseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty hours value")
	}

	if h, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return 0, fmt.Errorf("hours must be a finite number: %s", s)
		}
		if h <= 0 {
			return 0, fmt.Errorf("hours must be positive: %s", s)
		}
		return h, nil
	}

	var d time.Duration
	var err error
	if strings.HasPrefix(strings.ToUpper(s), "P") {
		d, err = ParseDuration(strings.ToUpper(s))
	} else {
		d, err = time.ParseDuration(s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid hours value %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("hours must be positive: %s", s)
	}
	return d.Hours(), nil
}
