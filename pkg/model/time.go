package model

import (
	"fmt"
	"strings"
	"time"
)

// ISOTime is an instant serialized the way Habitica stores task dates.
type ISOTime struct {
	time.Time
}

const isoLayout = "2006-01-02T15:04:05.000Z" // millisecond precision, always UTC

// UnmarshalJSON implements the json.Unmarshaler interface for ISOTime.
func (it *ISOTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		it.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("failed to parse ISO time string '%s': %w", s, err)
	}
	it.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for ISOTime.
func (it ISOTime) MarshalJSON() ([]byte, error) {
	if it.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + it.String() + `"`), nil
}

// String formats the instant in UTC with millisecond precision.
func (it ISOTime) String() string {
	return it.Time.UTC().Format(isoLayout)
}
