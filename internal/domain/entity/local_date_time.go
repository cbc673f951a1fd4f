package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDateTimeLayout is the ISO-8601 local date-time layout used on the wire.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// parseLayouts are tried in order. Fractional seconds are accepted by the
// first layout because time.Parse allows them after the seconds field.
var parseLayouts = []string{
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// LocalDateTime is a wall-clock timestamp without a zone. It is stored in
// UTC and rendered without an offset.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime returns t's wall clock as a LocalDateTime.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// ParseLocalDateTime parses an ISO-8601 local date-time such as
// "2024-01-01T00:00:00", "2024-01-01T00:00" or "2025-11-02T06:01:44.307".
// A zone offset, if present, is dropped and the wall clock kept.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewLocalDateTime(t), nil
		}
	}
	return LocalDateTime{}, fmt.Errorf("invalid local date-time %q: must be in YYYY-MM-DDTHH:MM:SS format", s)
}

// MustParseLocalDateTime is like ParseLocalDateTime but panics on error.
func MustParseLocalDateTime(s string) LocalDateTime {
	ldt, err := ParseLocalDateTime(s)
	if err != nil {
		panic(err)
	}
	return ldt
}

// String formats the value as YYYY-MM-DDTHH:MM:SS with trailing fractional
// seconds only when present.
func (l LocalDateTime) String() string {
	if l.Nanosecond() == 0 {
		return l.Format(LocalDateTimeLayout)
	}
	return l.Format(LocalDateTimeLayout + ".999999999")
}

// MarshalJSON encodes the zero value as null.
func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	if l.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + l.String() + `"`), nil
}

// UnmarshalJSON accepts null or any layout understood by ParseLocalDateTime.
func (l *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*l = LocalDateTime{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid local date-time %s", s)
	}
	parsed, err := ParseLocalDateTime(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Value implements driver.Valuer.
func (l LocalDateTime) Value() (driver.Value, error) {
	if l.IsZero() {
		return nil, nil
	}
	return l.Time, nil
}

// Scan implements sql.Scanner for TIMESTAMP columns (postgres) and the
// textual encodings the sqlite driver may hand back.
func (l *LocalDateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = LocalDateTime{}
		return nil
	case time.Time:
		*l = NewLocalDateTime(v)
		return nil
	case string:
		parsed, err := ParseLocalDateTime(v)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	case []byte:
		return l.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into LocalDateTime", src)
	}
}
