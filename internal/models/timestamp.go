package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp is wrapped by every timestamp parse failure.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// TimestampLayout is the on-disk format for every stored timestamp.
// It is always UTC and sorts lexicographically in time order.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the on-disk format for due dates.
const DateLayout = "2006-01-02"

// Timestamp is a UTC instant with whole-second precision
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC and drops sub-second precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// ParseTimestamp parses a value in TimestampLayout.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, s, err)
	}
	return Timestamp{Time: t}, nil
}

// String returns the stored text form.
func (t Timestamp) String() string {
	return t.Time.UTC().Format(TimestampLayout)
}

// GormDataType keeps the column as text so ordering follows the layout.
func (Timestamp) GormDataType() string {
	return "string"
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = Timestamp{}
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimestamp(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = NewTimestamp(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimestamp, value)
	}
	return nil
}
