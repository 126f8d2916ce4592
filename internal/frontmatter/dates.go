package frontmatter

import (
	"errors"
	"math"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date value cannot be resolved to a
// calendar instant.
var ErrInvalidDate = errors.New("frontmatter: invalid date")

// maxEpochMillis bounds numeric timestamps to the representable range of an
// ECMAScript date, which is the range content authors are used to.
const maxEpochMillis = 8.64e15

// zoned layouts carry an explicit offset; the rest are interpreted as UTC.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

var utcLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006-1-2",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

func isDateKind(value any) bool {
	switch v := value.(type) {
	case string, time.Time:
		return true
	case *time.Time:
		return v != nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return true
	case float64:
		return !math.IsNaN(v)
	default:
		return false
	}
}

// ParseDate resolves a frontmatter date value into a UTC instant. Strings
// are matched against common ISO and human layouts, numbers are epoch
// milliseconds and time values pass through.
func ParseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, ErrInvalidDate
		}
		return v.UTC(), nil
	case string:
		return parseDateString(v)
	case int:
		return fromMillis(float64(v))
	case int8:
		return fromMillis(float64(v))
	case int16:
		return fromMillis(float64(v))
	case int32:
		return fromMillis(float64(v))
	case int64:
		return fromMillis(float64(v))
	case uint:
		return fromMillis(float64(v))
	case uint8:
		return fromMillis(float64(v))
	case uint16:
		return fromMillis(float64(v))
	case uint32:
		return fromMillis(float64(v))
	case uint64:
		return fromMillis(float64(v))
	case float32:
		return fromMillis(float64(v))
	case float64:
		return fromMillis(v)
	default:
		return time.Time{}, ErrInvalidDate
	}
}

func parseDateString(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range zonedLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	for _, layout := range utcLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func fromMillis(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, ErrInvalidDate
	}
	whole := math.Trunc(ms)
	return time.UnixMilli(int64(whole)).UTC(), nil
}
