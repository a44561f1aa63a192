package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearMonth is a calendar month. The zero value means "unset".
type YearMonth struct {
	Year  int
	Month time.Month
}

// dutchShortMonths are the abbreviated month names used in nl-NL labels.
var dutchShortMonths = [12]string{
	"jan.", "feb.", "mrt.", "apr.", "mei", "jun.",
	"jul.", "aug.", "sep.", "okt.", "nov.", "dec.",
}

// NewYearMonth builds a YearMonth, normalising months outside 1..12.
func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{}.withTotal(year*12 + int(month) - 1)
}

// FromTime returns the calendar month containing t.
func FromTime(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth accepts "YYYY-MM" or a full "YYYY-MM-DD" date; the day is ignored.
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) < 2 || len(parts) > 3 {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: expected YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return YearMonth{}, fmt.Errorf("invalid year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("invalid month in %q", s)
	}
	if len(parts) == 3 {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return YearMonth{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// MustParseYearMonth is ParseYearMonth for literals; it panics on bad input.
func MustParseYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

// IsZero reports whether the month is unset.
func (ym YearMonth) IsZero() bool { return ym.Year == 0 && ym.Month == 0 }

func (ym YearMonth) total() int { return ym.Year*12 + int(ym.Month) - 1 }

func (ym YearMonth) withTotal(total int) YearMonth {
	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: time.Month(month + 1)}
}

// AddMonths returns the month n months later (n may be negative).
func (ym YearMonth) AddMonths(n int) YearMonth { return ym.withTotal(ym.total() + n) }

// MonthsSince returns the number of whole months from other to ym.
func (ym YearMonth) MonthsSince(other YearMonth) int { return ym.total() - other.total() }

// Before reports whether ym is earlier than other.
func (ym YearMonth) Before(other YearMonth) bool { return ym.total() < other.total() }

// After reports whether ym is later than other.
func (ym YearMonth) After(other YearMonth) bool { return ym.total() > other.total() }

// Key returns the "YYYY-MM" form.
func (ym YearMonth) Key() string { return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month)) }

// String implements fmt.Stringer.
func (ym YearMonth) String() string { return ym.Key() }

// Label returns the Dutch short display form, e.g. "mrt. 2024".
func (ym YearMonth) Label() string {
	if ym.Month < time.January || ym.Month > time.December {
		return ym.Key()
	}
	return dutchShortMonths[ym.Month-1] + " " + strconv.Itoa(ym.Year)
}

// MarshalText encodes the month as "YYYY-MM" (used by both JSON and YAML).
func (ym YearMonth) MarshalText() ([]byte, error) {
	if ym.IsZero() {
		return []byte{}, nil
	}
	return []byte(ym.Key()), nil
}

// UnmarshalText decodes "YYYY-MM" or "YYYY-MM-DD". Empty input yields the zero month.
func (ym *YearMonth) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*ym = YearMonth{}
		return nil
	}
	parsed, err := ParseYearMonth(string(text))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}
