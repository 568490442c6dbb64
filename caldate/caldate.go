package caldate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hernoufM/memthol/errors"
)

const (
	// Layout is the fixed wire form of DateTime values.
	Layout = "2006-01-02T15:04:05.000-0700"
	// DateLayout is the fixed wire form of Date values.
	DateLayout = "2006-01-02"
)

// Date is an absolute timezone-agnostic calendar date.
// Construct with NewDate to hold the validity invariant.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates month and day for the given year, honoring leap years.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("%w: month %d", errors.ErrInvalidDate, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("%w: day %d of %04d-%02d", errors.ErrInvalidDate, day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	}
	return 31
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(input []byte) error {
	parsed, err := time.Parse(DateLayout, strings.Trim(string(input), `"`))
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidDate, err)
	}
	*d = Date{Year: parsed.Year(), Month: parsed.Month(), Day: parsed.Day()}
	return nil
}

// DateTime combines a Date with a local wall-clock time-of-day.
type DateTime struct {
	time.Time
}

// NowLocal returns the current wall-clock reading in the local frame.
func NowLocal() DateTime {
	return DateTime{time.Now()}
}

// Date returns the calendar date of the reading.
func (t DateTime) Date() Date {
	year, month, day := t.Time.Date()
	return Date{Year: year, Month: month, Day: day}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *DateTime) UnmarshalJSON(input []byte) error {
	parsed, err := time.Parse(Layout, strings.Trim(string(input), `"`))
	if err != nil {
		return err
	}
	*t = DateTime{parsed}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Format(Layout))), nil
}
