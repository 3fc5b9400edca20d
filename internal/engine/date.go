package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-datefield/internal/config"
)

// Field identifies one component of a Date, in rendering order.
type Field int

const (
	Day Field = iota
	Month
	Year
	Hours
	Mins
	Secs
)

// Fields lists every field in the order they appear in the canonical rendering.
var Fields = [...]Field{Day, Month, Year, Hours, Mins, Secs}

var fieldNames = [...]string{"day", "month", "year", "hours", "mins", "secs"}

func (f Field) String() string {
	if f < Day || f > Secs {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// Date is the canonical structured date/time record.
// Month is zero-based. Values are copied on every edit and never mutated in place.
type Date struct {
	Day   int
	Month int
	Year  int
	Hours int
	Mins  int
	Secs  int
}

// DaysIn returns the static (non-leap) day count of a zero-based month.
func DaysIn(month int) int {
	return config.DaysInMonth[month]
}

// MonthName returns the canonical English name of a zero-based month.
func MonthName(month int) string {
	return config.MonthNames[month]
}

// Get returns the value of a single field.
func (d Date) Get(f Field) int {
	switch f {
	case Day:
		return d.Day
	case Month:
		return d.Month
	case Year:
		return d.Year
	case Hours:
		return d.Hours
	case Mins:
		return d.Mins
	case Secs:
		return d.Secs
	}
	return 0
}

// With returns a copy of d with field f replaced by v.
func (d Date) With(f Field, v int) Date {
	switch f {
	case Day:
		d.Day = v
	case Month:
		d.Month = v
	case Year:
		d.Year = v
	case Hours:
		d.Hours = v
	case Mins:
		d.Mins = v
	case Secs:
		d.Secs = v
	}
	return d
}

// FieldText renders a single field the way it appears in the canonical form:
// zero-padded two digits, the month name, or the unpadded year.
func (d Date) FieldText(f Field) string {
	switch f {
	case Month:
		return MonthName(d.Month)
	case Year:
		return strconv.Itoa(d.Year)
	default:
		return pad2(d.Get(f))
	}
}

// String renders d as DD/MonthName/YYYY hh:mm:ss.
func (d Date) String() string {
	var b strings.Builder
	b.WriteString(d.FieldText(Day))
	b.WriteString(config.SepDate)
	b.WriteString(d.FieldText(Month))
	b.WriteString(config.SepDate)
	b.WriteString(d.FieldText(Year))
	b.WriteString(config.SepDateTime)
	b.WriteString(d.FieldText(Hours))
	b.WriteString(config.SepTime)
	b.WriteString(d.FieldText(Mins))
	b.WriteString(config.SepTime)
	b.WriteString(d.FieldText(Secs))
	return b.String()
}

// Numeric renders d as DD/MM/YYYY hh:mm:ss. Unlike String it keeps years
// below 100 intact when parsed back, so it is the form used for storage.
func (d Date) Numeric() string {
	return fmt.Sprintf(config.FormatNumeric, d.Day, d.Month+1, d.Year, d.Hours, d.Mins, d.Secs)
}

// Validate reports whether every field is within its range and the day fits the month.
func (d Date) Validate() error {
	if d.Month < config.MinMonth || d.Month > config.MaxMonth {
		return outOfRangeError(Month, d.Month)
	}
	for _, f := range Fields {
		r := Bounds(d, f)
		if v := d.Get(f); v < r.Min || v > r.Max {
			return outOfRangeError(f, v)
		}
	}
	return nil
}

// Time converts d into a time.Time in loc. A nil loc means time.Local.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, d.Hours, d.Mins, d.Secs, 0, loc)
}

// FromTime builds a Date from t, clamping the day into the static calendar
// (a 29th of February becomes the 28th).
func FromTime(t time.Time) Date {
	return Clamp(Date{
		Day:   t.Day(),
		Month: int(t.Month()) - 1,
		Year:  t.Year(),
		Hours: t.Hour(),
		Mins:  t.Minute(),
		Secs:  t.Second(),
	})
}

func pad2(v int) string {
	return fmt.Sprintf("%0*d", config.PadWidth, v)
}
